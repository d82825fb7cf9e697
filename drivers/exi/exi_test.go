package exi

import "testing"

func testController() (*Controller, *[numChannels]channel) {
	ch := new([numChannels]channel)
	return newController(ch), ch
}

func TestSelectDeselect(t *testing.T) {
	c, ch := testController()

	c.Select(0, 0, Clock32MHz)
	got := ch[0].csr.Load()
	if got&csrCSMask != 1<<csrCSShift {
		t.Errorf("csr %#x, device 0 not selected", got)
	}
	if got&csrClockMask != csr(Clock32MHz)<<csrClockShift {
		t.Errorf("csr %#x, wrong clock", got)
	}

	c.Deselect(0)
	if got := ch[0].csr.Load(); got&csrCSMask != 0 {
		t.Errorf("csr %#x, still selected", got)
	}
}

func TestSelectPreservesIntMasks(t *testing.T) {
	c, ch := testController()
	ch[1].csr.Store(csrEXIIntMask | csrTCIntMask)

	c.Select(1, 0, Clock8MHz)
	c.Deselect(1)

	if got := ch[1].csr.Load(); got&(csrEXIIntMask|csrTCIntMask) != csrEXIIntMask|csrTCIntMask {
		t.Errorf("csr %#x, interrupt masks clobbered", got)
	}
}

func TestSelectDoesNotAckInts(t *testing.T) {
	c, ch := testController()
	// pending interrupt status bits are write 1 to clear, a RMW cycle
	// must never write them back
	ch[0].csr.Store(csrTCInt)

	c.Select(0, 0, Clock32MHz)

	if got := ch[0].csr.Load(); got&csrIntAll != 0 {
		t.Errorf("csr %#x, wrote status bits", got)
	}
}

func TestQuiesce(t *testing.T) {
	c, ch := testController()
	for i := range ch {
		ch[i].csr.Store(csrEXIIntMask | csrTCIntMask | 1<<csrCSShift)
		ch[i].cr.Store(crTStart)
	}

	c.Quiesce()

	for i := range ch {
		if got := ch[i].cr.Load(); got != 0 {
			t.Errorf("ch%d cr %#x after quiesce", i, got)
		}
		if got := ch[i].csr.Load(); got != csrIntAll {
			t.Errorf("ch%d csr %#x after quiesce", i, got)
		}
	}

	// idempotent
	c.Quiesce()
	for i := range ch {
		if got := ch[i].csr.Load(); got != csrIntAll {
			t.Errorf("ch%d csr %#x after second quiesce", i, got)
		}
	}
}

func TestPresent(t *testing.T) {
	c, ch := testController()

	if c.Present(2) {
		t.Error("empty slot reported present")
	}
	ch[2].csr.Store(csrEXT)
	if !c.Present(2) {
		t.Error("device not reported")
	}
}
