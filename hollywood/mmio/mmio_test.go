package mmio

import "testing"

func TestU32(t *testing.T) {
	var r U32

	r.Store(0xe0000)
	if r.Load() != 0xe0000 {
		t.Errorf("got %#x", r.Load())
	}

	r.SetBits(1 << 11)
	if r.Load() != 0xe0800 {
		t.Errorf("got %#x", r.Load())
	}

	r.ClearBits(0xe0000)
	if r.Load() != 0x800 {
		t.Errorf("got %#x", r.Load())
	}
}

func TestR32(t *testing.T) {
	type ctrl uint32
	const (
		x1 ctrl = 1 << 0
		y1 ctrl = 1 << 2
	)
	var r R32[ctrl]

	r.SetBits(x1 | y1)
	if r.LoadBits(x1) == 0 {
		t.Error("x1 not set")
	}
	r.ClearBits(x1)
	if r.LoadBits(x1) != 0 || r.LoadBits(y1) == 0 {
		t.Errorf("got %#x", r.Load())
	}
}
