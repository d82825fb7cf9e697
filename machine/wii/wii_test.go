package wii

import (
	"bytes"
	"fmt"
	"slices"
	"testing"

	"github.com/clktmr/wii/drivers/gcnvi"
	"github.com/clktmr/wii/drivers/usbgecko"
	"github.com/clktmr/wii/machine/kexec"
	"github.com/clktmr/wii/of"
	"github.com/clktmr/wii/starlet"
)

type parked struct{}

// fakeCPU logs the interrupt masking and bounds the terminal spin.
type fakeCPU struct {
	log   *[]string
	relax int
}

func (c *fakeCPU) DisableInterrupts() { *c.log = append(*c.log, "irqoff") }

func (c *fakeCPU) Relax() {
	c.relax++
	if c.relax > 16 {
		panic(parked{})
	}
}

type fakeChannel struct {
	log *[]string
}

func (c *fakeChannel) Flavour() starlet.Flavour { return starlet.FlavourMini }

func (c *fakeChannel) ReloadAndLaunch(title starlet.TitleID) error {
	*c.log = append(*c.log, fmt.Sprintf("launch 0x%016x", uint64(title)))
	return nil
}

func (c *fakeChannel) ReloadAndDiscard() error {
	*c.log = append(*c.log, "discard")
	return nil
}

func (c *fakeChannel) Restart() error {
	*c.log = append(*c.log, "restart")
	return nil
}

func (c *fakeChannel) PowerOff() error {
	*c.log = append(*c.log, "poweroff")
	return nil
}

func testBoard() (*Board, *[]string) {
	log := new([]string)
	b := New(Config{
		CPU: &fakeCPU{log: log},
		IPC: &fakeChannel{log: log},
		Boot: func(img *kexec.Image) {
			*log = append(*log, "boot")
		},
	})
	b.quiesce = func() { *log = append(*log, "quiesce") }
	return b, log
}

// runUntilParked runs a sequence that must not return.
func runUntilParked(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parked); !ok {
				panic(r)
			}
			return
		}
		t.Error("sequence returned instead of parking")
	}()
	fn()
}

func TestRestart(t *testing.T) {
	b, log := testBoard()

	runUntilParked(t, func() { b.Restart("") })

	want := []string{"irqoff", "launch 0x000100014a4f4449", "restart"}
	if !slices.Equal(*log, want) {
		t.Errorf("got %v, want %v", *log, want)
	}
}

func TestHaltEqualsRestart(t *testing.T) {
	b, rlog := testBoard()
	runUntilParked(t, func() { b.Restart("") })

	h, hlog := testBoard()
	runUntilParked(t, func() { h.Halt() })

	if !slices.Equal(*rlog, *hlog) {
		t.Errorf("halt %v, restart %v", *hlog, *rlog)
	}
}

func TestPowerOff(t *testing.T) {
	b, log := testBoard()

	runUntilParked(t, func() { b.PowerOff() })

	// no chain launch: power off means the system stays off
	want := []string{"irqoff", "poweroff"}
	if !slices.Equal(*log, want) {
		t.Errorf("got %v, want %v", *log, want)
	}
}

func TestKexec(t *testing.T) {
	b, log := testBoard()

	b.Kexec(&kexec.Image{Entry: 0x8000_0000})

	want := []string{"irqoff", "discard", "boot"}
	if !slices.Equal(*log, want) {
		t.Errorf("got %v, want %v", *log, want)
	}
}

func TestShutdownIdempotent(t *testing.T) {
	b, log := testBoard()

	b.Shutdown()
	b.Shutdown()

	want := []string{"quiesce", "quiesce"}
	if !slices.Equal(*log, want) {
		t.Errorf("got %v, want %v", *log, want)
	}
}

func TestKexecPrepare(t *testing.T) {
	b, _ := testBoard()
	if err := b.KexecPrepare(&kexec.Image{}); err != nil {
		t.Error(err)
	}
}

func TestShowCPUInfo(t *testing.T) {
	b, _ := testBoard()

	var buf bytes.Buffer
	b.ShowCPUInfo(&buf)

	want := "vendor\t\t: IBM\nmachine\t\t: Nintendo Wii\n"
	if buf.String() != want {
		t.Errorf("got %q", buf.String())
	}
}

func TestSetupArchSafeWithoutHardware(t *testing.T) {
	log := new([]string)
	b := New(Config{
		Root: &of.Node{Name: "/", Compatible: []string{"nintendo,wii"}},
		CPU:  &fakeCPU{log: log},
		IPC:  &fakeChannel{log: log},
	})

	// no console nodes in the tree, nothing may be touched or probed
	b.SetupArch()

	if usbgecko.Default != nil {
		t.Error("usbgecko initialized without an exi node")
	}
	if gcnvi.Default != nil {
		t.Error("gcnvi initialized without a vi node")
	}
}

func TestProbe(t *testing.T) {
	b, _ := testBoard()

	if !b.Probe(&of.Node{Name: "/", Compatible: []string{"nintendo,wii"}}) {
		t.Error("board does not match its platform")
	}
	if b.Probe(&of.Node{Name: "/", Compatible: []string{"nintendo,gamecube"}}) {
		t.Error("board matches a foreign platform")
	}
	if b.Probe(nil) {
		t.Error("board matches a nil tree")
	}
}

func TestNewRequiresCollaborators(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("nil collaborators did not panic")
		}
	}()
	New(Config{})
}
