// Package machine selects and drives the board support at boot.
//
// Each supported board registers a Machine; the boot sequence probes
// them against the device tree root exactly once and from then on the
// winning machine is fixed.  All later lifecycle events (restart, power
// off, kexec) are dispatched to it.
package machine

import (
	"errors"
	"io"

	"github.com/clktmr/wii/machine/kexec"
	"github.com/clktmr/wii/of"
)

// Machine is implemented once per supported board.
type Machine interface {
	Name() string

	// Probe reports whether this machine drives the hardware described
	// by root.  It runs against every registered machine at boot and
	// must therefore be fast and side-effect free.
	Probe(root *of.Node) bool

	// SetupArch runs once after this machine's probe won, before
	// general device drivers start.
	SetupArch()
	// InitEarly runs before SetupArch.  Boards without early work
	// implement it empty to satisfy the contract.
	InitEarly()

	// ShowCPUInfo appends the board's lines to a human readable system
	// info report.  Pure formatting.
	ShowCPUInfo(w io.Writer)

	// Restart, PowerOff and Halt never return.
	Restart(cmd string)
	PowerOff()
	Halt()
}

// KexecMachine is implemented by machines that support replacing the
// running kernel image.
type KexecMachine interface {
	Machine

	// Shutdown quiesces board resources before an image is staged.
	// Idempotent; must not assume interrupts are disabled.
	Shutdown()
	KexecPrepare(img *kexec.Image) error
	// Kexec never returns.
	Kexec(img *kexec.Image)
}

// CPU gates privileged processor state the lifecycle sequences depend
// on.  The surrounding runtime provides the real implementation.
type CPU interface {
	// DisableInterrupts masks external interrupt delivery on the
	// calling core.  The paths that use it never unmask again.
	DisableInterrupts()
	// Relax hints a busy wait to the core.
	Relax()
}

var (
	ErrNoMachine = errors.New("machine: no registered machine matches")
	ErrProbed    = errors.New("machine: already probed")
)

var (
	machines []Machine
	current  Machine
)

// Register adds a machine to the probe list.  Called during early boot
// wiring, before Probe.
func Register(m Machine) {
	machines = append(machines, m)
}

// Probe selects the machine for this boot.  Exactly one machine wins;
// the selection is made once and is read-only thereafter.
func Probe(root *of.Node) (Machine, error) {
	if current != nil {
		return nil, ErrProbed
	}
	for _, m := range machines {
		if m.Probe(root) {
			current = m
			return m, nil
		}
	}
	return nil, ErrNoMachine
}

// Current returns the machine selected by Probe, or nil before it ran.
func Current() Machine { return current }
