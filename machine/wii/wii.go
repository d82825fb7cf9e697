// Package wii implements machine support for the Nintendo Wii.
package wii

import (
	"fmt"
	"io"

	"github.com/clktmr/wii/drivers/exi"
	"github.com/clktmr/wii/drivers/gcnvi"
	"github.com/clktmr/wii/drivers/usbgecko"
	"github.com/clktmr/wii/machine"
	"github.com/clktmr/wii/machine/kexec"
	"github.com/clktmr/wii/of"
	"github.com/clktmr/wii/starlet"
)

const compatible = "nintendo,wii"

// Board drives the Wii's machine lifecycle.  All hardware it touches is
// reached through the collaborators handed to New; the board itself only
// owns the sequencing.
type Board struct {
	root *of.Node
	cpu  machine.CPU
	ipc  starlet.Channel

	quiesce func()
	boot    func(*kexec.Image)
}

// Config wires a Board to its collaborators.
type Config struct {
	// Root is the device tree root, kept for console bring-up.
	Root *of.Node
	// CPU and IPC are required.
	CPU machine.CPU
	IPC starlet.Channel
	// Boot is the generic kexec jump.  Defaults to kexec.Boot.
	Boot func(*kexec.Image)
}

func New(cfg Config) *Board {
	if cfg.CPU == nil || cfg.IPC == nil {
		panic("wii: nil CPU or IPC channel")
	}
	b := &Board{
		root:    cfg.Root,
		cpu:     cfg.CPU,
		ipc:     cfg.IPC,
		quiesce: exi.Quiesce,
		boot:    cfg.Boot,
	}
	if b.boot == nil {
		b.boot = kexec.Boot
	}
	return b
}

func (b *Board) Name() string { return "wii" }

// Probe implements machine.Machine.  Matches only the exact platform
// identifier; anything else defers to other boards.
func (b *Board) Probe(root *of.Node) bool {
	return root != nil && root.IsCompatible(compatible)
}

// SetupArch brings up whichever debug console is present.  Both
// initializers are no-ops when their hardware is absent; neither can
// fail the boot.
func (b *Board) SetupArch() {
	usbgecko.Init(b.root)
	gcnvi.Init(b.root)
}

func (b *Board) InitEarly() {}

func (b *Board) ShowCPUInfo(w io.Writer) {
	fmt.Fprintf(w, "vendor\t\t: IBM\n")
	fmt.Fprintf(w, "machine\t\t: Nintendo Wii\n")
}

// Restart tries first to have Starlet reload its firmware and
// chain-launch The Homebrew Channel; if that does not cause a reset it
// falls back to an assisted restart.  Both attempts are fire and forget
// with no failure channel, so the terminal state is either a reset or
// the parked spin below, ended by the power button.
func (b *Board) Restart(cmd string) {
	b.cpu.DisableInterrupts()

	b.ipc.ReloadAndLaunch(starlet.TitleHBC)
	b.ipc.Restart()

	b.park()
}

// PowerOff mirrors Restart with a single recovery attempt.  No chain
// launch: power off means the system stays off.
func (b *Board) PowerOff() {
	b.cpu.DisableInterrupts()

	b.ipc.PowerOff()

	b.park()
}

// Halt has no distinct behavior on this hardware.
func (b *Board) Halt() {
	b.Restart("")
}

// Shutdown quiesces the EXI bus so no transfer is in flight when the
// running image is discarded.  Idempotent; makes no assumption about
// interrupt state.
func (b *Board) Shutdown() {
	b.quiesce()
}

func (b *Board) KexecPrepare(img *kexec.Image) error {
	return nil
}

// Kexec releases Starlet's I/O resources before the generic jump.  The
// new image must not observe hardware still mediated by the old
// firmware, so the discard request strictly precedes the jump.
func (b *Board) Kexec(img *kexec.Image) {
	b.cpu.DisableInterrupts()

	b.ipc.ReloadAndDiscard()

	b.boot(img)
}

// park is the named terminal state of the restart and power-off
// sequences: spin until an external event ends the system.  Tests bound
// the spin through the CPU's Relax.
func (b *Board) park() {
	for {
		b.cpu.Relax()
	}
}
