// Package mipc implements the 'mini' IPC channel to the Starlet
// coprocessor.
//
// mini keeps the mailbox protocol deliberately small: a single request
// record lives at a fixed spot in MEM2, the PPC side stores its physical
// address in the PPCMSG register and rings the X1 doorbell.  Requests
// that have a reply are answered in place and signalled through Y1.
// There is only ever one request outstanding.
package mipc

import (
	"fmt"
	"unsafe"

	"github.com/clktmr/wii/debug"
	"github.com/clktmr/wii/hollywood"
	"github.com/clktmr/wii/hollywood/mmio"
	"github.com/clktmr/wii/of"
	"github.com/clktmr/wii/starlet"
)

const (
	compatMini = "nintendo,starlet-mini-ipc"
	compatIOS  = "nintendo,starlet-ipc"
)

// MEM2 home of the single request slot, agreed upon with mini.
const slotAddr = 0x13ff_ffe0

type registers struct {
	ppcmsg  mmio.U32
	ppcctrl mmio.R32[ctrl]
	armmsg  mmio.U32
}

type ctrl uint32

const (
	ctrlX1  ctrl = 1 << 0 // request pending, set by PPC
	ctrlY2  ctrl = 1 << 1 // reply acknowledged, set by PPC
	ctrlY1  ctrl = 1 << 2 // reply pending, set by Starlet
	ctrlX2  ctrl = 1 << 3 // request taken, set by Starlet
	ctrlIY1 ctrl = 1 << 4 // assert PPC interrupt on Y1
	ctrlIY2 ctrl = 1 << 5 // assert PPC interrupt on Y2
)

// request is the in-memory request record.  Fields are read by the
// coprocessor, hence the MMIO cells.
type request struct {
	cmd    mmio.U32
	result mmio.U32
	args   [6]mmio.U32
}

// Request words: device in the high byte, request code in the low byte.
const (
	cmdSysRead32   = 0x01<<8 | 0x01
	cmdSysWrite32  = 0x01<<8 | 0x02
	cmdESLaunch    = 0x02<<8 | 0x01
	cmdESDiscard   = 0x02<<8 | 0x02
	cmdSTMRestart  = 0x03<<8 | 0x01
	cmdSTMPowerOff = 0x03<<8 | 0x02
)

// Channel talks to Starlet through the mailbox.  It implements both
// starlet.Channel and starlet.IO.
type Channel struct {
	regs    *registers
	req     *request
	flavour starlet.Flavour
}

// Probe looks for a Starlet IPC node in the tree.  A channel is returned
// for either firmware flavour so callers can gate on Flavour; only the
// mini flavour accepts requests through this package.
func Probe(root *of.Node) *Channel {
	if root == nil {
		return nil
	}
	if node := root.Find(compatMini); node != nil {
		return newChannel(hwRegs(node), hwSlot(), starlet.FlavourMini)
	}
	if node := root.Find(compatIOS); node != nil {
		return newChannel(hwRegs(node), hwSlot(), starlet.FlavourIOS)
	}
	return nil
}

func hwRegs(node *of.Node) *registers {
	base := uint32(hollywood.IPCBase)
	if res, err := node.AddressToResource(0); err == nil {
		base = uint32(res.Start)
	}
	return (*registers)(unsafe.Pointer(hollywood.Uncached(base)))
}

func hwSlot() *request {
	return (*request)(unsafe.Pointer(hollywood.Uncached(slotAddr)))
}

func newChannel(regs *registers, req *request, flavour starlet.Flavour) *Channel {
	return &Channel{regs: regs, req: req, flavour: flavour}
}

func (ch *Channel) Flavour() starlet.Flavour { return ch.flavour }

// issue fills the request slot and rings the doorbell.  It returns once
// the request is issued; whether anything comes back depends on the
// request.
func (ch *Channel) issue(cmd uint32, args ...uint32) error {
	if ch.flavour != starlet.FlavourMini {
		return fmt.Errorf("mipc: %s firmware: %w", ch.flavour, starlet.ErrUnsupported)
	}

	// single outstanding request, wait for the slot
	for ch.regs.ppcctrl.LoadBits(ctrlX1) != 0 {
	}

	ch.req.cmd.Store(cmd)
	ch.req.result.Store(0)
	for i := range ch.req.args {
		var v uint32
		if i < len(args) {
			v = args[i]
		}
		ch.req.args[i].Store(v)
	}

	ch.regs.ppcmsg.Store(phys(unsafe.Pointer(ch.req)))
	ch.regs.ppcctrl.SetBits(ctrlX1)
	return nil
}

// wait blocks until a reply is pending, reads it and acknowledges.
func (ch *Channel) wait() uint32 {
	for ch.regs.ppcctrl.LoadBits(ctrlY1) == 0 {
	}
	v := ch.req.result.Load()
	ch.regs.ppcctrl.SetBits(ctrlY2)
	return v
}

// ReloadAndLaunch implements starlet.Channel.
func (ch *Channel) ReloadAndLaunch(title starlet.TitleID) error {
	return ch.issue(cmdESLaunch, uint32(title>>32), uint32(title))
}

// ReloadAndDiscard implements starlet.Channel.
func (ch *Channel) ReloadAndDiscard() error {
	return ch.issue(cmdESDiscard)
}

// Restart implements starlet.Channel.
func (ch *Channel) Restart() error {
	return ch.issue(cmdSTMRestart)
}

// PowerOff implements starlet.Channel.
func (ch *Channel) PowerOff() error {
	return ch.issue(cmdSTMPowerOff)
}

// In32 implements starlet.IO.  Only valid under mini.
func (ch *Channel) In32(addr uint32) uint32 {
	debug.Assert(ch.flavour == starlet.FlavourMini, "mipc: register proxy requires mini")
	if err := ch.issue(cmdSysRead32, addr); err != nil {
		return 0
	}
	return ch.wait()
}

// Out32 implements starlet.IO.  Only valid under mini.  Ordering
// relative to other requests is preserved by the single request slot.
func (ch *Channel) Out32(addr uint32, v uint32) {
	debug.Assert(ch.flavour == starlet.FlavourMini, "mipc: register proxy requires mini")
	ch.issue(cmdSysWrite32, addr, v)
}

func phys(p unsafe.Pointer) uint32 {
	return uint32(uintptr(p)) &^ 0xc000_0000
}
