// Package exi drives the external interface bus, the serial bus behind
// the memory card slots and several onboard devices.
//
// Only immediate mode transfers are implemented; that is all the debug
// peripherals need.  DMA stays with whoever owns the device.
package exi

import (
	"unsafe"

	"github.com/clktmr/wii/hollywood"
	"github.com/clktmr/wii/hollywood/mmio"
)

const numChannels = 3

type channel struct {
	csr    mmio.R32[csr]
	mar    mmio.U32
	length mmio.U32
	cr     mmio.R32[cr]
	data   mmio.U32
}

type csr uint32

const (
	csrEXIIntMask csr = 1 << 0
	csrEXIInt     csr = 1 << 1 // write 1 to clear
	csrTCIntMask  csr = 1 << 2
	csrTCInt      csr = 1 << 3 // write 1 to clear
	csrEXTIntMask csr = 1 << 10
	csrEXTInt     csr = 1 << 11 // write 1 to clear
	csrEXT        csr = 1 << 12 // device present

	csrClockShift      = 4
	csrClockMask   csr = 0x7 << csrClockShift
	csrCSShift         = 7
	csrCSMask      csr = 0x7 << csrCSShift

	csrIntAll = csrEXIInt | csrTCInt | csrEXTInt
)

type cr uint32

const (
	crTStart cr = 1 << 0
	crDMA    cr = 1 << 1

	crModeShift    = 2
	crTLenShift    = 4
	crTLenMask  cr = 0x3 << crTLenShift
)

// Mode selects the direction of an immediate transfer.
type Mode uint32

const (
	Read      Mode = 0
	Write     Mode = 1
	ReadWrite Mode = 2
)

// Clock selects the transfer clock.
type Clock uint32

const (
	Clock1MHz Clock = iota
	Clock2MHz
	Clock4MHz
	Clock8MHz
	Clock16MHz
	Clock32MHz
)

// Controller is one EXI controller with its three channels.
type Controller struct {
	ch *[numChannels]channel
}

// Default is the controller at its Hollywood home.
var Default = newController(
	(*[numChannels]channel)(unsafe.Pointer(hollywood.Uncached(hollywood.EXIBase))))

func newController(ch *[numChannels]channel) *Controller {
	return &Controller{ch: ch}
}

// Select asserts the chip select for device dev on channel chn.
func (c *Controller) Select(chn, dev int, clk Clock) {
	v := c.ch[chn].csr.Load()
	v &^= csrIntAll | csrCSMask | csrClockMask // don't ack ints by accident
	v |= csr(1<<dev)<<csrCSShift | csr(clk)<<csrClockShift
	c.ch[chn].csr.Store(v)
}

// Deselect releases all chip selects on channel chn.
func (c *Controller) Deselect(chn int) {
	v := c.ch[chn].csr.Load()
	v &^= csrIntAll | csrCSMask
	c.ch[chn].csr.Store(v)
}

// Imm runs an immediate transfer of n bytes (1 to 4) on channel chn and
// returns the data register afterwards.  Data is sent MSB first.
func (c *Controller) Imm(chn int, data uint32, n int, mode Mode) uint32 {
	c.ch[chn].data.Store(data)
	c.ch[chn].cr.Store(crTStart | cr(mode)<<crModeShift | cr(n-1)<<crTLenShift)

	for c.ch[chn].cr.LoadBits(crTStart) != 0 {
	}

	return c.ch[chn].data.Load()
}

// Present reports whether a device sits in channel chn's slot.
func (c *Controller) Present(chn int) bool {
	return c.ch[chn].csr.LoadBits(csrEXT) != 0
}

// Quiesce cancels any in-flight transfer, masks and acknowledges all
// interrupts and deselects every channel.  Idempotent; called before
// the running kernel image is discarded, so it must not assume any
// particular interrupt state.
func (c *Controller) Quiesce() {
	for i := range c.ch {
		c.ch[i].cr.Store(0)
		c.ch[i].csr.Store(csrIntAll)
	}
}

// Quiesce quiesces the default controller.
func Quiesce() { Default.Quiesce() }
