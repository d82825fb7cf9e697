// Package usbgecko drives the USB Gecko, a USB serial adapter that sits
// in an EXI memory card slot.  It is the cheapest way to get log output
// off the console.
package usbgecko

import (
	"io"

	"github.com/clktmr/wii/drivers/exi"
	"github.com/clktmr/wii/of"
)

const compatEXI = "nintendo,flipper-exi"

// Commands live in the upper 16 bits of an immediate transfer.
const (
	cmdID       = 0x9000_0000
	idReply     = 0x0470_0000
	cmdTransmit = 0xb000_0000 // payload byte at bit 20
	cmdReceive  = 0xa000_0000

	transmitOK = 0x0400_0000
)

// Retry budget per byte before the adapter is considered gone.
const txRetries = 1 << 12

// USBGecko is a probed adapter.  It implements io.Writer.
type USBGecko struct {
	exi *exi.Controller
	chn int
}

var _ io.Writer = (*USBGecko)(nil)

// Probe looks for an adapter in either memory card slot.  Returns nil
// if the bus is not described in the tree or no adapter answers; no
// hardware is touched in the first case.
func Probe(root *of.Node) *USBGecko {
	if root == nil || root.Find(compatEXI) == nil {
		return nil
	}
	for chn := 0; chn < 2; chn++ {
		if probeChannel(exi.Default, chn) {
			return &USBGecko{exi: exi.Default, chn: chn}
		}
	}
	return nil
}

func probeChannel(c *exi.Controller, chn int) bool {
	c.Select(chn, 0, exi.Clock32MHz)
	defer c.Deselect(chn)
	return c.Imm(chn, cmdID, 2, exi.ReadWrite)&0xffff_0000 == idReply
}

// Write sends p byte-wise.  Bytes the adapter never accepts are
// dropped; a debug writer must not wedge the system.
func (g *USBGecko) Write(p []byte) (n int, err error) {
	for _, b := range p {
		g.putc(b)
	}
	return len(p), nil
}

func (g *USBGecko) putc(b byte) bool {
	for range txRetries {
		g.exi.Select(g.chn, 0, exi.Clock32MHz)
		resp := g.exi.Imm(g.chn, cmdTransmit|uint32(b)<<20, 2, exi.ReadWrite)
		g.exi.Deselect(g.chn)
		if resp&transmitOK != 0 {
			return true
		}
	}
	return false
}

// Default is the adapter found by Init, nil if there is none.
var Default *USBGecko

// Init probes for an adapter and remembers it as the default log sink.
// Safe to call unconditionally, also with no hardware present.
func Init(root *of.Node) {
	if Default != nil {
		return
	}
	Default = Probe(root)
}
