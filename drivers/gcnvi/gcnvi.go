// Package gcnvi drives the Flipper/Hollywood video interface as a text
// console.  It does not program any video timing itself; it attaches to
// the framebuffer the boot loader already configured and scans out.
package gcnvi

import (
	"image"
	"unsafe"

	"github.com/clktmr/wii/hollywood"
	"github.com/clktmr/wii/hollywood/mmio"
	"github.com/clktmr/wii/of"
)

const (
	compatHollywood = "nintendo,hollywood-vi"
	compatFlipper   = "nintendo,flipper-vi"
)

// Loaders hand over a progressive 640x480 XFB.
const (
	xfbWidth  = 640
	xfbHeight = 480
)

// The registers are 16 bit wide, grouped here into the 32 bit words the
// bus presents.
type registers struct {
	vtr  mmio.U32
	htr0 mmio.U32
	htr1 mmio.U32
	vto  mmio.U32
	vte  mmio.U32
	bbei mmio.U32
	bboi mmio.U32
	tfbl mmio.U32
	tfbr mmio.U32
	bfbl mmio.U32
	bfbr mmio.U32
}

const (
	tfblShifted  = 1 << 28 // address stored right-shifted by 5
	tfblAddrMask = 0x00ff_ffff
)

func fbAddr(tfbl uint32) uint32 {
	if tfbl&tfblShifted != 0 {
		return (tfbl & tfblAddrMask) << 5
	}
	return tfbl & tfblAddrMask
}

// Default is the console set up by Init, nil if there is none.
var Default *Console

// Init attaches a console to the framebuffer left behind by the loader.
// A no-op if the video interface is not in the tree or no framebuffer
// is programmed; no hardware is touched in either case.
func Init(root *of.Node) {
	if Default != nil || root == nil {
		return
	}
	node := root.Find(compatHollywood)
	if node == nil {
		node = root.Find(compatFlipper)
	}
	if node == nil {
		return
	}
	res, err := node.AddressToResource(0)
	if err != nil {
		return
	}
	regs := (*registers)(unsafe.Pointer(hollywood.Uncached(uint32(res.Start))))
	addr := fbAddr(regs.tfbl.Load())
	if addr == 0 {
		return
	}
	pix := unsafe.Slice((*byte)(unsafe.Pointer(hollywood.Uncached(addr))),
		xfbWidth*xfbHeight*2)
	Default = NewConsole(NewXFB(pix, image.Rect(0, 0, xfbWidth, xfbHeight)))
}
