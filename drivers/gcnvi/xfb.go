package gcnvi

import (
	"image"
	"image/color"
	"image/draw"
)

// XFB is an external framebuffer in the YUY2 layout scanned out by the
// video interface.  Two horizontally adjacent pixels share one chroma
// sample: [Y0 U Y1 V].
type XFB struct {
	Pix    []byte
	Stride int
	Rect   image.Rectangle
}

var _ draw.Image = (*XFB)(nil)

// NewXFB wraps pix, which must hold r.Dx()*r.Dy() YUY2 pixels.
func NewXFB(pix []byte, r image.Rectangle) *XFB {
	return &XFB{Pix: pix, Stride: r.Dx() * 2, Rect: r}
}

func (p *XFB) ColorModel() color.Model { return color.YCbCrModel }
func (p *XFB) Bounds() image.Rectangle { return p.Rect }

// pixOffset returns the byte offset of the luma sample of (x, y).
func (p *XFB) pixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*2
}

func (p *XFB) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.YCbCr{}
	}
	i := p.pixOffset(x, y)
	pair := i &^ 3
	return color.YCbCr{Y: p.Pix[i], Cb: p.Pix[pair+1], Cr: p.Pix[pair+3]}
}

// Set stores c's luma at (x, y).  The shared chroma sample is
// overwritten, so the last pixel written in a pair wins its partner's
// hue.  Fine for text and solid fills.
func (p *XFB) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	r, g, b, _ := c.RGBA()
	yy, cb, cr := color.RGBToYCbCr(uint8(r>>8), uint8(g>>8), uint8(b>>8))
	i := p.pixOffset(x, y)
	pair := i &^ 3
	p.Pix[i] = yy
	p.Pix[pair+1] = cb
	p.Pix[pair+3] = cr
}
