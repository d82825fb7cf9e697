package gcnvi

import (
	"image"
	"image/color"
	"image/draw"
)

// Driver renders into an XFB.  It implements the pix display driver
// interface with plain software drawing; the framebuffer is scanned out
// continuously, so Flush has nothing to do.
type Driver struct {
	fb   *XFB
	fill image.Uniform
}

func NewDriver(fb *XFB) *Driver {
	return &Driver{fb: fb, fill: image.Uniform{C: color.White}}
}

func (d *Driver) SetDir(dir int) image.Rectangle { return d.fb.Bounds() }

func (d *Driver) Draw(r image.Rectangle, src image.Image, sp image.Point, mask image.Image, mp image.Point, op draw.Op) {
	draw.DrawMask(d.fb, r, src, sp, mask, mp, op)
}

func (d *Driver) SetColor(c color.Color) { d.fill.C = c }

func (d *Driver) Fill(r image.Rectangle) {
	draw.Draw(d.fb, r, &d.fill, image.Point{}, draw.Src)
}

func (d *Driver) Flush() {}

func (d *Driver) Err(clear bool) error { return nil }
