package gcnvi

import (
	"bytes"
	"image/color"

	"github.com/embeddedgo/display/pix"
	"golang.org/x/image/font/basicfont"

	"github.com/clktmr/wii/fonts"
)

// Console renders everything written to it as text on the framebuffer,
// always showing the tail of the output.
type Console struct {
	buf bytes.Buffer
	a   *pix.Area
}

func NewConsole(fb *XFB) *Console {
	disp := pix.NewDisplay(NewDriver(fb))
	return &Console{a: disp.NewArea(disp.Bounds())}
}

func (v *Console) Write(p []byte) (n int, err error) {
	n, err = v.buf.Write(p)
	v.Draw()
	return
}

var font = fonts.NewBasicFace(basicfont.Face7x13)

func (v *Console) Draw() {
	bounds := v.a.Bounds()

	// Walk line breaks from the end until the visible lines fill the
	// screen.
	height := int(font.Height)
	b := v.buf.Bytes()
	bb := b
	lines := b
	for height < bounds.Dy() {
		idx := bytes.LastIndexByte(bb, '\n')
		if idx == -1 {
			lines = b
			break
		}
		bb, lines = b[:idx], b[idx+1:]
		height += int(font.Height)
	}

	v.a.SetColor(color.Black)
	v.a.Fill(bounds)

	w := v.a.NewTextWriter(font)
	w.SetColor(color.White)
	w.Write(lines)
	v.a.Flush()
}
