// Package fonts adapts faces from golang.org/x/image to the subfont
// based text renderer.
package fonts

import (
	"image"

	"github.com/embeddedgo/display/font/subfont"
	"golang.org/x/image/font/basicfont"
)

// basicData implements [subfont.Data] over a basicfont glyph mask.  The
// mask stacks all glyphs vertically, one block of Ascent+Descent rows
// per glyph.  The mask must be an *image.Alpha, which is what x/image
// ships for its builtin faces.
type basicData struct {
	f *basicfont.Face
}

func (p *basicData) Advance(i int) int { return p.f.Advance }

func (p *basicData) Glyph(i int) (img image.Image, origin image.Point, advance int) {
	h := p.f.Ascent + p.f.Descent
	r := image.Rect(0, i*h, p.f.Width, (i+1)*h)
	img = p.f.Mask.(*image.Alpha).SubImage(r)
	origin = image.Pt(-p.f.Left, i*h+p.f.Ascent)
	advance = p.f.Advance
	return
}

// NewBasicFace wraps f, typically [basicfont.Face7x13], for use with a
// text writer.
func NewBasicFace(f *basicfont.Face) *subfont.Face {
	face := &subfont.Face{
		Height: int16(f.Height),
		Ascent: int16(f.Ascent),
	}
	for _, rr := range f.Ranges {
		face.Subfonts = append(face.Subfonts, &subfont.Subfont{
			First:  rr.Low,
			Last:   rr.High - 1,
			Offset: rr.Offset,
			Data:   &basicData{f: f},
		})
	}
	return face
}
