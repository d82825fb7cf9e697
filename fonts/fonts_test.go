package fonts

import (
	"image"
	"testing"

	"golang.org/x/image/font/basicfont"
)

func TestNewBasicFace(t *testing.T) {
	face := NewBasicFace(basicfont.Face7x13)

	if int(face.Height) != basicfont.Face7x13.Height {
		t.Errorf("height %d", face.Height)
	}
	if int(face.Ascent) != basicfont.Face7x13.Ascent {
		t.Errorf("ascent %d", face.Ascent)
	}
	if len(face.Subfonts) != len(basicfont.Face7x13.Ranges) {
		t.Fatalf("%d subfonts", len(face.Subfonts))
	}
}

func TestGlyph(t *testing.T) {
	f := basicfont.Face7x13
	face := NewBasicFace(f)

	const r = 'A'
	sf := face.Subfonts[0]
	if sf.First > r || r > sf.Last {
		t.Fatalf("subfont 0 covers %#x..%#x", sf.First, sf.Last)
	}

	img, origin, advance := sf.Data.Glyph(sf.Offset + int(r-sf.First))
	if advance != f.Advance {
		t.Errorf("advance %d", advance)
	}

	b := img.Bounds()
	if b.Dx() != f.Width || b.Dy() != f.Ascent+f.Descent {
		t.Errorf("glyph bounds %v", b)
	}
	if origin.Y != b.Min.Y+f.Ascent {
		t.Errorf("origin %v for bounds %v", origin, b)
	}

	// 'A' has ink
	lit := false
	alpha := img.(*image.Alpha)
	for y := b.Min.Y; y < b.Max.Y && !lit; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if alpha.AlphaAt(x, y).A != 0 {
				lit = true
				break
			}
		}
	}
	if !lit {
		t.Error("glyph is blank")
	}
}

func TestGlyphAdvance(t *testing.T) {
	face := NewBasicFace(basicfont.Face7x13)
	if got := face.Subfonts[0].Data.Advance(0); got != basicfont.Face7x13.Advance {
		t.Errorf("advance %d", got)
	}
}
