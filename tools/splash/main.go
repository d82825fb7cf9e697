// Package splash converts images into raw YUY2 framebuffer dumps that
// can be copied straight into the external framebuffer at boot.
package splash

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/clktmr/wii/drivers/gcnvi"
)

const usageString = `Convert an image to a raw framebuffer dump.

Usage: %s [flags] <imagefile>

`

var (
	flags = flag.NewFlagSet("splash", flag.ExitOnError)

	infile string
	out    = flags.String("o", "", "output path, defaults to the input with .xfb suffix")
	width  = flags.Int("width", 640, "framebuffer width")
	height = flags.Int("height", 480, "framebuffer height")
)

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "splash")
	flags.PrintDefaults()
}

// Convert scales src to w by h and returns it in the YUY2 layout.
func Convert(src image.Image, w, h int) []byte {
	pix := make([]byte, w*h*2)
	fb := gcnvi.NewXFB(pix, image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(fb, fb.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return pix
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	if flags.NArg() == 1 {
		infile = flags.Arg(0)
	} else {
		flags.Usage()
		os.Exit(1)
	}

	f, err := os.Open(infile)
	if err != nil {
		log.Fatalln(err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		log.Fatalln("splash:", err)
	}

	outfile := *out
	if outfile == "" {
		outfile = strings.TrimSuffix(infile, ".png")
		outfile = strings.TrimSuffix(outfile, ".jpg")
		outfile += ".xfb"
	}

	err = os.WriteFile(outfile, Convert(src, *width, *height), 0o644)
	if err != nil {
		log.Fatalln(err)
	}
}
