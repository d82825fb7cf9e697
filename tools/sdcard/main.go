// Package sdcard builds SD card images with a homebrew app installed
// in the layout the loader expects: apps/<name>/boot.dol next to its
// meta.xml.
package sdcard

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"strings"

	diskfs "github.com/diskfs/go-diskfs"
	"github.com/diskfs/go-diskfs/disk"
	"github.com/diskfs/go-diskfs/filesystem"
)

const usageString = `Build an SD card image with an app installed.

Usage: %s [flags] <dolfile>

`

var (
	flags = flag.NewFlagSet("sd", flag.ExitOnError)

	infile string
	out    = flags.String("o", "sd.img", "output image path")
	name   = flags.String("name", "", "app name, defaults to the executable's name")
	sizeMB = flags.Int64("size", 128, "image size in MiB")
)

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "sd")
	flags.PrintDefaults()
}

const metaTemplate = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<app version="1">
	<name>%s</name>
	<short_description>%s</short_description>
</app>
`

// Build creates a FAT32 image at imgpath holding dol installed as app
// name.
func Build(imgpath, name string, size int64, dol []byte) error {
	d, err := diskfs.Create(imgpath, size, diskfs.Raw, diskfs.SectorSizeDefault)
	if err != nil {
		return err
	}

	spec := disk.FilesystemSpec{
		Partition:   0,
		FSType:      filesystem.TypeFat32,
		VolumeLabel: "WII",
	}
	fs, err := d.CreateFilesystem(spec)
	if err != nil {
		return err
	}

	appdir := path.Join("/apps", name)
	for _, dir := range []string{"/apps", appdir} {
		if err := fs.Mkdir(dir); err != nil {
			return err
		}
	}

	files := map[string][]byte{
		path.Join(appdir, "boot.dol"): dol,
		path.Join(appdir, "meta.xml"): fmt.Appendf(nil, metaTemplate, name, name),
	}
	for p, data := range files {
		f, err := fs.OpenFile(p, os.O_CREATE|os.O_RDWR)
		if err != nil {
			return err
		}
		if _, err := f.Write(data); err != nil {
			return err
		}
	}
	return nil
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

	dol, err := os.ReadFile(infile)
	if err != nil {
		log.Fatalln(err)
	}

	appname := *name
	if appname == "" {
		appname = strings.TrimSuffix(path.Base(infile), path.Ext(infile))
	}

	err = Build(*out, appname, *sizeMB<<20, dol)
	if err != nil {
		log.Fatalln("sd:", err)
	}
}
