package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/clktmr/wii/tools/dolphin"
	"github.com/clktmr/wii/tools/sdcard"
	"github.com/clktmr/wii/tools/splash"
	"github.com/clktmr/wii/tools/wiiload"
)

const usageString = `wiigo is a tool for development of Wii homebrew.

Usage:

	%s <command> [arguments]

The commands are:

	send    upload an executable over the network
	sd      build an SD card image with an app installed
	splash  convert an image to a raw framebuffer dump
	test    run an executable in an emulator and report the verdict
`

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), usageString, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	log.Default().SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	switch flag.Arg(0) {
	case "send":
		wiiload.Main(flag.Args())
	case "sd":
		sdcard.Main(flag.Args())
	case "splash":
		splash.Main(flag.Args())
	case "test":
		dolphin.Main(flag.Args())
	default:
		fmt.Fprintf(flag.CommandLine.Output(), "unknown command: %s\n", flag.Arg(0))
		flag.Usage()
		os.Exit(1)
	}
}
