// Package wiiload uploads executables over the network to a running
// homebrew loader on the console.
package wiiload

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/buildkite/shellwords"
)

// Port is the TCP port the loader listens on.
const Port = 4299

const (
	magic        = "HAXX"
	versionMajor = 0
	versionMinor = 5
)

const usageString = `Upload an executable to a running homebrew loader.

Usage: %s [flags] <dolfile>

`

var (
	flags = flag.NewFlagSet("send", flag.ExitOnError)

	infile  string
	addr    = flags.String("addr", os.Getenv("WIILOAD"), "console address, host[:port]")
	cliargs = flags.String("args", "", "arguments passed to the executable")
)

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "send")
	flags.PrintDefaults()
}

// Send writes the upload protocol framing and the deflated payload to
// w.  name becomes argv[0] on the console.
func Send(w io.Writer, payload []byte, name string, args []string) error {
	var data bytes.Buffer
	zw := zlib.NewWriter(&data)
	if _, err := zw.Write(payload); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}

	argv := name + "\x00"
	for _, a := range args {
		argv += a + "\x00"
	}
	if len(argv) > math.MaxUint16 {
		return fmt.Errorf("send: argument list too long: %d bytes", len(argv))
	}

	hdr := make([]byte, 0, 16)
	hdr = append(hdr, magic...)
	hdr = append(hdr, versionMajor, versionMinor)
	hdr = binary.BigEndian.AppendUint16(hdr, uint16(len(argv)))
	hdr = binary.BigEndian.AppendUint32(hdr, uint32(data.Len()))
	hdr = binary.BigEndian.AppendUint32(hdr, uint32(len(payload)))

	if _, err := w.Write(hdr); err != nil {
		return err
	}
	if _, err := io.Copy(w, &data); err != nil {
		return err
	}
	_, err := io.WriteString(w, argv)
	return err
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
	if *addr == "" {
		log.Fatalln("send: no console address, set -addr or WIILOAD")
	}

	payload, err := os.ReadFile(infile)
	if err != nil {
		log.Fatalln(err)
	}

	argv, err := shellwords.Split(*cliargs)
	if err != nil {
		log.Fatalln("send: parse args:", err)
	}

	hostport := strings.TrimPrefix(*addr, "tcp:")
	if !strings.Contains(hostport, ":") {
		hostport = fmt.Sprintf("%s:%d", hostport, Port)
	}
	conn, err := net.Dial("tcp", hostport)
	if err != nil {
		log.Fatalln(err)
	}
	defer conn.Close()

	err = Send(conn, payload, filepath.Base(infile), argv)
	if err != nil {
		log.Fatalln(err)
	}
}
