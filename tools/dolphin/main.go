// Package dolphin runs an executable in the Dolphin emulator and turns
// the test output on the serial console into an exit code.
package dolphin

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/aymanbagabas/go-pty"
	"golang.org/x/text/transform"
)

const usageString = `Run an executable in an emulator and report the verdict.

Usage: %s [flags] <dolfile>

`

var (
	flags = flag.NewFlagSet("test", flag.ExitOnError)

	infile  string
	emu     = flags.String("emu", "dolphin-emu-nogui", "emulator command")
	timeout = flags.Duration("timeout", 5*time.Minute, "give up after this long")
)

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "test")
	flags.PrintDefaults()
}

// crStripper drops carriage returns, the emulator's console output uses
// CRLF line endings.
type crStripper struct{ transform.NopResetter }

func (crStripper) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for _, b := range src {
		if b == '\r' {
			nSrc++
			continue
		}
		if nDst == len(dst) {
			err = transform.ErrShortDst
			break
		}
		dst[nDst] = b
		nDst++
		nSrc++
	}
	return
}

// scan echoes the output and derives the exit code from the first
// verdict line.  done is false if the output ended without one.
func scan(r io.Reader) (code int, done bool) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		log.Println(line)
		switch {
		case strings.HasPrefix(line, "fatal error:"), strings.HasPrefix(line, "panic:"):
			return 1, true
		case line == "FAIL":
			return 1, true
		case line == "PASS":
			return 0, true
		}
	}
	return 1, false
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

	p, err := pty.New()
	if err != nil {
		log.Fatalln("test:", err)
	}
	defer p.Close()

	c := p.Command(*emu, "--batch", "--exec", infile)
	if err := c.Start(); err != nil {
		log.Fatalln("test:", err)
	}

	out := transform.NewReader(p, crStripper{})
	verdict := make(chan int, 1)
	go func() {
		code, _ := scan(out)
		verdict <- code
	}()

	var code int
	select {
	case code = <-verdict:
		// give panic() time to print the stacktrace
		time.Sleep(500 * time.Millisecond)
	case <-time.After(*timeout):
		log.Println("test: timeout")
		code = 1
	}

	if c.Process != nil {
		c.Process.Kill()
	}
	c.Wait()
	os.Exit(code)
}
