// Package starlet models the Wii's I/O coprocessor.
//
// Starlet is an ARM core inside Hollywood that mediates all "new" I/O:
// USB, SD, NAND, WLAN, and power management.  The PPC side talks to it
// through an IPC mailbox.  Which requests are valid depends entirely on
// the firmware flavour Starlet is running; the register sequences in
// this repository are only valid under the minimal 'mini' firmware.
package starlet

import (
	"errors"
	"fmt"
)

// Flavour identifies the firmware currently running on Starlet.
type Flavour uint8

const (
	FlavourUnknown Flavour = iota
	FlavourIOS             // Nintendo's IOS
	FlavourMini            // the homebrew 'mini' firmware
)

func (f Flavour) String() string {
	switch f {
	case FlavourIOS:
		return "ios"
	case FlavourMini:
		return "mini"
	default:
		return fmt.Sprintf("unknown (%d)", uint8(f))
	}
}

// TitleID names an installed title in the ES sense.
type TitleID uint64

// TitleHBC is The Homebrew Channel ("JODI"), the chain-launch target of
// the restart path.
const TitleHBC TitleID = 0x0001_0001_4a4f_4449

// ErrUnsupported is returned when the running firmware flavour does not
// implement a request.
var ErrUnsupported = errors.New("starlet: request not supported by firmware")

// Channel issues requests to Starlet.
//
// All requests are fire and forget: a nil return means the request was
// issued, not that it completed.  For the ES and STM requests below the
// only observable completion is a coprocessor-side reset that takes the
// caller with it; there is deliberately no way to wait for it.
type Channel interface {
	// Flavour reports the firmware flavour behind the channel.
	Flavour() Flavour

	// ReloadAndLaunch makes Starlet reload its firmware and chain-launch
	// the given title.
	ReloadAndLaunch(title TitleID) error
	// ReloadAndDiscard makes Starlet reload its firmware and release all
	// I/O resources it mediates, without launching anything.
	ReloadAndDiscard() error

	// Restart requests an assisted low-level restart.
	Restart() error
	// PowerOff requests an assisted power-off.
	PowerOff() error
}

// IO provides word access to AHB-protected registers by proxy through
// the coprocessor.  The PPC side cannot reach these registers directly.
type IO interface {
	In32(addr uint32) uint32
	Out32(addr uint32, v uint32)
}

// SetBits32 ORs mask into the register at addr.  This is the only write
// pattern allowed on registers shared with a sibling device: it is
// commutative and idempotent under any interleaving of two writers.
func SetBits32(io IO, addr uint32, mask uint32) {
	io.Out32(addr, io.In32(addr)|mask)
}
