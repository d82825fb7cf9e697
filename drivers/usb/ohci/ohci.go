// Package ohci glues OHCI host controllers to the generic USB stack.
//
// The register level OHCI state machine is generic across platforms and
// pluggable through Core; this package contributes the platform buses
// that carry such controllers.
package ohci

import "github.com/clktmr/wii/drivers/usb/hcd"

// Core is the platform independent OHCI engine driving one controller
// through an HCD's register window.
type Core interface {
	// Init readies the controller, Run starts the schedule.  Separate
	// steps so the platform glue can order its own setup in between.
	Init() error
	Run() error
	Stop()
	Shutdown()

	URBEnqueue(u *hcd.URB) error
	URBDequeue(u *hcd.URB) error
	EndpointDisable(ep uint8)

	FrameNumber() int

	HubStatusData(buf []byte) int
	HubControl(req, value, index uint16, buf []byte) error

	BusSuspend() error
	BusResume() error
	StartPortReset(port int) error
}

// NewCore creates the engine for an HCD.  Installed by the generic OHCI
// implementation; platform glue refuses to probe while it is nil.
var NewCore func(h *hcd.HCD) Core
