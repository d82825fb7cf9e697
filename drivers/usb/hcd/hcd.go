// Package hcd carries the host controller independent part of the USB
// host stack: the HCD handle that ties a controller driver to its bus
// resources and gates URB traffic on the controller's run state.
package hcd

import (
	"errors"
	"sync/atomic"

	"github.com/clktmr/wii/of"
)

var (
	ErrNotRunning = errors.New("hcd: controller not running")
)

// Flags describe a host controller to the generic stack.
type Flags uint32

const (
	// FlagUSB11 marks a full/low speed only controller.
	FlagUSB11 Flags = 1 << 0
	// FlagBounceDMA marks a controller whose DMA cannot reach all of
	// system memory, so transfer buffers are bounced.
	FlagBounceDMA Flags = 1 << 1
)

// URB is one USB request in flight.
type URB struct {
	Endpoint uint8
	Buf      []byte
	Actual   int
	Status   error
}

// Driver is the operations table a host controller driver fills in.
// Optional bus and hub operations may be nil.
type Driver struct {
	Description string
	ProductDesc string
	Flags       Flags

	Start    func() error
	Stop     func()
	Shutdown func()

	URBEnqueue      func(u *URB) error
	URBDequeue      func(u *URB) error
	EndpointDisable func(ep uint8)

	GetFrameNumber func() int

	HubStatusData func(buf []byte) int
	HubControl    func(req, value, index uint16, buf []byte) error

	BusSuspend     func() error
	BusResume      func() error
	StartPortReset func(port int) error
}

// HCD is one registered host controller.
type HCD struct {
	Driver *Driver
	Name   string

	// Bus window and interrupt, owned by whoever created the HCD.
	RsrcStart uintptr
	RsrcLen   uintptr
	Regs      uintptr
	IRQ       *of.IRQ

	running bool
}

var disabled atomic.Bool

// Disabled reports whether the whole USB host stack is switched off.
func Disabled() bool { return disabled.Load() }

// SetDisabled switches the host stack off or on globally.  Drivers
// check it before touching hardware.
func SetDisabled(v bool) { disabled.Store(v) }

// New allocates an HCD for driver d.  The caller fills in the bus
// resources before Add.
func New(d *Driver, name string) *HCD {
	return &HCD{Driver: d, Name: name}
}

// Add starts the controller and puts it into service.  On failure the
// HCD keeps no reference to irq; the caller still owns it.
func (h *HCD) Add(irq *of.IRQ) error {
	h.IRQ = irq
	if err := h.Driver.Start(); err != nil {
		h.IRQ = nil
		return err
	}
	h.running = true
	return nil
}

// Remove takes the controller out of service.
func (h *HCD) Remove() {
	if !h.running {
		return
	}
	h.running = false
	if h.Driver.Stop != nil {
		h.Driver.Stop()
	}
}

// Shutdown quiesces the controller for a kexec or power transition
// without tearing down the software state.
func (h *HCD) Shutdown() {
	if h.Driver.Shutdown != nil {
		h.Driver.Shutdown()
	}
}

// Put releases the HCD.  Must not be called while running.
func (h *HCD) Put() {
	h.Driver = nil
}

// Enqueue submits an URB.  Fails once the controller left service.
func (h *HCD) Enqueue(u *URB) error {
	if !h.running {
		return ErrNotRunning
	}
	return h.Driver.URBEnqueue(u)
}

// Running reports whether the controller is in service.
func (h *HCD) Running() bool { return h.running }
