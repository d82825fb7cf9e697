package ohci

import (
	"errors"
	"fmt"

	"github.com/clktmr/wii/drivers/usb/hcd"
	"github.com/clktmr/wii/hollywood"
	"github.com/clktmr/wii/of"
	"github.com/clktmr/wii/starlet"
)

// The Hollywood OHCI controllers sit behind the EHCI companion block.
// Their interrupts must be unmasked in the EHCI control register, which
// only the Starlet's MINI firmware lets us reach, through its register
// access service.

const (
	driverName  = "ohci-mipc"
	productDesc = "Nintendo Wii OHCI Host Controller"

	compatible = "nintendo,hollywood-ohci"
)

var (
	ErrNotMini  = errors.New("ohci: starlet is not running MINI")
	ErrDisabled = errors.New("ohci: usb host stack disabled")
	ErrNoCore   = errors.New("ohci: no generic core registered")
)

type controller struct {
	hcd  *hcd.HCD
	core Core
	io   starlet.IO
	irq  *of.IRQ
}

// Driver returns the platform driver for the Hollywood OHCI companions.
// ipc identifies the firmware flavour, io performs the privileged
// register accesses.
func Driver(ipc starlet.Channel, io starlet.IO) *of.Driver {
	return &of.Driver{
		Name:  driverName,
		Match: []string{compatible},
		Probe: func(dev *of.Device) error {
			return probe(dev, ipc, io)
		},
		Remove:   remove,
		Shutdown: shutdown,
	}
}

// probe binds one controller.  All gates run before any resource is
// acquired, so a declined probe leaves nothing behind.
func probe(dev *of.Device, ipc starlet.Channel, io starlet.IO) error {
	if hcd.Disabled() {
		return fmt.Errorf("%s: %w", dev.Node.Name, ErrDisabled)
	}
	if ipc.Flavour() != starlet.FlavourMini {
		return fmt.Errorf("%s: %w", dev.Node.Name, ErrNotMini)
	}
	if NewCore == nil {
		return fmt.Errorf("%s: %w", dev.Node.Name, ErrNoCore)
	}

	res, err := dev.Node.AddressToResource(0)
	if err != nil {
		return err
	}

	c := &controller{io: io}
	h := hcd.New(c.driver(), driverName)
	h.RsrcStart = res.Start
	h.RsrcLen = res.Len()

	irq, err := dev.Node.ParseAndMapIRQ(0)
	if err != nil {
		h.Put()
		return err
	}

	h.Regs = res.Start
	c.hcd = h
	c.core = NewCore(h)
	c.irq = irq

	if err := h.Add(irq); err != nil {
		irq.Dispose()
		h.Put()
		return err
	}

	dev.SetDrvData(c)
	return nil
}

func (c *controller) driver() *hcd.Driver {
	return &hcd.Driver{
		Description: driverName,
		ProductDesc: productDesc,
		Flags:       hcd.FlagUSB11 | hcd.FlagBounceDMA,

		Start:    c.start,
		Stop:     func() { c.core.Stop() },
		Shutdown: func() { c.core.Shutdown() },

		URBEnqueue:      func(u *hcd.URB) error { return c.core.URBEnqueue(u) },
		URBDequeue:      func(u *hcd.URB) error { return c.core.URBDequeue(u) },
		EndpointDisable: func(ep uint8) { c.core.EndpointDisable(ep) },

		GetFrameNumber: func() int { return c.core.FrameNumber() },

		HubStatusData: func(buf []byte) int { return c.core.HubStatusData(buf) },
		HubControl: func(req, value, index uint16, buf []byte) error {
			return c.core.HubControl(req, value, index, buf)
		},

		BusSuspend:     func() error { return c.core.BusSuspend() },
		BusResume:      func() error { return c.core.BusResume() },
		StartPortReset: func(port int) error { return c.core.StartPortReset(port) },
	}
}

// start initializes the core, then unmasks both OHCI interrupt sources
// in the EHCI control register before the schedule runs.  The unmask is
// a read-modify-write OR, so two controllers starting in any order end
// up with the same register value.
func (c *controller) start() error {
	if err := c.core.Init(); err != nil {
		return err
	}

	starlet.SetBits32(c.io, hollywood.EHCICtl,
		hollywood.EHCICtlIntrMask|hollywood.EHCICtlOH0Intr|hollywood.EHCICtlOH1Intr)

	if err := c.core.Run(); err != nil {
		// The interrupt enables stay set: the sibling controller
		// may already depend on them.
		c.core.Stop()
		return fmt.Errorf("%s: run: %w", driverName, err)
	}
	return nil
}

// remove unwinds probe in reverse order.
func remove(dev *of.Device) error {
	c := dev.DrvData().(*controller)
	c.hcd.Remove()
	c.irq.Dispose()
	c.hcd.Put()
	dev.SetDrvData(nil)
	return nil
}

func shutdown(dev *of.Device) {
	if c, ok := dev.DrvData().(*controller); ok && c != nil {
		c.hcd.Shutdown()
	}
}
