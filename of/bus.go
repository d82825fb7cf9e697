package of

// Device is the binding between a matched node and the driver that
// probed it.  It exists only while the probe succeeded.
type Device struct {
	Node    *Node
	driver  *Driver
	drvdata any
}

func (d *Device) SetDrvData(v any) { d.drvdata = v }
func (d *Device) DrvData() any     { return d.drvdata }

// Driver declares interest in nodes by compatible string.  Probe may
// decline with an error, in which case no binding is created.
type Driver struct {
	Name     string
	Match    []string
	Probe    func(*Device) error
	Remove   func(*Device) error
	Shutdown func(*Device)
}

func (d *Driver) matches(n *Node) bool {
	for _, m := range d.Match {
		if n.IsCompatible(m) {
			return true
		}
	}
	return false
}

// Bus routes nodes to drivers.  Probe calls for distinct devices carry
// no ordering guarantee relative to each other, drivers must not rely
// on their siblings having probed.
type Bus struct {
	drivers  []*Driver
	devices  []*Device
	declined map[*Node]error
}

func (b *Bus) RegisterDriver(d *Driver) {
	b.drivers = append(b.drivers, d)
}

// ProbeAll walks the tree and offers every node to the first matching
// driver.  A failed probe leaves no binding behind; the error is kept
// for inspection but does not stop the walk.
func (b *Bus) ProbeAll(root *Node) {
	if root == nil {
		return
	}
	b.probe(root)
	for _, c := range root.Children {
		b.ProbeAll(c)
	}
}

func (b *Bus) probe(n *Node) {
	for _, d := range b.drivers {
		if !d.matches(n) {
			continue
		}
		dev := &Device{Node: n, driver: d}
		if err := d.Probe(dev); err != nil {
			if b.declined == nil {
				b.declined = make(map[*Node]error)
			}
			b.declined[n] = err
			return
		}
		b.devices = append(b.devices, dev)
		return
	}
}

// ProbeErr returns why a node did not bind, or nil.
func (b *Bus) ProbeErr(n *Node) error { return b.declined[n] }

// Devices returns all live bindings.
func (b *Bus) Devices() []*Device { return b.devices }

// RemoveAll unbinds all devices in reverse probe order.
func (b *Bus) RemoveAll() {
	for i := len(b.devices) - 1; i >= 0; i-- {
		dev := b.devices[i]
		if dev.driver.Remove != nil {
			dev.driver.Remove(dev)
		}
	}
	b.devices = nil
}

// ShutdownAll runs every binding's shutdown hook.  Independent of
// RemoveAll; invoked by the platform shutdown path.
func (b *Bus) ShutdownAll() {
	for _, dev := range b.devices {
		if dev.driver.Shutdown != nil {
			dev.driver.Shutdown(dev)
		}
	}
}
