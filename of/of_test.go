package of

import (
	"errors"
	"testing"
)

func testTree() *Node {
	return &Node{
		Name:       "/",
		Compatible: []string{"nintendo,wii"},
		Children: []*Node{
			{
				Name:       "ipc",
				Compatible: []string{"nintendo,starlet-mini-ipc"},
				Reg:        []Resource{{Start: 0x0d000000, End: 0x0d00000b}},
				Interrupts: []int{14},
			},
			{
				Name:       "usb0",
				Compatible: []string{"nintendo,hollywood-ohci"},
				Reg:        []Resource{{Start: 0x0d050000, End: 0x0d050fff}},
				Interrupts: []int{5},
			},
			{
				Name:       "usb1",
				Compatible: []string{"nintendo,hollywood-ohci"},
				Reg:        []Resource{{Start: 0x0d060000, End: 0x0d060fff}},
				Interrupts: []int{6},
			},
		},
	}
}

func TestFind(t *testing.T) {
	root := testTree()

	if n := root.Find("nintendo,wii"); n != root {
		t.Error("root should find itself")
	}
	if n := root.Find("nintendo,starlet-mini-ipc"); n == nil || n.Name != "ipc" {
		t.Errorf("got %v", n)
	}
	// depth first, document order
	if n := root.Find("nintendo,hollywood-ohci"); n == nil || n.Name != "usb0" {
		t.Errorf("got %v", n)
	}
	if n := root.Find("nintendo,flipper-exi"); n != nil {
		t.Errorf("got %v, want nil", n)
	}
	var nilNode *Node
	if n := nilNode.Find("nintendo,wii"); n != nil {
		t.Errorf("got %v, want nil", n)
	}
}

func TestAddressToResource(t *testing.T) {
	node := testTree().Children[1]

	res, err := node.AddressToResource(0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Start != 0x0d050000 || res.Len() != 0x1000 {
		t.Errorf("got %#x len %#x", res.Start, res.Len())
	}

	_, err = node.AddressToResource(1)
	if !errors.Is(err, ErrNoResource) {
		t.Errorf("got %v, want ErrNoResource", err)
	}
}

func TestParseAndMapIRQ(t *testing.T) {
	node := testTree().Children[0]

	irq, err := node.ParseAndMapIRQ(0)
	if err != nil {
		t.Fatal(err)
	}
	if irq.Line() != 14 {
		t.Errorf("got line %d", irq.Line())
	}
	if irq.Disposed() {
		t.Error("fresh mapping already disposed")
	}
	irq.Dispose()
	if !irq.Disposed() {
		t.Error("not disposed")
	}

	defer func() {
		if recover() == nil {
			t.Error("double dispose did not panic")
		}
	}()
	irq.Dispose()
}

func TestParseAndMapIRQMissing(t *testing.T) {
	node := &Node{Name: "video"}
	_, err := node.ParseAndMapIRQ(0)
	if !errors.Is(err, ErrNoIRQ) {
		t.Errorf("got %v, want ErrNoIRQ", err)
	}
}
