// Package of provides a minimal model of the flattened device tree the
// boot loader hands over, plus a platform bus that routes matching nodes
// to registered drivers.
//
// There is deliberately no DTB parser here; whoever boots the system
// builds the tree and passes its root around as an explicit handle.
package of

import (
	"errors"
	"fmt"
)

var (
	ErrNoDevice   = errors.New("of: no such device")
	ErrNoResource = errors.New("of: no such resource")
	ErrNoIRQ      = errors.New("of: no such interrupt")
)

// Resource is an address window on the Broadway bus, both ends inclusive.
type Resource struct {
	Start uintptr
	End   uintptr
}

func (r Resource) Len() uintptr { return r.End - r.Start + 1 }

// Node is a single device tree node.
type Node struct {
	Name       string
	Compatible []string
	Reg        []Resource
	Interrupts []int
	Children   []*Node
}

// IsCompatible reports whether the node declares compatibility with s.
func (n *Node) IsCompatible(s string) bool {
	for _, c := range n.Compatible {
		if c == s {
			return true
		}
	}
	return false
}

// Find returns the first node in the subtree rooted at n that is
// compatible with s, or nil.  Depth first, n itself included.
func (n *Node) Find(s string) *Node {
	if n == nil {
		return nil
	}
	if n.IsCompatible(s) {
		return n
	}
	for _, c := range n.Children {
		if m := c.Find(s); m != nil {
			return m
		}
	}
	return nil
}

// AddressToResource resolves the node's index'th register window.
func (n *Node) AddressToResource(index int) (Resource, error) {
	if index < 0 || index >= len(n.Reg) {
		return Resource{}, fmt.Errorf("%s reg %d: %w", n.Name, index, ErrNoResource)
	}
	return n.Reg[index], nil
}

// IRQ is a mapped interrupt line.  It stays valid until disposed.
type IRQ struct {
	line     int
	disposed bool
}

// ParseAndMapIRQ resolves and maps the node's index'th interrupt line.
// The caller owns the mapping and must dispose it again.
func (n *Node) ParseAndMapIRQ(index int) (*IRQ, error) {
	if index < 0 || index >= len(n.Interrupts) {
		return nil, fmt.Errorf("%s irq %d: %w", n.Name, index, ErrNoIRQ)
	}
	return &IRQ{line: n.Interrupts[index]}, nil
}

func (q *IRQ) Line() int { return q.line }

// Dispose releases the mapping.  Disposing twice is a bug.
func (q *IRQ) Dispose() {
	if q.disposed {
		panic("of: irq mapping disposed twice")
	}
	q.disposed = true
}

func (q *IRQ) Disposed() bool { return q.disposed }
