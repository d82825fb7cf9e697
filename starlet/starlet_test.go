package starlet

import "testing"

func TestFlavourString(t *testing.T) {
	tests := []struct {
		f    Flavour
		want string
	}{
		{FlavourIOS, "ios"},
		{FlavourMini, "mini"},
		{FlavourUnknown, "unknown (0)"},
		{Flavour(7), "unknown (7)"},
	}
	for _, tc := range tests {
		if got := tc.f.String(); got != tc.want {
			t.Errorf("%d: got %q, want %q", tc.f, got, tc.want)
		}
	}
}

// fakeIO is a register file backed by a map.
type fakeIO map[uint32]uint32

func (m fakeIO) In32(addr uint32) uint32     { return m[addr] }
func (m fakeIO) Out32(addr uint32, v uint32) { m[addr] = v }

func TestSetBits32(t *testing.T) {
	io := fakeIO{0xcc: 0x000e0000}

	SetBits32(io, 0xcc, 1<<11)
	if io[0xcc] != 0x000e0800 {
		t.Errorf("got %#x", io[0xcc])
	}

	// idempotent
	SetBits32(io, 0xcc, 1<<11)
	if io[0xcc] != 0x000e0800 {
		t.Errorf("got %#x", io[0xcc])
	}

	// commutative with a second writer
	SetBits32(io, 0xcc, 1<<12)
	if io[0xcc] != 0x000e1800 {
		t.Errorf("got %#x", io[0xcc])
	}
}
