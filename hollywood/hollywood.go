// Package hollywood describes the register map of the Wii's I/O die.
//
// Hollywood sits between the Broadway CPU and all peripherals: it contains
// the Starlet coprocessor, the USB controllers, the IPC mailbox and, for
// backwards compatibility, the whole Flipper chipset (video interface,
// external interface bus, audio, serial).
//
// Registers below 0x0d800000 are reachable from the PPC side and are
// accessed uncached.  Registers in the AHB-protected range are only
// reachable by Starlet; under the 'mini' firmware they are accessed by
// proxy through the IPC channel (see the starlet package).
package hollywood

// Broadway bus view of the Flipper/Hollywood register blocks.
const (
	VIBase  = 0x0c002000 // video interface
	IPCBase = 0x0d000000 // Starlet IPC mailbox
	EXIBase = 0x0d006800 // external interface bus
)

// AHB-protected registers, register-by-proxy only.
const (
	// EHCICtl gates interrupt delivery for the USB silicon block: the
	// EHCI controller and both OHCI companion controllers share it.
	EHCICtl = 0x0d0400cc
)

// EHCICtl bits.  Only ever OR these in, the sibling controllers' enable
// bits must survive.
const (
	EHCICtlOH0Intr  = 1 << 11 // OHCI0 interrupt enable
	EHCICtlOH1Intr  = 1 << 12 // OHCI1 interrupt enable
	EHCICtlIntrMask = 0xe0000 // undocumented, required for delivery
)

const uncachedBase = 0xc000_0000

// Uncached returns the uncached Broadway view of a physical address.
func Uncached(addr uint32) uintptr {
	return uintptr(addr) | uncachedBase
}
