// Package kexec carries the minimal image model for replacing the
// running kernel without a power cycle.
//
// The staging and the final jump are generic and live elsewhere; boards
// only sequence their own hardware around the jump.
package kexec

// Segment is a chunk of the staged image and its destination.
type Segment struct {
	Buf  []byte
	Phys uintptr
}

// Image is a staged kernel image.
type Image struct {
	Entry    uintptr
	Cmdline  string
	Segments []Segment
}

var boot func(*Image)

// RegisterBoot installs the generic jump into a staged image.
func RegisterBoot(fn func(*Image)) { boot = fn }

// Boot hands control to the staged image.  Does not return on success.
func Boot(img *Image) {
	if boot == nil {
		panic("kexec: no generic boot path registered")
	}
	boot(img)
}
