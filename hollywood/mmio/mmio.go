// Package mmio provides 32 bit register cells for the Flipper and
// Hollywood register blocks.
//
// All registers on these buses are 32 bit and must be accessed with
// single word loads and stores, which is also why the cells go through
// sync/atomic instead of plain field access.
package mmio

import (
	"sync/atomic"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// U32 is a single 32 bit register.
type U32 struct {
	u uint32
}

func (r *U32) Load() uint32   { return atomic.LoadUint32(&r.u) }
func (r *U32) Store(v uint32) { atomic.StoreUint32(&r.u, v) }

// SetBits ORs mask into the register.  Read-modify-write, never a blind
// store, so bits owned by others survive.
func (r *U32) SetBits(mask uint32) { r.Store(r.Load() | mask) }

// ClearBits clears all bits in mask.
func (r *U32) ClearBits(mask uint32) { r.Store(r.Load() &^ mask) }

func (r *U32) Addr() uintptr { return uintptr(unsafe.Pointer(&r.u)) }

// R32 is a 32 bit register holding a typed bitfield.
type R32[T constraints.Unsigned] struct {
	u U32
}

func (r *R32[T]) Load() T           { return T(r.u.Load()) }
func (r *R32[T]) Store(v T)         { r.u.Store(uint32(v)) }
func (r *R32[T]) LoadBits(mask T) T { return r.Load() & mask }
func (r *R32[T]) SetBits(mask T)    { r.u.SetBits(uint32(mask)) }
func (r *R32[T]) ClearBits(mask T)  { r.u.ClearBits(uint32(mask)) }
func (r *R32[T]) Addr() uintptr     { return r.u.Addr() }
