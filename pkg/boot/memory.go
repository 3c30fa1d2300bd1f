package boot

import "unsafe"

// Memory reads words from the target address space.
type Memory interface {
	// ReadWord reads the target-native 32-bit word at addr.
	ReadWord(addr Addr) uint32
}

// MemoryFunc is func form of Memory.
type MemoryFunc func(Addr) uint32

// ReadWord implements Memory.
func (f MemoryFunc) ReadWord(addr Addr) uint32 {
	return f(addr)
}

type rawMemory struct{}

// RawMemory reads words directly through pointers. It is only
// meaningful on the target, an unmapped address faults the CPU.
var RawMemory Memory = rawMemory{}

// ReadWord implements Memory.
func (rawMemory) ReadWord(addr Addr) uint32 {
	return *(*uint32)(unsafe.Pointer(uintptr(addr)))
}
