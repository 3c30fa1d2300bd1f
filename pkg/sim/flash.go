// Package sim runs the boot handoff against simulated flash on a host.
package sim

import (
	"encoding/binary"
	"fmt"

	"github.com/robotalks/l0boot/pkg/boot"
)

// FaultError is raised as a panic by simulated memory when an
// unmapped address is read, the way a bus fault stops the CPU.
type FaultError struct {
	Addr boot.Addr
}

// Error implements error.
func (e *FaultError) Error() string {
	return fmt.Sprintf("bus fault reading 0x%08x", uint32(e.Addr))
}

// Flash is a simulated flash region mapped at Base.
// Words are stored little-endian, as on Cortex-M.
type Flash struct {
	Base boot.Addr
	Data []byte
}

// End returns the first address after the region.
func (f *Flash) End() uint64 {
	return uint64(f.Base) + uint64(len(f.Data))
}

// Contains checks if a whole word at addr is mapped.
func (f *Flash) Contains(addr boot.Addr) bool {
	return addr >= f.Base && uint64(addr)+boot.WordSize <= f.End()
}

// ReadWord implements boot.Memory. It panics with *FaultError
// if the word is not mapped.
func (f *Flash) ReadWord(addr boot.Addr) uint32 {
	if !f.Contains(addr) {
		panic(&FaultError{Addr: addr})
	}
	off := addr - f.Base
	return binary.LittleEndian.Uint32(f.Data[off : off+boot.WordSize])
}

// ReadHeader reads the partition header and reports a fault as error.
func ReadHeader(mem boot.Memory, partition boot.Addr) (h boot.Header, err error) {
	defer recoverFault(&err)
	h = boot.ReadHeader(mem, partition)
	return
}

func recoverFault(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if fault, ok := r.(*FaultError); ok {
		*err = fault
		return
	}
	*err = fmt.Errorf("boot panic: %v", r)
}
