package boot

import (
	"fmt"
	"strings"
)

// Addr is a byte address in the target's 32-bit address space.
type Addr uint32

// WordSize is the size of a machine word in bytes.
const WordSize = 4

// Header is the partition header: the first two words of a partition.
type Header struct {
	// SP is the value loaded into the stack pointer before transfer.
	SP uint32
	// Entry is the address to branch to.
	Entry uint32
}

// HeaderAddrs returns the addresses of both header words.
// Addresses wrap around at the top of the address space.
func HeaderAddrs(partition Addr) (sp, entry Addr) {
	return partition, partition + WordSize
}

// ReadHeader reads the header of the partition from mem.
func ReadHeader(mem Memory, partition Addr) Header {
	spAddr, entryAddr := HeaderAddrs(partition)
	return Header{
		SP:    mem.ReadWord(spAddr),
		Entry: mem.ReadWord(entryAddr),
	}
}

// String implements fmt.Stringer.
func (h Header) String() string {
	return fmt.Sprintf("sp=0x%08x entry=0x%08x", h.SP, h.Entry)
}

// erasedWord is the content of erased flash.
const erasedWord uint32 = 0xffffffff

// Check verifies the header against Cortex-M conventions.
// It is never called by Boot.
func (h Header) Check() error {
	var violations []string
	if h.SP == 0 || h.SP == erasedWord {
		violations = append(violations, fmt.Sprintf("invalid stack pointer 0x%08x", h.SP))
	} else if h.SP&(WordSize-1) != 0 {
		violations = append(violations, fmt.Sprintf("stack pointer 0x%08x not word aligned", h.SP))
	}
	if h.Entry == erasedWord {
		violations = append(violations, "entry address reads as erased flash")
	} else if h.Entry&1 == 0 {
		violations = append(violations, fmt.Sprintf("entry address 0x%08x missing Thumb bit", h.Entry))
	}
	if len(violations) == 0 {
		return nil
	}
	return &HeaderError{Header: h, Violations: violations}
}

// HeaderError reports a header failing Check.
type HeaderError struct {
	Header     Header
	Violations []string
}

// Error implements error.
func (e *HeaderError) Error() string {
	return fmt.Sprintf("bad header (%s): %s", e.Header, strings.Join(e.Violations, "; "))
}
