// Package boot provides the L0 second-stage boot handoff.
package boot

// A partition is a contiguous region of program memory holding a bootable
// application image. Its first two machine words form the header:
//
//	+0  initial stack pointer
//	+4  entry address (reset vector)
//
// Boot reads the header, reports progress through a Logger and transfers
// control to the application. The transfer never returns.
//
// Nothing in this package validates the partition address or the header
// read from it. Reading an unmapped address is hardware-defined behavior.
// Header.Check is available to tooling which wants Cortex-M sanity checks,
// Boot itself never calls it.
//
// This package is linked into the firmware, it must not depend on
// heap-heavy or OS-backed packages outside the host-only transfer.
