//go:build tinygo && !cortexm

package boot

// platformTransfer is nil: this target has no handoff, Boot logs
// NoTransfer and halts.
var platformTransfer Transfer
