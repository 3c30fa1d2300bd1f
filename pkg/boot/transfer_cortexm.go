//go:build tinygo && cortexm

package boot

import "device/arm"

// platformTransfer loads MSP and branches to entry.
func platformTransfer(sp, entry uint32) {
	arm.AsmFull(`
		msr msp, {sp}
		bx {entry}
	`, map[string]interface{}{
		"sp":    sp,
		"entry": entry,
	})
}
