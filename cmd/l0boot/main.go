//go:build tinygo

package main

import (
	"machine"

	"github.com/robotalks/l0boot/pkg/boot"
)

// partition is where the application image is linked, right after
// the bootloader's own flash.
const partition boot.Addr = 0x00010000

func main() {
	machine.Serial.Configure(machine.UARTConfig{})
	boot.New(partition).
		WithLogger(boot.WriterLogger(machine.Serial)).
		Boot()
}
