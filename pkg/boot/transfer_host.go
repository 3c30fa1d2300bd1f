//go:build !tinygo

package boot

import (
	"runtime"

	"github.com/golang/glog"
)

// platformTransfer has no hardware to jump to on a host build.
func platformTransfer(sp, entry uint32) {
	glog.Fatalf("no control transfer on %s/%s: sp=0x%08x entry=0x%08x",
		runtime.GOOS, runtime.GOARCH, sp, entry)
}
