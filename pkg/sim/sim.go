package sim

import (
	"context"
	"runtime"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"

	"github.com/robotalks/l0boot/pkg/boot"
	"github.com/robotalks/l0boot/pkg/bootlog"
	"github.com/robotalks/l0boot/pkg/framework"
)

// Handoff describes a simulated control transfer.
type Handoff struct {
	Partition boot.Addr `json:"partition"`
	// SP and Entry are the arguments received by the transfer.
	SP       uint32   `json:"sp"`
	Entry    uint32   `json:"entry"`
	Messages []string `json:"messages"`
}

// Run boots the partition from mem with a transfer which records the
// handoff instead of jumping. logger may be nil. A fault while reading
// the header is returned as *FaultError.
func Run(ctx context.Context, mem boot.Memory, partition boot.Addr, logger boot.Logger) (*Handoff, error) {
	rec := &bootlog.Recorder{}
	var l boot.Logger = rec
	if logger != nil {
		l = bootlog.Multi(rec, bootlog.Safe(logger))
	}

	var handoff *Handoff
	b := boot.New(partition).WithLogger(l).WithMemory(mem).
		WithTransfer(func(sp, entry uint32) {
			handoff = &Handoff{Partition: partition, SP: sp, Entry: entry}
			runtime.Goexit()
		})

	abortCh := make(chan struct{})
	err := framework.RunWithContextCancel(ctx, func() { close(abortCh) }, func() error {
		var bootErr error
		doneCh := make(chan struct{})
		go func() {
			defer close(doneCh)
			defer recoverFault(&bootErr)
			b.Boot()
		}()
		select {
		case <-doneCh:
			return bootErr
		case <-abortCh:
			glog.Warningf("boot of 0x%08x abandoned", uint32(partition))
			return nil
		}
	})
	if err != nil {
		return nil, err
	}
	handoff.Messages = rec.Messages()
	glog.V(2).Infof("handoff 0x%08x: sp=0x%08x entry=0x%08x", uint32(partition), handoff.SP, handoff.Entry)
	return handoff, nil
}

// BoardID derives the simulated board identifier from the host machine.
func BoardID() (string, error) {
	return machineid.ProtectedID("l0boot")
}
