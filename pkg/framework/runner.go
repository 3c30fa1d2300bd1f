package framework

import (
	"context"

	"github.com/golang/glog"
)

// RunWithContextCancel runs a func which doesn't accept a context.
// onCancel is called only when the context is done and must make fn return.
// The context error is returned in that case.
func RunWithContextCancel(ctx context.Context, onCancel func(), fn func() error) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- fn()
	}()
	select {
	case <-ctx.Done():
		glog.V(4).Infof("run canceled: %v", ctx.Err())
		if onCancel != nil {
			onCancel()
		}
		<-errCh
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}
