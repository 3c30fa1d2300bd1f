// Package bootlog adapts boot.Logger onto host logging sinks.
package bootlog

import (
	"fmt"
	"strings"
	"sync"

	"github.com/golang/glog"

	"github.com/robotalks/l0boot/pkg/boot"
)

// Glog forwards boot messages to glog at a verbosity level.
type Glog struct {
	Level glog.Level
}

// Logf implements boot.Logger.
func (g *Glog) Logf(format string, args ...interface{}) {
	if v := glog.V(g.Level); v {
		v.Info(strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"))
	}
}

// Recorder keeps every formatted message in order.
type Recorder struct {
	messages []string
	lock     sync.Mutex
}

// Logf implements boot.Logger.
func (r *Recorder) Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.lock.Lock()
	r.messages = append(r.messages, msg)
	r.lock.Unlock()
}

// Messages returns a copy of the recorded messages.
func (r *Recorder) Messages() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]string(nil), r.messages...)
}

// Reset drops recorded messages.
func (r *Recorder) Reset() {
	r.lock.Lock()
	r.messages = nil
	r.lock.Unlock()
}

type multiLogger []boot.Logger

// Multi fans out messages to all loggers in order.
func Multi(loggers ...boot.Logger) boot.Logger {
	return multiLogger(loggers)
}

// Logf implements boot.Logger.
func (m multiLogger) Logf(format string, args ...interface{}) {
	for _, l := range m {
		l.Logf(format, args...)
	}
}

// LogLine implements boot.LineLogger.
func (m multiLogger) LogLine(text string) {
	for _, l := range m {
		boot.LogLine(l, text)
	}
}

type safeLogger struct {
	logger boot.Logger
}

// Safe shields the boot sequence from a logger which panics.
func Safe(logger boot.Logger) boot.Logger {
	return &safeLogger{logger: logger}
}

// Logf implements boot.Logger.
func (s *safeLogger) Logf(format string, args ...interface{}) {
	defer s.absorb()
	s.logger.Logf(format, args...)
}

// LogLine implements boot.LineLogger.
func (s *safeLogger) LogLine(text string) {
	defer s.absorb()
	boot.LogLine(s.logger, text)
}

func (s *safeLogger) absorb() {
	if r := recover(); r != nil {
		glog.Warningf("boot logger panic: %v", r)
	}
}
