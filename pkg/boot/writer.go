package boot

import (
	"fmt"
	"io"
)

// lineBufSize is the chunk size LogLine writes text in.
const lineBufSize = 64

type writerLogger struct {
	w   io.Writer
	buf [lineBufSize]byte
}

// WriterLogger creates a Logger printing to w, e.g. a UART.
// Write errors are dropped.
//
// LogLine copies through a fixed buffer and never allocates. Logf
// formats with fmt, which may allocate on TinyGo.
func WriterLogger(w io.Writer) LineLogger {
	return &writerLogger{w: w}
}

// Logf implements Logger.
func (l *writerLogger) Logf(format string, args ...interface{}) {
	fmt.Fprintf(l.w, format, args...)
}

// LogLine implements LineLogger.
func (l *writerLogger) LogLine(text string) {
	for {
		n := copy(l.buf[:], text)
		text = text[n:]
		if len(text) == 0 && n < lineBufSize {
			l.buf[n] = '\n'
			l.w.Write(l.buf[:n+1])
			return
		}
		l.w.Write(l.buf[:n])
	}
}
