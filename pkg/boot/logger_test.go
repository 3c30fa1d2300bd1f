package boot

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// countingNoOp counts calls which reach Logf through LogLine.
type countingNoOp struct {
	LineLogger
	logf int
}

func (c *countingNoOp) Logf(format string, args ...interface{}) {
	c.logf++
	c.LineLogger.Logf(format, args...)
}

func TestNoOp(t *testing.T) {
	stdout, stderr := os.Stdout, os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout, os.Stderr = w, w
	defer func() { os.Stdout, os.Stderr = stdout, stderr }()

	require.NotPanics(t, func() {
		for i := 0; i < 3; i++ {
			NoOp.Logf("sp=%d reset=%d", i, i+1)
			NoOp.Logf("%s %v", "x", []int{1})
			NoOp.LogLine("text")
			LogLine(NoOp, "text")
		}
	})
	os.Stdout, os.Stderr = stdout, stderr
	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Empty(t, out)

	require.Equal(t, noopLogger{}, NoOp)
	require.Zero(t, unsafe.Sizeof(noopLogger{}))
}

func TestNoOpLineNotForwarded(t *testing.T) {
	c := &countingNoOp{LineLogger: NoOp}
	LogLine(c, "text")
	LogLine(c, Banner)
	require.Zero(t, c.logf)
	c.Logf("%s", "x")
	require.Equal(t, 1, c.logf)
}

func TestLogLine(t *testing.T) {
	l := &recordingLogger{}
	LogLine(l, "hello")
	LogLine(l, "")
	require.Equal(t, []string{"hello\n", "\n"}, l.messages)

	ll := &lineLogger{}
	LogLine(ll, "hello")
	require.Equal(t, []string{"hello"}, ll.lines)
	require.Empty(t, ll.messages)
}

func TestLoggerFunc(t *testing.T) {
	var got []interface{}
	l := LoggerFunc(func(format string, args ...interface{}) {
		got = append(got, format)
		got = append(got, args...)
	})
	l.Logf("a=%d", 1)
	LogLine(l, "x")
	require.Equal(t, []interface{}{"a=%d", 1, "%s\n", "x"}, got)
}

func TestMemoryFunc(t *testing.T) {
	mem := MemoryFunc(func(addr Addr) uint32 { return uint32(addr) * 2 })
	require.Equal(t, Header{SP: 0x20, Entry: 0x28}, ReadHeader(mem, 0x10))
}

type failingWriter struct {
	calls int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.calls++
	return 0, errors.New("line down")
}

func TestWriterLogger(t *testing.T) {
	var buf bytes.Buffer
	l := WriterLogger(&buf)
	LogLine(l, Banner)
	l.Logf("sp=0x%08x reset=0x%08x\n", 0x20001000, 0x08000201)
	require.Equal(t, "L0 Bootloader\nsp=0x20001000 reset=0x08000201\n", buf.String())

	w := &failingWriter{}
	l = WriterLogger(w)
	require.NotPanics(t, func() {
		l.Logf("a")
		LogLine(l, "b")
	})
	require.Equal(t, 2, w.calls)
}

type chunkWriter struct {
	chunks []string
}

func (w *chunkWriter) Write(p []byte) (int, error) {
	w.chunks = append(w.chunks, string(p))
	return len(p), nil
}

func TestWriterLoggerLineChunks(t *testing.T) {
	long := strings.Repeat("0123456789abcdef", 9)
	testCases := []struct {
		name   string
		text   string
		expect []string
	}{
		{"empty", "", []string{"\n"}},
		{"short", "L0 Bootloader", []string{"L0 Bootloader\n"}},
		{"exact buffer", long[:lineBufSize], []string{long[:lineBufSize], "\n"}},
		{"long", long, []string{long[:64], long[64:128], long[128:] + "\n"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := &chunkWriter{}
			WriterLogger(w).LogLine(tc.text)
			require.Equal(t, tc.expect, w.chunks)
			for _, c := range w.chunks {
				require.True(t, len(c) <= lineBufSize)
			}
		})
	}
}
