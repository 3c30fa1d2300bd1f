package boot

// Logger is the logging SPI used during boot.
// Implementations must not block indefinitely and must not panic,
// logging is best-effort and can never fail a boot.
type Logger interface {
	// Logf logs a formatted message.
	Logf(format string, args ...interface{})
}

// LineLogger is optionally implemented by a Logger which handles
// pre-formatted lines itself.
type LineLogger interface {
	Logger
	// LogLine logs text followed by a line terminator.
	LogLine(text string)
}

// LoggerFunc is func form of Logger.
type LoggerFunc func(format string, args ...interface{})

// Logf implements Logger.
func (f LoggerFunc) Logf(format string, args ...interface{}) {
	f(format, args...)
}

// LogLine logs text with a line terminator. It uses LineLogger if
// implemented by l, otherwise the line is forwarded to Logf.
func LogLine(l Logger, text string) {
	if ll, ok := l.(LineLogger); ok {
		ll.LogLine(text)
		return
	}
	l.Logf("%s\n", text)
}

type noopLogger struct{}

func (noopLogger) Logf(string, ...interface{}) {}
func (noopLogger) LogLine(string)              {}

// NoOp is the silent logger used when nothing is configured.
var NoOp LineLogger = noopLogger{}
