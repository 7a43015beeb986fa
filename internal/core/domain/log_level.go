package domain

// LogLevel is the severity of a log line. Values match log/slog.
type LogLevel int

const (
	// LogLevelDebug shows composed commands and skip decisions.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo is the default level.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn is used for recoverable problems such as a failed state write.
	LogLevelWarn LogLevel = 4
	// LogLevelError is used for failed tasks.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
