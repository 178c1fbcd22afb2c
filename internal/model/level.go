package model

// LogLevel represents the severity of a log entry shown in the log panel
type LogLevel string

const (
	// LevelInfo is the default level for progress messages
	LevelInfo LogLevel = "INFO"

	// LevelWarning marks recoverable oddities, e.g. an empty links file
	LevelWarning LogLevel = "WARNING"

	// LevelError marks precondition and per-URL failures
	LevelError LogLevel = "ERROR"
)

// String returns the string representation of LogLevel
func (l LogLevel) String() string {
	return string(l)
}

// IsValid returns true if the level is one of the known levels
func (l LogLevel) IsValid() bool {
	return l == LevelInfo || l == LevelWarning || l == LevelError
}

// ParseLevel maps a string to a LogLevel. Unknown input falls back to INFO.
func ParseLevel(s string) LogLevel {
	level := LogLevel(s)
	if !level.IsValid() {
		return LevelInfo
	}
	return level
}

// LogEntry is a single line in the log panel
type LogEntry struct {
	Level   LogLevel
	Message string
}

// NewLogEntry creates a log entry, normalizing unknown levels to INFO
func NewLogEntry(level LogLevel, message string) LogEntry {
	if !level.IsValid() {
		level = LevelInfo
	}
	return LogEntry{Level: level, Message: message}
}

// String renders the entry the way it appears in the log panel
func (e LogEntry) String() string {
	return e.Level.String() + " - " + e.Message
}
