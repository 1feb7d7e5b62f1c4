// Package logger provides leveled logging on top of the standard logger.
// Output goes wherever main points the standard logger (the log file), since
// the terminal belongs to the UI.
package logger

import (
	"fmt"
	stdlog "log"
	"strings"
	"sync"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	mu           sync.RWMutex
	currentLevel = LevelInfo
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name into a Level.
func ParseLevel(level string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO", "":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", level)
}

// SetLevel sets the minimum level by name. Unknown names are ignored.
func SetLevel(level string) {
	l, err := ParseLevel(level)
	if err != nil {
		return
	}
	mu.Lock()
	currentLevel = l
	mu.Unlock()
}

// GetLevel returns the current minimum level.
func GetLevel() Level {
	mu.RLock()
	defer mu.RUnlock()
	return currentLevel
}

func logf(level Level, format string, v ...any) {
	if level < GetLevel() {
		return
	}
	// calldepth 3 makes Lshortfile report the caller of Debug/Info/...
	_ = stdlog.Output(3, fmt.Sprintf("[%s] %s", level.String(), fmt.Sprintf(format, v...)))
}

func Debug(format string, v ...any) {
	logf(LevelDebug, format, v...)
}

func Info(format string, v ...any) {
	logf(LevelInfo, format, v...)
}

func Warn(format string, v ...any) {
	logf(LevelWarn, format, v...)
}

func Error(format string, v ...any) {
	logf(LevelError, format, v...)
}
