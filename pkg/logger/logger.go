package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

func (l Level) String() string {
	return [...]string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}[l]
}

var (
	mu     sync.Mutex
	level  = LevelInfo
	output io.Writer = os.Stderr
	exit   = os.Exit

	levelColors = map[Level]*color.Color{
		LevelDebug: color.New(color.FgHiBlack),
		LevelInfo:  color.New(color.FgCyan),
		LevelWarn:  color.New(color.FgYellow),
		LevelError: color.New(color.FgRed),
		LevelFatal: color.New(color.FgRed, color.Bold),
	}
)

// * SetLevel sets the minimum level that gets written
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// * SetOutput redirects log lines, mostly useful in tests
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func GetLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return level
}

func logf(l Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if l < level {
		return
	}

	prefix := levelColors[l].Sprintf("%-5s", l.String())
	fmt.Fprintf(output, "%s %s %s\n", time.Now().Format("15:04:05"), prefix, fmt.Sprintf(format, args...))
}

func Debug(format string, args ...any) {
	logf(LevelDebug, format, args...)
}

func Info(format string, args ...any) {
	logf(LevelInfo, format, args...)
}

func Warn(format string, args ...any) {
	logf(LevelWarn, format, args...)
}

func Error(format string, args ...any) {
	logf(LevelError, format, args...)
}

// * Fatal logs and terminates the process with exit code 1
func Fatal(format string, args ...any) {
	logf(LevelFatal, format, args...)
	exit(1)
}
