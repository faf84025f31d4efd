package errors

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"
)

type ErrorLevel int

const (
	LevelFatal ErrorLevel = iota + 1
	LevelError
	LevelWarning
	LevelInfo
)

func (l ErrorLevel) String() string {
	return [...]string{"", "Fatal", "Error", "Warning", "Info"}[l]
}

// * Reference codes shared across packages
const (
	RefConfig          = "CONFIG_ERROR"
	RefInput           = "INPUT_ERROR"
	RefGitHubTransport = "GITHUB_TRANSPORT_ERROR"
	RefGitHubAPI       = "GITHUB_API_ERROR"
	RefGitHubDecode    = "GITHUB_DECODE_ERROR"
)

type ApplicationError struct {
	Reference   string
	Title       string
	Detail      string
	RootCause   error
	Level       ErrorLevel
	OccurredAt  time.Time
	CallerTrace []string
}

func (e *ApplicationError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s][%s] %s", e.OccurredAt.Format(time.RFC3339), e.Reference, e.Title)

	if e.Detail != "" {
		fmt.Fprintf(&b, " - %s", e.Detail)
	}

	if e.RootCause != nil {
		fmt.Fprintf(&b, " (caused by: %v)", e.RootCause)
	}

	return b.String()
}

func (e *ApplicationError) Unwrap() error {
	return e.RootCause
}

// * Summary is the message shown to a terminal user, without timestamp or reference
func (e *ApplicationError) Summary() string {
	if e.Detail == "" {
		return e.Title
	}
	return e.Title + ": " + e.Detail
}

func New(ref, title, detail string, cause error, level ErrorLevel) *ApplicationError {
	return &ApplicationError{
		Reference:   ref,
		Title:       title,
		Detail:      detail,
		RootCause:   cause,
		Level:       level,
		OccurredAt:  time.Now().UTC(),
		CallerTrace: captureCallerInfo(3),
	}
}

// Format prints the message for %v and %s. %+v appends the frames that created the error,
// one per line, which is what debug logging uses.
func (e *ApplicationError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		io.WriteString(s, e.Error())
		if s.Flag('+') {
			for _, frame := range e.CallerTrace {
				io.WriteString(s, "\n\t"+frame)
			}
		}
	case 's':
		io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

const maxTraceDepth = 10

// captureCallerInfo records the caller frames of New, stopping at the runtime entry points.
func captureCallerInfo(skip int) []string {
	pc := make([]uintptr, maxTraceDepth)
	n := runtime.Callers(skip, pc)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pc[:n])
	trace := make([]string, 0, n)
	for {
		frame, more := frames.Next()
		if strings.HasPrefix(frame.Function, "runtime.") || strings.HasPrefix(frame.Function, "testing.") {
			break
		}
		trace = append(trace, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		if !more {
			break
		}
	}

	return trace
}

// * HasReference reports whether any ApplicationError in err's chain carries ref
func HasReference(err error, ref string) bool {
	for err != nil {
		var appErr *ApplicationError
		if !errors.As(err, &appErr) {
			return false
		}
		if appErr.Reference == ref {
			return true
		}
		err = appErr.RootCause
	}
	return false
}

// * LevelOf returns the level of the outermost ApplicationError, LevelError otherwise
func LevelOf(err error) ErrorLevel {
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Level
	}
	return LevelError
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}
