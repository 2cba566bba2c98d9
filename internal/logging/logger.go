package logging

import (
	"fmt"
	"os"
	"strings"
)

// Logger writes diagnostics to stderr. The library is silent by default;
// debug output is only emitted when the logger was built with debug=true
// (see the SECUREVALUE_DEBUG environment variable in pkg/secure).
type Logger struct {
	debug bool
}

// New creates a new logger instance.
func New(debug bool) *Logger {
	return &Logger{debug: debug}
}

// Debug logs a debug message if debug mode is enabled.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l == nil || !l.debug {
		return
	}
	fmt.Fprintf(os.Stderr, "[securevalue] "+format+"\n", args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	if l == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "[securevalue] warning: "+format+"\n", args...)
}

// Redacted is the marker substituted for sensitive values.
const Redacted = "[REDACTED]"

// Secret represents a value that must never appear in logs or formatted
// output. Both Stringer interfaces return the redaction marker, so %v,
// %s and %#v all stay safe.
type Secret string

// String implements fmt.Stringer, always returning a redacted value.
func (s Secret) String() string {
	return Redacted
}

// GoString implements fmt.GoStringer for %#v formatting.
func (s Secret) GoString() string {
	return Redacted
}

// Redact replaces every occurrence of the given sensitive values in s
// with the redaction marker.
func Redact(s string, secrets []string) string {
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		s = strings.ReplaceAll(s, secret, Redacted)
	}
	return s
}
