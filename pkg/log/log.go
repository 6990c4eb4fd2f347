// pkg/log/log.go
package log

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Logger is the shared logger used by the CLI and by components that are not
// handed one explicitly.
var Logger *log.Logger

func init() {
	Logger = New(os.Stderr)
}

// New creates a logger whose level prefixes read "info:" and "error:" rather
// than charm's four letter tags.
func New(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	l.SetStyles(styles())
	return l
}

func styles() *log.Styles {
	s := log.DefaultStyles()
	s.Levels[log.DebugLevel] = lipgloss.NewStyle().SetString("debug:").Foreground(lipgloss.Color("8"))
	s.Levels[log.InfoLevel] = lipgloss.NewStyle().SetString("info:").Foreground(lipgloss.Color("5"))
	s.Levels[log.WarnLevel] = lipgloss.NewStyle().SetString("warning:").Foreground(lipgloss.Color("3"))
	s.Levels[log.ErrorLevel] = lipgloss.NewStyle().SetString("error:").Foreground(lipgloss.Color("1"))
	return s
}

// SetDebug toggles debug output on the shared logger.
func SetDebug(debug bool) {
	if debug {
		Logger.SetLevel(log.DebugLevel)
		return
	}
	Logger.SetLevel(log.InfoLevel)
}

// Debug logs a debug message.
func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Error logs an error message.
func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}

// Warnf logs a warning message with formatting.
func Warnf(format string, args ...interface{}) {
	Logger.Warnf(format, args...)
}
