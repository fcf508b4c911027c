package syncer

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Logger writes the informational per-table progress lines.
// Output is for humans, not machines.
type Logger struct {
	logger *log.Logger
}

func NewLogger(out io.Writer) *Logger {
	if out == nil {
		out = os.Stdout
	}

	return &Logger{
		logger: log.New(out, "", log.Ldate|log.Ltime),
	}
}

func (l *Logger) log(level, message string) {
	l.logger.Printf("[%s]: %s", level, message)
}

func (l *Logger) Infof(format string, args ...any) {
	l.log("info", fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...any) {
	l.log("error", fmt.Sprintf(format, args...))
}
