package renderer

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/juli-99/raytracing.github.io/pkg/core"
)

// DefaultLogger implements core.Logger by writing to a stream (stderr by
// default, keeping stdout free for image data). Safe for
// concurrent use.
type DefaultLogger struct {
	mu  sync.Mutex
	out io.Writer
}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	dl.mu.Lock()
	defer dl.mu.Unlock()
	fmt.Fprintf(dl.out, format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{out: os.Stderr}
}

// NewWriterLogger creates a logger writing to w
func NewWriterLogger(w io.Writer) core.Logger {
	return &DefaultLogger{out: w}
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Printf(string, ...interface{}) {}
