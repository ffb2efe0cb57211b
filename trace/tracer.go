package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"bliks/types"
)

// Tracer logs executed instructions for debugging.
type Tracer struct {
	enabled bool
	filters []string
	writer  io.Writer
	mu      sync.Mutex
}

// Global tracer instance
var globalTracer *Tracer

// Init initializes the global tracer.
func Init(enabled bool, filters []string, writer io.Writer) {
	if writer == nil {
		writer = os.Stderr
	}
	globalTracer = &Tracer{
		enabled: enabled,
		filters: filters,
		writer:  writer,
	}
}

// IsEnabled returns whether tracing is enabled.
func IsEnabled() bool {
	if globalTracer == nil {
		return false
	}
	return globalTracer.enabled
}

// matchesFilter checks if a function name matches any of the filter patterns.
func (t *Tracer) matchesFilter(funcName string) bool {
	if len(t.filters) == 0 {
		return true // No filters = trace everything
	}

	for _, pattern := range t.filters {
		if matched, _ := filepath.Match(pattern, funcName); matched {
			return true
		}
	}
	return false
}

// Instr logs one executed instruction with its expanded arguments.
func Instr(num int, funcName string, args []types.Value) {
	t := globalTracer
	if t == nil || !t.enabled || !t.matchesFilter(funcName) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	argStrs := make([]string, len(args))
	for i, arg := range args {
		argStrs[i] = types.ToString(arg)
	}

	fmt.Fprintf(t.writer, "[TRACE] %4d %s [%s]\n", num, funcName, strings.Join(argStrs, ", "))
}
