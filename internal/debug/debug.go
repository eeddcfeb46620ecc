// Package debug provides opt-in trace output for diagnosing individual
// match decisions without polluting normal batch output.
package debug

import (
	"fmt"
	"log"
	"time"
)

// Logf writes a timestamped trace line when tracing is enabled.
func Logf(enabled bool, format string, args ...interface{}) {
	if !enabled {
		return
	}
	log.Printf("[%s] %s", time.Now().Format("15:04:05.000"), fmt.Sprintf(format, args...))
}

// Timing logs the duration of an operation when tracing is enabled.
// Call the returned function when the operation completes.
func Timing(enabled bool, operation string) func() {
	if !enabled {
		return func() {}
	}
	start := time.Now()
	return func() {
		Logf(enabled, "%s took %v", operation, time.Since(start))
	}
}
