// Package testutil provides polling helpers for timing-sensitive tests.
package testutil

import (
	"testing"
	"time"
)

// WaitFor polls cond every 10ms until it returns true or the timeout
// expires. Returns whether the condition was met.
func WaitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

// MustWaitFor is WaitFor that fails the test with msg on timeout.
func MustWaitFor(t *testing.T, timeout time.Duration, msg string, cond func() bool) {
	t.Helper()
	if !WaitFor(t, timeout, cond) {
		t.Fatalf("timed out after %v waiting for %s", timeout, msg)
	}
}
