// atomic.go provides atomic file writes via write-to-temp-and-rename.
// Session records are read by concurrent CLI invocations, so partial
// writes must never be observable.

package util

import (
	"encoding/json"
	"fmt"
	"os"
)

// AtomicWriteFile writes data to path atomically: the bytes land in
// path+".tmp" first and are renamed into place. Readers see either the
// old content or the new content, never a torn write.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming %s: %w", tmp, err)
	}
	return nil
}

// AtomicWriteJSON marshals v with two-space indentation and writes it
// atomically to path.
func AtomicWriteJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return AtomicWriteFile(path, data, 0644)
}
