// Package filex contains small filesystem helpers for writing report
// artifacts.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureParentDir creates the parent directory of path if it does not
// exist yet and returns the cleaned path.
func EnsureParentDir(path string) (string, error) {
	path = filepath.Clean(path)

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o770); err != nil {
			return "", fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	return path, nil
}

// WriteText writes UTF-8 text to path, creating the parent directory if
// needed.
func WriteText(path string, text string) error {
	path, err := EnsureParentDir(path)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(text), 0o660); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
