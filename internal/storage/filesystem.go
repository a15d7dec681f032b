// Package storage writes exported listing text to a local directory.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dir writes files below a single root directory. Names are cleaned so a
// caller cannot escape the root.
type Dir struct {
	root string
}

// OpenDir creates root if needed.
func OpenDir(root string) (*Dir, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errors.New("storage: root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure root: %w", err)
	}
	return &Dir{root: root}, nil
}

// Root returns the configured directory.
func (d *Dir) Root() string {
	if d == nil {
		return ""
	}
	return d.root
}

// Write stores data under name and returns the path it was written to.
// Existing files are replaced.
func (d *Dir) Write(ctx context.Context, name string, data []byte) (string, error) {
	if d == nil {
		return "", errors.New("storage: no directory configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean, err := cleanName(name)
	if err != nil {
		return "", err
	}
	full := filepath.Join(d.root, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("storage: ensure directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write %s: %w", clean, err)
	}
	return full, nil
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("storage: name is required")
	}
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimLeft(strings.TrimPrefix(name, "./"), "/")
	cleaned := strings.ReplaceAll(filepath.Clean(name), "\\", "/")
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("storage: invalid name %q", name)
	}
	return cleaned, nil
}
