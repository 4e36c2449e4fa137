package asset

import (
	"context"
	"io"
	"strings"
)

// Storage is the durable backend that holds uploaded files by name.
type Storage interface {
	Save(ctx context.Context, name, contentType string, r io.Reader, size int64) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
}

// ValidName reports whether name is a bare file name safe to hand to a Storage.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.Contains(name, "..")
}
