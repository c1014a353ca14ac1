package objstore

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// ErrPermissionDenied reports that the backend's access policy rejected a
// write. Callers use it as a structured discriminant instead of matching
// error text.
var ErrPermissionDenied = errors.New("object store permission denied")

// Store is the bundle object store. Uploads overwrite any existing object
// at the same key.
type Store interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	PublicURL(key string) string
	Delete(ctx context.Context, key string) error
	Close() error
}

// Config holds driver selection and backend settings
type Config struct {
	Driver         string
	Bucket         string
	Region         string
	Endpoint       string
	ForcePathStyle bool
	BaseDir        string
	PublicBaseURL  string
	Timeout        time.Duration
}

// sanitizeKey prevents path traversal
func sanitizeKey(key string) string {
	key = filepath.ToSlash(key)
	key = strings.TrimLeft(key, "/")
	parts := strings.Split(key, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" || p == "." || p == ".." {
			continue
		}
		out = append(out, p)
	}
	return strings.Join(out, "/")
}
