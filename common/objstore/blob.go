package objstore

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"
)

// bucketStore implements Store on top of a gocloud blob bucket
type bucketStore struct {
	bk     *blob.Bucket
	public string
}

// Open opens the configured bucket backend
func Open(ctx context.Context, c Config) (Store, error) {
	var bucketURL string

	switch strings.ToLower(c.Driver) {
	case "s3":
		if c.Bucket == "" {
			return nil, fmt.Errorf("bucket required for s3 driver")
		}
		bucketURL = buildS3URL(c)
	case "file":
		if c.BaseDir == "" {
			return nil, fmt.Errorf("base dir required for file driver")
		}
		abs, err := filepath.Abs(c.BaseDir)
		if err != nil {
			return nil, fmt.Errorf("resolve base dir: %w", err)
		}
		if err := os.MkdirAll(abs, 0o755); err != nil {
			return nil, fmt.Errorf("ensure base dir: %w", err)
		}
		bucketURL = "file://" + filepath.ToSlash(abs)
	case "mem":
		bucketURL = "mem://"
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", c.Driver)
	}

	bk, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("open bucket: %w", err)
	}

	return &bucketStore{
		bk:     bk,
		public: strings.TrimRight(c.PublicBaseURL, "/"),
	}, nil
}

// Upload writes the object at key, replacing any previous content.
// A policy rejection from the backend surfaces as ErrPermissionDenied.
func (s *bucketStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) error {
	key = sanitizeKey(key)

	w, err := s.bk.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return wrapBlobErr("open writer", key, err)
	}

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return wrapBlobErr("write object", key, err)
	}

	if err := w.Close(); err != nil {
		return wrapBlobErr("commit object", key, err)
	}

	return nil
}

// PublicURL returns where the object at key is served from
func (s *bucketStore) PublicURL(key string) string {
	return s.public + "/" + sanitizeKey(key)
}

// Delete removes the object at key. Deleting an absent object is not an error.
func (s *bucketStore) Delete(ctx context.Context, key string) error {
	key = sanitizeKey(key)
	if err := s.bk.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}
		return wrapBlobErr("delete object", key, err)
	}
	return nil
}

// Close releases the underlying bucket
func (s *bucketStore) Close() error {
	return s.bk.Close()
}

func wrapBlobErr(op, key string, err error) error {
	if gcerrors.Code(err) == gcerrors.PermissionDenied {
		return fmt.Errorf("%s %s: %w", op, key, ErrPermissionDenied)
	}
	return fmt.Errorf("%s %s: %w", op, key, err)
}

// buildS3URL constructs a gocloud s3 URL with query params
func buildS3URL(c Config) string {
	u := url.URL{Scheme: "s3", Host: c.Bucket}
	q := url.Values{}
	if c.Region != "" {
		q.Set("region", c.Region)
	}
	if c.Endpoint != "" {
		q.Set("endpoint", c.Endpoint)
	}
	if c.ForcePathStyle {
		q.Set("s3ForcePathStyle", "true")
	}
	u.RawQuery = q.Encode()
	return u.String()
}
