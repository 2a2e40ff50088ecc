// Package upload writes registration photos to a flat directory and serves
// them back by stored name.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"agrosmart/pkg/metrics"
)

var (
	ErrDisallowedExtension = errors.New("file extension not allowed")
	ErrTooLarge            = errors.New("file exceeds upload limit")
	ErrInvalidName         = errors.New("invalid stored file name")
)

var allowed = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type Store struct {
	Dir      string
	MaxBytes int64 // per file; 0 disables the check
	now      func() time.Time
}

func NewStore(dir string, maxBytes int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{Dir: dir, MaxBytes: maxBytes, now: time.Now}, nil
}

// Allowed reports whether name carries one of the accepted image extensions.
func Allowed(name string) bool {
	return allowed[strings.ToLower(filepath.Ext(name))]
}

// Save copies the upload to disk and returns the stored file name. The file
// is fully written and closed before Save returns.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	if fh == nil || fh.Filename == "" {
		return "", nil
	}
	if !Allowed(fh.Filename) {
		metrics.IncUpload(metrics.ResultRejected)
		return "", ErrDisallowedExtension
	}
	if s.MaxBytes > 0 && fh.Size > s.MaxBytes {
		metrics.IncUpload(metrics.ResultRejected)
		return "", ErrTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		metrics.IncUpload(metrics.ResultError)
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := s.storedName(fh.Filename)
	dst, err := os.OpenFile(filepath.Join(s.Dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		metrics.IncUpload(metrics.ResultError)
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		metrics.IncUpload(metrics.ResultError)
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := dst.Close(); err != nil {
		metrics.IncUpload(metrics.ResultError)
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	metrics.IncUpload(metrics.ResultSuccess)
	return name, nil
}

// storedName is "<timestamp>-<8 hex>-<sanitized original>". The random part
// keeps two uploads in the same second with the same name apart.
func (s *Store) storedName(original string) string {
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	base := unsafeChars.ReplaceAllString(filepath.Base(original), "_")
	base = strings.TrimLeft(base, ".")
	if base == "" {
		base = "upload" + strings.ToLower(filepath.Ext(original))
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%s-%s", now().Format("20060102-150405"), id, base)
}

// Path resolves a stored name to a file inside Dir.
func (s *Store) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") || strings.ContainsAny(name, `/\`) {
		return "", ErrInvalidName
	}
	return filepath.Join(s.Dir, name), nil
}

// Open returns the stored file for reading.
func (s *Store) Open(name string) (*os.File, error) {
	p, err := s.Path(name)
	if err != nil {
		return nil, err
	}
	return os.Open(p)
}
