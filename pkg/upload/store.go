// Package upload stores catalogue images on local disk.
package upload

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// PublicPrefix is the URL path the stored files are served under.
const PublicPrefix = "/uploads/"

// DefaultMaxBytes is the per-image size limit.
const DefaultMaxBytes = 5 << 20

var (
	ErrTooLarge        = errors.New("file too large")
	ErrUnsupportedType = errors.New("only images are allowed (jpeg, jpg, png, webp)")
)

var allowed = map[string]string{
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

type Store struct {
	dir      string
	maxBytes int64
	now      func() time.Time
}

func NewStore(dir string, maxBytes int64) (*Store, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("prepare upload dir: %w", err)
	}
	return &Store{dir: dir, maxBytes: maxBytes, now: time.Now}, nil
}

func (s *Store) Dir() string { return s.dir }

// Save validates the image and writes it under a generated name.
// It returns the public path, e.g. "/uploads/1718000000000-123456789.png".
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	want, ok := allowed[ext]
	if !ok {
		return "", ErrUnsupportedType
	}
	if fh.Size > s.maxBytes {
		return "", fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, s.maxBytes)
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := readAtMost(f, s.maxBytes)
	if err != nil {
		return "", err
	}
	if !mimetype.Detect(data).Is(want) {
		return "", ErrUnsupportedType
	}

	name := fmt.Sprintf("%d-%d%s", s.now().UnixMilli(), rand.Int64N(1_000_000_000), ext)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	return PublicPrefix + name, nil
}

// Remove deletes a file previously returned by Save. Unknown paths are ignored.
func (s *Store) Remove(publicPath string) error {
	name, ok := strings.CutPrefix(publicPath, PublicPrefix)
	if !ok || name == "" || strings.ContainsAny(name, `/\`) {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func readAtMost(f io.Reader, max int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(f, max+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(b)) > max {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, max)
	}
	return b, nil
}
