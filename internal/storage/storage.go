// Package storage keeps task images on the local filesystem. Paths handed
// out are relative to the root and use forward slashes.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrTooLarge    = errors.New("image too large")
	ErrUnsupported = errors.New("unsupported image type")
	ErrBadPath     = errors.New("path outside storage root")
)

// sniffLen covers every signature mimetype needs for the allowed types.
const sniffLen = 3072

var allowed = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
	"image/heic": "heic",
	"image/heif": "heif",
}

// Stored describes a saved file.
type Stored struct {
	Path        string
	ContentType string
	Size        int64
}

// Store writes images below root.
type Store struct {
	root     string
	maxBytes int64
	now      func() time.Time
}

func New(root string, maxBytes int64) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("storage root: %w", err)
	}
	return &Store{root: abs, maxBytes: maxBytes, now: time.Now}, nil
}

// MaxBytes is the size limit of a single image.
func (s *Store) MaxBytes() int64 { return s.maxBytes }

// Sniff reads the head of r and returns the detected content type when it is
// an allowed image. The returned reader replays the consumed bytes.
func Sniff(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, err
	}
	head = head[:n]
	mt := mimetype.Detect(head)
	for m := mt; m != nil; m = m.Parent() {
		if _, ok := allowed[m.String()]; ok {
			return m.String(), io.MultiReader(bytes.NewReader(head), r), nil
		}
	}
	return "", nil, fmt.Errorf("%w: %s", ErrUnsupported, mt.String())
}

// Save stores r as a new image under tasks/<yyyy>/<mm>/. The file is removed
// again if it turns out larger than the limit.
func (s *Store) Save(ctx context.Context, r io.Reader) (Stored, error) {
	if err := ctx.Err(); err != nil {
		return Stored{}, err
	}
	contentType, body, err := Sniff(r)
	if err != nil {
		return Stored{}, err
	}
	now := s.now().UTC()
	rel := path.Join("tasks", now.Format("2006"), now.Format("01"), uuid.NewString()+"."+allowed[contentType])
	abs := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return Stored{}, err
	}

	f, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return Stored{}, err
	}
	n, copyErr := io.Copy(f, io.LimitReader(body, s.maxBytes+1))
	closeErr := f.Close()
	switch {
	case copyErr != nil:
		_ = os.Remove(abs)
		return Stored{}, copyErr
	case closeErr != nil:
		_ = os.Remove(abs)
		return Stored{}, closeErr
	case n > s.maxBytes:
		_ = os.Remove(abs)
		return Stored{}, ErrTooLarge
	}
	return Stored{Path: rel, ContentType: contentType, Size: n}, nil
}

// Open returns the file at rel for reading.
func (s *Store) Open(rel string) (*os.File, error) {
	abs, err := s.resolve(rel)
	if err != nil {
		return nil, err
	}
	return os.Open(abs)
}

// Remove deletes the file at rel. Missing files are not an error.
func (s *Store) Remove(rel string) error {
	abs, err := s.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// List returns the relative path of every stored file.
func (s *Store) List(ctx context.Context) ([]string, error) {
	return s.list(ctx, time.Time{})
}

// ListOlder returns the files last modified before cutoff. Files still being
// written by an in-flight upload are newer and stay out of the result.
func (s *Store) ListOlder(ctx context.Context, cutoff time.Time) ([]string, error) {
	return s.list(ctx, cutoff)
}

func (s *Store) list(ctx context.Context, cutoff time.Time) ([]string, error) {
	var out []string
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !cutoff.IsZero() {
			info, err := d.Info()
			if err != nil {
				return err
			}
			if !info.ModTime().Before(cutoff) {
				return nil
			}
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out, err
}

func (s *Store) resolve(rel string) (string, error) {
	if rel == "" || path.IsAbs(rel) || strings.Contains(rel, "\\") {
		return "", ErrBadPath
	}
	clean := path.Clean(rel)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", ErrBadPath
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}
