// Package upload stores user-submitted files on the local filesystem
// and enforces size and content-type limits before anything touches disk.
package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var (
	ErrEmptyFile    = errors.New("file is empty")
	ErrFileTooLarge = errors.New("file is too large")
	ErrBadType      = errors.New("unsupported file type")
	ErrFileNotFound = errors.New("file not found")
)

// Kind describes one category of accepted upload. A kind with a FixedName
// is a singleton (each save overwrites the previous file); otherwise every
// save gets a fresh random name.
type Kind struct {
	Dir          string
	FixedName    string
	MaxSize      int64
	AllowedTypes []string
}

var (
	Resume = Kind{
		Dir:          "uploads",
		FixedName:    "resume.pdf",
		MaxSize:      30 << 20,
		AllowedTypes: []string{"application/pdf"},
	}
	ProfilePicture = Kind{
		Dir:          "images",
		FixedName:    "profile.jpg",
		MaxSize:      10 << 20,
		AllowedTypes: []string{"image/jpeg", "image/png"},
	}
	ProjectImage = Kind{
		Dir:          "images",
		MaxSize:      20 << 20,
		AllowedTypes: []string{"image/jpeg", "image/png"},
	}
)

var extByType = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"application/pdf": ".pdf",
}

// Store writes and reads uploaded files under a single root directory.
type Store struct {
	root string
}

// NewStore creates the root and the per-kind subdirectories if needed.
func NewStore(root string) (*Store, error) {
	for _, dir := range []string{Resume.Dir, ProfilePicture.Dir} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
	}
	return &Store{root: root}, nil
}

// Root returns the directory all uploads live under.
func (s *Store) Root() string { return s.root }

// Validate checks a declared upload against the kind's limits. Checks run
// in a fixed order: empty, then oversize, then content type. The declared
// type must match exactly; no sniffing.
func (k Kind) Validate(size int64, contentType string) error {
	if size <= 0 {
		return ErrEmptyFile
	}
	if size > k.MaxSize {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrFileTooLarge, size, k.MaxSize)
	}
	for _, t := range k.AllowedTypes {
		if contentType == t {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrBadType, contentType)
}

// Save validates and writes an upload, returning the stored file name.
// Nothing is written if validation fails. The file lands under a temporary
// name first and is renamed into place, so a half-written file never
// shadows a previous good one.
func (s *Store) Save(k Kind, size int64, contentType string, r io.Reader) (string, error) {
	if err := k.Validate(size, contentType); err != nil {
		return "", err
	}

	name := k.FixedName
	if name == "" {
		name = uuid.NewString() + extByType[contentType]
	}

	dir := filepath.Join(s.root, k.Dir)
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, io.LimitReader(r, k.MaxSize+1)); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	return name, nil
}

// Open returns the stored file for streaming. The caller closes it.
func (s *Store) Open(k Kind, name string) (*os.File, error) {
	f, err := os.Open(filepath.Join(s.root, k.Dir, filepath.Base(name)))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	return f, nil
}

// Remove deletes a stored file. Removing a file that is already gone is
// not an error: callers use this to compensate after a failed database
// write, and the compensation must be safe to repeat.
func (s *Store) Remove(k Kind, name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, k.Dir, filepath.Base(name)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}
