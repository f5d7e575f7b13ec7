package upload

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestValidateOrder(t *testing.T) {
	tests := []struct {
		name        string
		kind        Kind
		size        int64
		contentType string
		wantErr     error
	}{
		{"empty file", Resume, 0, "application/pdf", ErrEmptyFile},
		{"negative size", Resume, -1, "application/pdf", ErrEmptyFile},
		{"oversize resume", Resume, 31 << 20, "application/pdf", ErrFileTooLarge},
		{"oversize beats bad type", Resume, 31 << 20, "image/gif", ErrFileTooLarge},
		{"empty beats bad type", Resume, 0, "image/gif", ErrEmptyFile},
		{"bad type resume", Resume, 100, "image/png", ErrBadType},
		{"type prefix does not match", ProfilePicture, 100, "image/jpeg; charset=utf-8", ErrBadType},
		{"valid resume", Resume, 30 << 20, "application/pdf", nil},
		{"valid profile jpeg", ProfilePicture, 100, "image/jpeg", nil},
		{"valid profile png", ProfilePicture, 100, "image/png", nil},
		{"oversize profile", ProfilePicture, 11 << 20, "image/jpeg", ErrFileTooLarge},
		{"valid project image", ProjectImage, 20 << 20, "image/png", nil},
		{"oversize project image", ProjectImage, 21 << 20, "image/png", ErrFileTooLarge},
		{"pdf as project image", ProjectImage, 100, "application/pdf", ErrBadType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.kind.Validate(tt.size, tt.contentType)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveFixedNameOverwrites(t *testing.T) {
	s := newTestStore(t)

	first := strings.NewReader("%PDF-1.7 first")
	name, err := s.Save(Resume, int64(first.Len()), "application/pdf", first)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if name != "resume.pdf" {
		t.Errorf("name = %q, want resume.pdf", name)
	}

	second := strings.NewReader("%PDF-1.7 second")
	if _, err := s.Save(Resume, int64(second.Len()), "application/pdf", second); err != nil {
		t.Fatalf("Save again: %v", err)
	}

	f, err := s.Open(Resume, "resume.pdf")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	got, _ := io.ReadAll(f)
	if string(got) != "%PDF-1.7 second" {
		t.Errorf("content = %q, want the second upload", got)
	}
}

func TestSaveProjectImageNamesAreUnique(t *testing.T) {
	s := newTestStore(t)

	a, err := s.Save(ProjectImage, 3, "image/png", strings.NewReader("png"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	b, err := s.Save(ProjectImage, 3, "image/jpeg", strings.NewReader("jpg"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if a == b {
		t.Errorf("expected unique names, got %q twice", a)
	}
	if !strings.HasSuffix(a, ".png") {
		t.Errorf("name %q should carry a .png extension", a)
	}
	if !strings.HasSuffix(b, ".jpg") {
		t.Errorf("name %q should carry a .jpg extension", b)
	}
}

func TestSaveRejectedUploadWritesNothing(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Save(ProfilePicture, 100, "image/gif", strings.NewReader("gif")); !errors.Is(err, ErrBadType) {
		t.Fatalf("Save = %v, want ErrBadType", err)
	}

	entries, err := os.ReadDir(filepath.Join(s.Root(), ProfilePicture.Dir))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty dir after rejected upload, found %d entries", len(entries))
	}
}

func TestOpenMissingFile(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Open(Resume, "resume.pdf"); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Open = %v, want ErrFileNotFound", err)
	}
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)

	name, err := s.Save(ProjectImage, 3, "image/png", strings.NewReader("png"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Remove(ProjectImage, name); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := s.Open(ProjectImage, name); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Open after remove = %v, want ErrFileNotFound", err)
	}

	// Removing again, or removing nothing, is a no-op.
	if err := s.Remove(ProjectImage, name); err != nil {
		t.Errorf("repeat Remove: %v", err)
	}
	if err := s.Remove(ProjectImage, ""); err != nil {
		t.Errorf("Remove empty name: %v", err)
	}
}
