package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/Ritik-rajput786/internfinder/pkg/util"
)

// ResumeStore accepts resume uploads and exposes them under stable keys.
type ResumeStore interface {
	Save(ctx context.Context, fileName, contentType string, size int64, r io.Reader) (string, error)
	Open(key string) (io.ReadCloser, error)
	Remove(ctx context.Context, key string) error
}

// LocalResumeStore persists resumes on the local filesystem.
type LocalResumeStore struct {
	dir      string
	maxBytes int64
}

// NewLocalResumeStore ensures the upload directory exists.
func NewLocalResumeStore(dir string, maxBytes int64) (*LocalResumeStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}
	return &LocalResumeStore{dir: dir, maxBytes: maxBytes}, nil
}

// Save validates that the upload is a PDF within the size cap, then writes
// it under a fresh key. Validation happens before any byte is written.
func (s *LocalResumeStore) Save(ctx context.Context, fileName, contentType string, size int64, r io.Reader) (string, error) {
	if err := validatePDF(fileName, contentType); err != nil {
		return "", err
	}
	if size > s.maxBytes {
		return "", apperrors.NewValidationError(
			fmt.Sprintf("resume exceeds maximum size of %d bytes", s.maxBytes), nil)
	}

	key := uuid.NewString() + ".pdf"
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", err
	}
	tmpName := tmp.Name()

	// LimitReader backstops clients that lie about the declared size.
	written, err := io.Copy(tmp, io.LimitReader(r, s.maxBytes+1))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil && written > s.maxBytes {
		err = apperrors.NewValidationError(
			fmt.Sprintf("resume exceeds maximum size of %d bytes", s.maxBytes), nil)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return "", err
	}

	if err := os.Rename(tmpName, filepath.Join(s.dir, key)); err != nil {
		_ = os.Remove(tmpName)
		return "", err
	}
	return key, nil
}

// Open returns the stored file for download/audit.
func (s *LocalResumeStore) Open(key string) (io.ReadCloser, error) {
	if !validKey(key) {
		return nil, apperrors.NewNotFound("resume", nil)
	}
	f, err := os.Open(filepath.Join(s.dir, key))
	if os.IsNotExist(err) {
		return nil, apperrors.NewNotFound("resume", nil)
	}
	return f, err
}

// Remove deletes a stored resume, used to roll back a failed apply.
func (s *LocalResumeStore) Remove(_ context.Context, key string) error {
	if !validKey(key) {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func validatePDF(fileName, contentType string) error {
	if !strings.EqualFold(filepath.Ext(fileName), ".pdf") {
		return apperrors.NewUnsupportedFileType("resume must be a PDF file")
	}
	if contentType != "" && !strings.EqualFold(contentType, "application/pdf") {
		return apperrors.NewUnsupportedFileType("resume must be uploaded as application/pdf")
	}
	return nil
}

// validKey rejects anything that could escape the upload directory.
func validKey(key string) bool {
	return key != "" && key == filepath.Base(key) && !strings.HasPrefix(key, ".")
}
