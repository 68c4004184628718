// Package storage persists uploaded image files on local disk.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Uploads stores incoming files under a single directory and hands out
// the public URL path they are served from.
type Uploads struct {
	dir string
}

// NewUploads ensures the upload directory exists and returns the store.
func NewUploads(dir string) (*Uploads, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %q: %w", dir, err)
	}
	return &Uploads{dir: dir}, nil
}

// Save writes the uploaded file to disk under a random name, keeping
// only the original extension. It returns the public URL path.
func (u *Uploads) Save(file *multipart.FileHeader) (string, error) {
	// The extension comes from the client; strip everything else so a
	// crafted filename cannot escape the upload directory.
	ext := strings.ToLower(filepath.Ext(filepath.Base(file.Filename)))
	name := uuid.New().String() + ext

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.Create(filepath.Join(u.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return "/uploads/" + name, nil
}

// Dir returns the directory files are stored in.
func (u *Uploads) Dir() string {
	return u.dir
}
