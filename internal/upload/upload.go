package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"
)

var (
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrFileTooLarge       = errors.New("file exceeds the maximum allowed size")
)

const MaxImageSize = 2 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpg":  true,
	"image/jpeg": true,
}

// ImageStore writes uploaded images to a fixed local directory. Filenames
// are prefixed with the upload timestamp to avoid collisions.
type ImageStore struct {
	dir string
}

func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return &ImageStore{dir: dir}, nil
}

// Validate checks the declared content type and size without touching disk,
// so a bad upload is rejected before any document is created.
func (s *ImageStore) Validate(fileHeader *multipart.FileHeader) error {
	if !allowedImageTypes[fileHeader.Header.Get("Content-Type")] {
		return ErrFileTypeNotAllowed
	}

	if fileHeader.Size > MaxImageSize {
		return ErrFileTooLarge
	}

	return nil
}

// Save validates and persists the image, returning the stored file path.
func (s *ImageStore) Save(fileHeader *multipart.FileHeader) (string, error) {
	if err := s.Validate(fileHeader); err != nil {
		return "", err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := fmt.Sprintf("%s_%s", time.Now().UTC().Format(time.RFC3339Nano), filepath.Base(fileHeader.Filename))
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", err
	}

	return path, nil
}
