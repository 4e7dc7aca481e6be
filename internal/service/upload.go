package service

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"enertika/internal/domain"
)

// UploadedFile is one file of a multipart batch. Open is called at most once.
type UploadedFile struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// readUpload checks the extension and size limit and returns the file bytes.
func readUpload(f UploadedFile, want domain.FileType, maxBytes int64) ([]byte, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(f.Filename), "."))
	if domain.AllowedExtensions[ext] != want {
		return nil, domain.ErrUnsupportedFileType
	}
	if maxBytes > 0 && f.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	defer rc.Close()

	r := io.Reader(rc)
	if maxBytes > 0 {
		r = io.LimitReader(rc, maxBytes+1)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	if maxBytes > 0 && int64(len(content)) > maxBytes {
		return nil, domain.ErrFileTooLarge
	}
	if len(content) == 0 {
		return nil, domain.ErrEmptyFile
	}
	return content, nil
}

func checkBatchSize(n, maxFiles int) error {
	if n == 0 {
		return domain.ErrEmptyBatch
	}
	if maxFiles > 0 && n > maxFiles {
		return domain.ErrTooManyFiles
	}
	return nil
}
