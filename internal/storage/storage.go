package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"laundrydesk.com/app/internal/shared/slug"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var ErrUnsupportedType = errors.New("storage: unsupported file type")

type PutInput struct {
	Filename    string
	ContentType string
	Size        int64
}

type PutResult struct {
	Key string
	URL string
}

// Storage keeps generated report files (order exports).
type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
}

func safeExt(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx", ".csv":
		return ext, nil
	default:
		return "", ErrUnsupportedType
	}
}

// objectName keeps the caller's base name readable and makes it unique:
// orders-2026-10-18-<uuid>.xlsx
func objectName(filename, ext string, now time.Time) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return slug.FromName(base, "export") + "-" + now.Format(time.DateOnly) + "-" + uuid.NewString() + ext
}
