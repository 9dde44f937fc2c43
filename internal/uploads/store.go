// Package uploads stores event images on disk under generated names.
package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Store writes uploaded files into a single directory. Filenames are
// timestamp-derived (millisecond clock plus the original extension), not
// content-addressed; rapid concurrent uploads can collide and that is an
// accepted limitation of the format.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("uploads: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("uploads: create directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// URLPrefix is the route prefix the static file handler serves stored
// images under. Save records paths relative to it regardless of where the
// directory actually lives on disk.
const URLPrefix = "uploads"

// Save writes the uploaded file to disk and returns the URL path recorded
// on the event row, e.g. "uploads/1718901234567.png".
func (s *Store) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	name := strconv.FormatInt(time.Now().UnixMilli(), 10) + sanitizeExt(header.Filename)

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("uploads: create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("uploads: write file: %w", err)
	}

	return path.Join(URLPrefix, name), nil
}

func sanitizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	// Drop anything that is not a plain extension.
	if ext == "" || strings.ContainsAny(ext, "/\\") {
		return ""
	}
	return ext
}
