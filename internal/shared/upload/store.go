package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store writes request attachments under a fixed directory. The stored
// path is persisted verbatim on the leave request and echoed in
// notifications, so it must stay stable once written.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save copies src into the upload directory under a timestamp-prefixed
// name and returns the relative path.
func (s *Store) Save(src io.Reader, originalName string) (string, error) {
	name := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), sanitize(originalName))
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create attachment file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write attachment file: %w", err)
	}

	return path, nil
}

// sanitize strips any directory components a client may smuggle into the
// original filename.
func sanitize(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "attachment"
	}
	return name
}
