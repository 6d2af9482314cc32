package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStore writes attachment bytes under an uploads directory exposed at a
// public base URL. No size limit or content inspection is applied.
type LocalStore struct {
	dir     string
	baseURL string
	now     func() time.Time
}

// NewLocalStore ensures the uploads directory exists.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/"), now: time.Now}, nil
}

// SanitizeFileName keeps alphanumerics, dots, dashes and underscores and
// replaces everything else with an underscore.
func SanitizeFileName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Save persists the bytes under a timestamp-prefixed sanitized name and
// returns the public URL.
func (s *LocalStore) Save(originalName string, data []byte) (string, error) {
	storedName := fmt.Sprintf("%d_%s", s.now().UnixMilli(), SanitizeFileName(originalName))
	if err := os.WriteFile(filepath.Join(s.dir, storedName), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return s.baseURL + "/" + storedName, nil
}
