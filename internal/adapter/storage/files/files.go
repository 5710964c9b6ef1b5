package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/toppingfrozen/ordertrack/internal/adapter/config"
	"github.com/toppingfrozen/ordertrack/internal/core/domain"
	"github.com/toppingfrozen/ordertrack/internal/core/port"
)

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".pdf":  {},
}

// Store keeps receipt photos on the local filesystem under generated
// names, so a client-supplied filename never reaches the disk.
type Store struct {
	dir     string
	maxSize int64
}

func NewStore(conf *config.Uploads) (port.FileStore, error) {
	if err := os.MkdirAll(conf.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Store{dir: conf.Dir, maxSize: conf.MaxSizeBytes}, nil
}

func (s *Store) Save(filename string, size int64, r io.Reader) (string, error) {
	if size <= 0 || size > s.maxSize {
		return "", domain.ErrBadRequest
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", domain.ErrBadRequest
	}

	stored := "receipt-" + uuid.NewString() + ext

	f, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return "", err
	}
	defer f.Close()

	// LimitReader guards against a lying Content-Length.
	written, err := io.Copy(f, io.LimitReader(r, s.maxSize+1))
	if err != nil {
		os.Remove(f.Name())
		return "", err
	}
	if written > s.maxSize {
		os.Remove(f.Name())
		return "", domain.ErrBadRequest
	}

	return stored, nil
}

func (s *Store) Path(stored string) (string, error) {
	// Reject traversal in a stored name coming back from a URL.
	if stored == "" || stored != filepath.Base(stored) {
		return "", domain.ErrBadRequest
	}

	path := filepath.Join(s.dir, stored)
	if _, err := os.Stat(path); err != nil {
		return "", domain.ErrDataNotFound
	}
	return path, nil
}

func (s *Store) Remove(stored string) error {
	path, err := s.Path(stored)
	if err != nil {
		return err
	}
	return os.Remove(path)
}
