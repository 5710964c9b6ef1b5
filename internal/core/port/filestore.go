package port

import "io"

//go:generate mockgen -source=filestore.go -destination=mock/filestore.go -package=mock
type FileStore interface {
	// Save stores the content under a generated name derived from the
	// original filename's extension and returns that name. Enforces the
	// size cap and the extension allow-list before writing.
	Save(filename string, size int64, r io.Reader) (string, error)
	// Path resolves a stored name to an absolute filesystem path.
	Path(stored string) (string, error)
	Remove(stored string) error
}
