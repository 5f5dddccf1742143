package dataset

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
)

// FileSource reads the dataset from a JSON file on disk
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed source
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name identifies the source in logs
func (s *FileSource) Name() string {
	return "file:" + s.path
}

// Load reads the whole file
func (s *FileSource) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, eris.Wrapf(ErrNotFound, "file %s", s.path)
		}
		return nil, eris.Wrapf(err, "read %s", s.path)
	}
	return data, nil
}
