package sources

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/i474232898/bikeshare-dashboard/internal/rental"
)

// FileSource reads the dataset from the local filesystem.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return s.path
}

func (s *FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(s.path)
}

// New picks a source for location: http(s) URLs are fetched, anything else
// is treated as a file path.
func New(location string, client *http.Client) rental.Source {
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return NewHTTPSource(client, location)
	}
	return NewFileSource(location)
}
