package rental

import (
	"context"
	"io"
	"time"
)

// Source abstracts where the raw table comes from (local file, HTTP endpoint).
type Source interface {
	Name() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Store is the contract the in-memory dataset holder must satisfy.
type Store interface {
	Save(ds *Dataset)
	Current() (*Dataset, error)
	LoadedAt() time.Time
}
