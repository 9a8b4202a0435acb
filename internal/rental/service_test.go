package rental

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNotLoaded = errors.New("not loaded")

type memStore struct {
	mu       sync.Mutex
	ds       *Dataset
	loadedAt time.Time
}

func (s *memStore) Save(ds *Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ds = ds
	s.loadedAt = time.Now()
}

func (s *memStore) Current() (*Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ds == nil {
		return nil, errNotLoaded
	}
	return s.ds, nil
}

func (s *memStore) LoadedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadedAt
}

type stubSource struct {
	data string
	err  error
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(strings.NewReader(s.data)), nil
}

func sampleCSV(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile("testdata/day_sample.csv")
	require.NoError(t, err)
	return string(b)
}

func TestServiceBeforeLoad(t *testing.T) {
	svc := NewService(&memStore{}, &stubSource{}, DefaultLoadOptions(), nil)

	_, err := svc.Summarize(DateRange{})
	assert.ErrorIs(t, err, errNotLoaded)

	_, err = svc.Bounds()
	assert.ErrorIs(t, err, errNotLoaded)
}

func TestServiceReloadAndSummarize(t *testing.T) {
	store := &memStore{}
	svc := NewService(store, &stubSource{data: sampleCSV(t)}, DefaultLoadOptions(), nil)
	require.NoError(t, svc.Reload(context.Background()))
	assert.False(t, svc.LoadedAt().IsZero())

	bounds, err := svc.Bounds()
	require.NoError(t, err)
	assert.Equal(t, date("2011-01-01"), bounds.Start)
	assert.Equal(t, date("2011-12-26"), bounds.End)

	// Zero range defaults to the dataset bounds.
	s, err := svc.Summarize(DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 7, s.Records)
	assert.Equal(t, bounds, s.Range)

	// Only one bound given: the other defaults.
	s, err = svc.Summarize(DateRange{Start: date("2011-06-01")})
	require.NoError(t, err)
	assert.Equal(t, 4, s.Records)
	assert.Equal(t, date("2011-12-26"), s.Range.End)
}

func TestServiceReloadKeepsLastGoodDataset(t *testing.T) {
	store := &memStore{}
	src := &stubSource{data: sampleCSV(t)}
	svc := NewService(store, src, DefaultLoadOptions(), nil)
	require.NoError(t, svc.Reload(context.Background()))
	before, err := svc.Dataset()
	require.NoError(t, err)

	src.data = "date,season,casual_user,registered_user,total_user\nnot-a-date,Spring,1,2,3\n"
	err = svc.Reload(context.Background())
	require.Error(t, err)
	var pe *ParseError
	assert.True(t, errors.As(err, &pe))

	src.err = errors.New("connection refused")
	assert.Error(t, svc.Reload(context.Background()))

	after, err := svc.Dataset()
	require.NoError(t, err)
	assert.Same(t, before, after)
}

func TestServiceWithoutSource(t *testing.T) {
	svc := NewService(&memStore{}, nil, DefaultLoadOptions(), nil)
	assert.Error(t, svc.Reload(context.Background()))
}
