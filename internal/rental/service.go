package rental

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Service loads the dataset from its source and answers range queries
// against whichever dataset is current.
type Service struct {
	store  Store
	source Source
	opts   LoadOptions
	log    *zap.Logger
}

// NewService creates a new Service.
func NewService(store Store, source Source, opts LoadOptions, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:  store,
		source: source,
		opts:   opts,
		log:    log,
	}
}

// Reload reads the source in full and replaces the current dataset.
// On failure the previously loaded dataset stays in place.
func (s *Service) Reload(ctx context.Context) error {
	if s.source == nil {
		return fmt.Errorf("no data source configured")
	}

	rc, err := s.source.Open(ctx)
	if err != nil {
		s.log.Error("open data source failed", zap.String("source", s.source.Name()), zap.Error(err))
		return fmt.Errorf("open %s: %w", s.source.Name(), err)
	}
	defer rc.Close()

	ds, err := Load(s.source.Name(), rc, s.opts)
	if err != nil {
		s.log.Error("load dataset failed; keeping last good dataset",
			zap.String("source", s.source.Name()), zap.Error(err))
		return fmt.Errorf("load %s: %w", s.source.Name(), err)
	}

	s.store.Save(ds)
	bounds := ds.Bounds()
	s.log.Info("dataset loaded",
		zap.String("source", ds.Source()),
		zap.Int("records", ds.Len()),
		zap.Time("minDate", bounds.Start),
		zap.Time("maxDate", bounds.End),
	)
	return nil
}

// Dataset returns the current dataset handle.
func (s *Service) Dataset() (*Dataset, error) {
	return s.store.Current()
}

// LoadedAt reports when the current dataset was loaded.
func (s *Service) LoadedAt() time.Time {
	return s.store.LoadedAt()
}

// Bounds returns the full date span of the current dataset, the default
// range for every query.
func (s *Service) Bounds() (DateRange, error) {
	ds, err := s.store.Current()
	if err != nil {
		return DateRange{}, err
	}
	return ds.Bounds(), nil
}

// Summarize runs every aggregator over the current dataset restricted to r.
// Missing bounds in r default to the dataset's own bounds.
func (s *Service) Summarize(r DateRange) (Summary, error) {
	ds, err := s.store.Current()
	if err != nil {
		return Summary{}, err
	}

	bounds := ds.Bounds()
	if r.Start.IsZero() {
		r.Start = bounds.Start
	}
	if r.End.IsZero() {
		r.End = bounds.End
	}

	summary := Summarize(ds, r)
	s.log.Debug("summary computed",
		zap.Time("start", summary.Range.Start),
		zap.Time("end", summary.Range.End),
		zap.Int("records", summary.Records),
	)
	return summary, nil
}
