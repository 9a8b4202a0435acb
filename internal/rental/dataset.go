package rental

import "time"

// Dataset is the immutable, shareable handle over a loaded table.
// It is built once by Load and never modified afterwards, so it can be
// read from any number of goroutines without locking.
type Dataset struct {
	records []Record
	minDate time.Time
	maxDate time.Time
	source  string
}

// NewDataset copies records into a new Dataset and derives the weekday of
// every record from its date.
func NewDataset(source string, records []Record) *Dataset {
	ds := &Dataset{
		records: make([]Record, len(records)),
		source:  source,
	}
	for i, r := range records {
		r.Date = Day(r.Date)
		r.Weekday = r.Date.Weekday()
		ds.records[i] = r

		if i == 0 || r.Date.Before(ds.minDate) {
			ds.minDate = r.Date
		}
		if i == 0 || r.Date.After(ds.maxDate) {
			ds.maxDate = r.Date
		}
	}
	return ds
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Source names where the dataset was loaded from.
func (d *Dataset) Source() string {
	return d.source
}

// Bounds returns the full span of dates in the dataset.
// It is the zero range for an empty dataset.
func (d *Dataset) Bounds() DateRange {
	return DateRange{Start: d.minDate, End: d.maxDate}
}

// Records returns a copy of every record in load order.
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}
