package rental

import "time"

// Between returns the records whose date falls within [start, end], both ends
// inclusive at day granularity, in load order. The result is never nil; a
// reversed pair matches nothing.
func (d *Dataset) Between(start, end time.Time) []Record {
	start, end = Day(start), Day(end)

	out := make([]Record, 0)
	for _, r := range d.records {
		if r.Date.Before(start) || r.Date.After(end) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Contains reports whether t lies within the range, both ends inclusive.
func (r DateRange) Contains(t time.Time) bool {
	t = Day(t)
	return !t.Before(Day(r.Start)) && !t.After(Day(r.End))
}

// IsZero reports whether the range has neither bound set.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}
