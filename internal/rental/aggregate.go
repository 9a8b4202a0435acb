package rental

import (
	"sort"
	"time"
)

// weekdayRank is the canonical display order of weekdays, Monday first.
var weekdayRank = map[time.Weekday]int{
	time.Monday:    0,
	time.Tuesday:   1,
	time.Wednesday: 2,
	time.Thursday:  3,
	time.Friday:    4,
	time.Saturday:  5,
	time.Sunday:    6,
}

// AggregateBySeason sums TotalUser per season, largest total first.
// Seasons with equal totals keep the order in which they first appear.
// Seasons absent from records are omitted.
func AggregateBySeason(records []Record) []SeasonTotal {
	out := make([]SeasonTotal, 0)
	index := make(map[Season]int)

	for _, r := range records {
		i, ok := index[r.Season]
		if !ok {
			i = len(out)
			index[r.Season] = i
			out = append(out, SeasonTotal{Season: r.Season})
		}
		out[i].TotalUser += r.TotalUser
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalUser > out[j].TotalUser
	})
	return out
}

// AggregateByWeekday sums TotalUser per weekday in Monday..Sunday order,
// independent of the totals. Weekdays absent from records are omitted.
func AggregateByWeekday(records []Record) []WeekdayTotal {
	sums := make(map[time.Weekday]int)
	days := make([]time.Weekday, 0, len(weekdayRank))

	for _, r := range records {
		day := r.Date.Weekday()
		if _, ok := sums[day]; !ok {
			days = append(days, day)
		}
		sums[day] += r.TotalUser
	}

	sort.Slice(days, func(i, j int) bool {
		return weekdayRank[days[i]] < weekdayRank[days[j]]
	})

	out := make([]WeekdayTotal, 0, len(days))
	for _, day := range days {
		out = append(out, WeekdayTotal{Weekday: day.String(), TotalUser: sums[day]})
	}
	return out
}

// CustomerTypeTable is the per-season casual/registered aggregate in wide form.
type CustomerTypeTable []SeasonCustomerRow

// AggregateBySeasonCustomer sums CasualUser and RegisteredUser per season,
// seasons in first-seen order.
func AggregateBySeasonCustomer(records []Record) CustomerTypeTable {
	out := make(CustomerTypeTable, 0)
	index := make(map[Season]int)

	for _, r := range records {
		i, ok := index[r.Season]
		if !ok {
			i = len(out)
			index[r.Season] = i
			out = append(out, SeasonCustomerRow{Season: r.Season})
		}
		out[i].Casual += r.CasualUser
		out[i].Registered += r.RegisteredUser
	}
	return out
}

// Long reshapes the wide table into one row per season and customer type,
// Casual before Registered within each season.
func (t CustomerTypeTable) Long() []SeasonCustomerTotal {
	out := make([]SeasonCustomerTotal, 0, 2*len(t))
	for _, row := range t {
		out = append(out,
			SeasonCustomerTotal{Season: row.Season, CustomerType: CustomerCasual, Rentals: row.Casual},
			SeasonCustomerTotal{Season: row.Season, CustomerType: CustomerRegistered, Rentals: row.Registered},
		)
	}
	return out
}

// Summarize filters the dataset to r and runs every aggregator over the result.
func Summarize(ds *Dataset, r DateRange) Summary {
	records := ds.Between(r.Start, r.End)
	wide := AggregateBySeasonCustomer(records)

	return Summary{
		Range:    DateRange{Start: Day(r.Start), End: Day(r.End)},
		Records:  len(records),
		Seasons:  AggregateBySeason(records),
		Weekdays: AggregateByWeekday(records),
		CustomerTypes: CustomerTypeSummary{
			Wide: []SeasonCustomerRow(wide),
			Long: wide.Long(),
		},
	}
}
