package rental

import (
	"time"
)

// Season is the categorical season label as it appears in the dataset.
type Season string

// CustomerType distinguishes the two user populations counted per day.
type CustomerType string

const (
	CustomerCasual     CustomerType = "Casual"
	CustomerRegistered CustomerType = "Registered"
)

// Record is one daily observation of the dataset.
// TotalUser is expected to equal CasualUser + RegisteredUser; it is not checked.
type Record struct {
	Date           time.Time    `json:"date"` // midnight UTC
	Season         Season       `json:"season"`
	CasualUser     int          `json:"casualUser"`
	RegisteredUser int          `json:"registeredUser"`
	TotalUser      int          `json:"totalUser"`
	Weekday        time.Weekday `json:"-"` // derived from Date
}

// SeasonTotal is one row of the season aggregate.
type SeasonTotal struct {
	Season    Season `json:"season"`
	TotalUser int    `json:"totalUser"`
}

// WeekdayTotal is one row of the weekday aggregate.
type WeekdayTotal struct {
	Weekday   string `json:"weekday"`
	TotalUser int    `json:"totalUser"`
}

// SeasonCustomerRow is the wide view: one row per season.
type SeasonCustomerRow struct {
	Season     Season `json:"season"`
	Casual     int    `json:"casual"`
	Registered int    `json:"registered"`
}

// SeasonCustomerTotal is the long view: one row per season and customer type.
type SeasonCustomerTotal struct {
	Season       Season       `json:"season"`
	CustomerType CustomerType `json:"customerType"`
	Rentals      int          `json:"rentals"`
}

// DateRange is a closed interval of days.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Summary bundles every aggregate computed for one date range.
type Summary struct {
	Range         DateRange           `json:"range"`
	Records       int                 `json:"records"`
	Seasons       []SeasonTotal       `json:"seasons"`
	Weekdays      []WeekdayTotal      `json:"weekdays"`
	CustomerTypes CustomerTypeSummary `json:"customerTypes"`
}

// CustomerTypeSummary carries both views of the season × customer-type aggregate.
type CustomerTypeSummary struct {
	Wide []SeasonCustomerRow   `json:"wide"`
	Long []SeasonCustomerTotal `json:"long"`
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
