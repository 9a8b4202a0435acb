package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/i474232898/bikeshare-dashboard/internal/rental"
	"github.com/i474232898/bikeshare-dashboard/internal/store"
)

const sampleCSV = `date,season,casual_user,registered_user,total_user
2011-01-01,Spring,331,654,985
2011-01-02,Spring,131,670,801
2011-01-03,Spring,120,1229,1349
2011-06-01,Summer,1000,4000,5000
2011-06-03,Summer,900,4100,5000
2011-12-26,Winter,100,2000,2100
2011-09-30,Fall,800,5000,5800
`

type inlineSource struct {
	data string
}

func (s *inlineSource) Name() string { return "inline" }

func (s *inlineSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(s.data)), nil
}

func newTestApp(t *testing.T, load bool) *fiber.App {
	t.Helper()

	svc := rental.NewService(store.NewMemoryStore(), &inlineSource{data: sampleCSV}, rental.DefaultLoadOptions(), nil)
	if load {
		require.NoError(t, svc.Reload(context.Background()))
	}
	return NewApp(svc, nil)
}

func get(t *testing.T, app *fiber.App, target string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, false)

	resp := get(t, app, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestSummaryBeforeLoad(t *testing.T) {
	app := newTestApp(t, false)

	for _, target := range []string{"/api/v1/summary", "/api/v1/range", "/api/v1/seasons"} {
		resp := get(t, app, target)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode, target)

		var body struct {
			Error   bool   `json:"error"`
			Message string `json:"message"`
		}
		decode(t, resp, &body)
		assert.True(t, body.Error)
	}
}

func TestRange(t *testing.T) {
	app := newTestApp(t, true)

	resp := get(t, app, "/api/v1/range")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Records int    `json:"records"`
		MinDate string `json:"minDate"`
		MaxDate string `json:"maxDate"`
	}
	decode(t, resp, &body)
	assert.Equal(t, 7, body.Records)
	assert.Equal(t, "2011-01-01", body.MinDate)
	assert.Equal(t, "2011-12-26", body.MaxDate)
}

func TestSummaryDefaultsToFullRange(t *testing.T) {
	app := newTestApp(t, true)

	resp := get(t, app, "/api/v1/summary")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var s rental.Summary
	decode(t, resp, &s)
	assert.Equal(t, 7, s.Records)
	require.Len(t, s.Seasons, 4)
	assert.Equal(t, rental.SeasonTotal{Season: "Summer", TotalUser: 10000}, s.Seasons[0])
	require.Len(t, s.Weekdays, 5)
	assert.Equal(t, "Monday", s.Weekdays[0].Weekday)
	assert.Equal(t, "Sunday", s.Weekdays[4].Weekday)
	assert.Len(t, s.CustomerTypes.Wide, 4)
	assert.Len(t, s.CustomerTypes.Long, 8)
}

func TestSummaryWithRange(t *testing.T) {
	app := newTestApp(t, true)

	resp := get(t, app, "/api/v1/summary?start=2011-01-02&end=2011-01-03")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var s rental.Summary
	decode(t, resp, &s)
	assert.Equal(t, 2, s.Records)
	assert.Equal(t, []rental.SeasonTotal{{Season: "Spring", TotalUser: 2150}}, s.Seasons)
	assert.Equal(t, []rental.WeekdayTotal{
		{Weekday: "Monday", TotalUser: 1349},
		{Weekday: "Sunday", TotalUser: 801},
	}, s.Weekdays)
	assert.Equal(t, []rental.SeasonCustomerTotal{
		{Season: "Spring", CustomerType: rental.CustomerCasual, Rentals: 251},
		{Season: "Spring", CustomerType: rental.CustomerRegistered, Rentals: 1899},
	}, s.CustomerTypes.Long)
}

func TestSummaryEmptyRange(t *testing.T) {
	app := newTestApp(t, true)

	resp := get(t, app, "/api/v1/summary?start=2020-01-01&end=2020-12-31")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"seasons":[]`)
	assert.Contains(t, string(raw), `"weekdays":[]`)
	assert.Contains(t, string(raw), `"long":[]`)
}

func TestSummaryRangeValidation(t *testing.T) {
	app := newTestApp(t, true)

	tests := []struct {
		name   string
		target string
	}{
		{"reversed range", "/api/v1/summary?start=2011-06-01&end=2011-01-01"},
		{"malformed start", "/api/v1/summary?start=yesterday"},
		{"malformed end", "/api/v1/weekdays?end=2011-02-30"},
		{"end before default start", "/api/v1/seasons?end=2010-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, app, tt.target)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestSeasonCustomerTypes(t *testing.T) {
	app := newTestApp(t, true)

	resp := get(t, app, "/api/v1/seasons/customer-types?start=2011-06-01&end=2011-06-30")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Wide []rental.SeasonCustomerRow   `json:"wide"`
		Long []rental.SeasonCustomerTotal `json:"long"`
	}
	decode(t, resp, &body)
	assert.Equal(t, []rental.SeasonCustomerRow{{Season: "Summer", Casual: 1900, Registered: 8100}}, body.Wide)
	assert.Equal(t, []rental.SeasonCustomerTotal{
		{Season: "Summer", CustomerType: rental.CustomerCasual, Rentals: 1900},
		{Season: "Summer", CustomerType: rental.CustomerRegistered, Rentals: 8100},
	}, body.Long)
}

func TestExport(t *testing.T) {
	app := newTestApp(t, true)

	resp := get(t, app, "/api/v1/export?start=2011-01-01&end=2011-01-31")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, xlsxContentType, resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "bikeshare_20110101_20110131.xlsx")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Seasons")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Season", "Total Rentals"}, {"Spring", "3135"}}, rows)
}

func TestReload(t *testing.T) {
	app := newTestApp(t, false)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/reload", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = get(t, app, "/api/v1/summary")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
