package httpapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/bikeshare-dashboard/internal/rental"
	"github.com/i474232898/bikeshare-dashboard/internal/report"
	"github.com/i474232898/bikeshare-dashboard/internal/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *rental.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/range", func(c *fiber.Ctx) error {
		ds, err := service.Dataset()
		if err != nil {
			return serviceError(err)
		}
		bounds := ds.Bounds()
		return c.JSON(fiber.Map{
			"source":   ds.Source(),
			"records":  ds.Len(),
			"minDate":  bounds.Start.Format(time.DateOnly),
			"maxDate":  bounds.End.Format(time.DateOnly),
			"loadedAt": service.LoadedAt(),
		})
	})

	v1.Get("/summary", func(c *fiber.Ctx) error {
		summary, err := summarize(c, service)
		if err != nil {
			return err
		}
		return c.JSON(summary)
	})

	v1.Get("/seasons", func(c *fiber.Ctx) error {
		summary, err := summarize(c, service)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"range":   summary.Range,
			"seasons": summary.Seasons,
		})
	})

	v1.Get("/weekdays", func(c *fiber.Ctx) error {
		summary, err := summarize(c, service)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"range":    summary.Range,
			"weekdays": summary.Weekdays,
		})
	})

	v1.Get("/seasons/customer-types", func(c *fiber.Ctx) error {
		summary, err := summarize(c, service)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"range": summary.Range,
			"wide":  summary.CustomerTypes.Wide,
			"long":  summary.CustomerTypes.Long,
		})
	})

	v1.Get("/export", func(c *fiber.Ctx) error {
		summary, err := summarize(c, service)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := report.WriteWorkbook(&buf, summary); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to build workbook")
		}

		filename := fmt.Sprintf("bikeshare_%s_%s.xlsx",
			summary.Range.Start.Format("20060102"), summary.Range.End.Format("20060102"))
		c.Set(fiber.HeaderContentType, xlsxContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
		return c.Send(buf.Bytes())
	})

	v1.Post("/reload", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 30*time.Second)
		defer cancel()

		if err := service.Reload(ctx); err != nil {
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		ds, err := service.Dataset()
		if err != nil {
			return serviceError(err)
		}
		return c.JSON(fiber.Map{
			"status":  "reloaded",
			"records": ds.Len(),
		})
	})
}

func summarize(c *fiber.Ctx, service *rental.Service) (rental.Summary, error) {
	bounds, err := service.Bounds()
	if err != nil {
		return rental.Summary{}, serviceError(err)
	}

	var q rangeQuery
	if err := q.bind(c, bounds); err != nil {
		return rental.Summary{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(q); err != nil {
		return rental.Summary{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	summary, err := service.Summarize(rental.DateRange{Start: q.Start, End: q.End})
	if err != nil {
		return rental.Summary{}, serviceError(err)
	}
	return summary, nil
}

func serviceError(err error) error {
	if errors.Is(err, store.ErrNotLoaded) {
		return fiber.NewError(fiber.StatusServiceUnavailable, "dataset not loaded")
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to compute summary")
}

// rangeQuery holds the date range query parameters; each bound defaults to
// the dataset's own bound.
type rangeQuery struct {
	Start time.Time `validate:"required"`
	End   time.Time `validate:"required,gtefield=Start"`
}

func (q *rangeQuery) bind(c *fiber.Ctx, bounds rental.DateRange) error {
	q.Start, q.End = bounds.Start, bounds.End

	if s := c.Query("start"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return fmt.Errorf("invalid start: %w", err)
		}
		q.Start = t
	}
	if s := c.Query("end"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return fmt.Errorf("invalid end: %w", err)
		}
		q.End = t
	}
	return nil
}

// parseDate accepts YYYY-MM-DD or RFC3339; only the calendar day is kept.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return rental.Day(t), nil
	}
	return time.Time{}, errors.New("use YYYY-MM-DD")
}
