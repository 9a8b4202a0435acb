package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/i474232898/bikeshare-dashboard/internal/rental"
)

const (
	sheetSeasons       = "Seasons"
	sheetWeekdays      = "Weekdays"
	sheetCustomerTypes = "CustomerTypes"
	sheetCustomerLong  = "CustomerTypesLong"
)

// WriteWorkbook renders the summary as an xlsx workbook: one sheet per
// aggregate, each with a column chart when it has rows.
func WriteWorkbook(w io.Writer, s rental.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetDocProps(&excelize.DocProperties{
		Title:       "Bike-Sharing Rentals",
		Subject:     "Rental totals by season, weekday and customer type",
		Creator:     "bikeshare-dashboard",
		Description: fmt.Sprintf("Period %s to %s, %d days", s.Range.Start.Format(time.DateOnly), s.Range.End.Format(time.DateOnly), s.Records),
		Created:     time.Now().UTC().Format(time.RFC3339),
	})

	seasonRows := make([][]interface{}, 0, len(s.Seasons))
	for _, r := range s.Seasons {
		seasonRows = append(seasonRows, []interface{}{string(r.Season), r.TotalUser})
	}
	if err := writeSheet(f, sheetSeasons, []string{"Season", "Total Rentals"}, seasonRows); err != nil {
		return err
	}

	weekdayRows := make([][]interface{}, 0, len(s.Weekdays))
	for _, r := range s.Weekdays {
		weekdayRows = append(weekdayRows, []interface{}{r.Weekday, r.TotalUser})
	}
	if err := writeSheet(f, sheetWeekdays, []string{"Weekday", "Total Rentals"}, weekdayRows); err != nil {
		return err
	}

	wideRows := make([][]interface{}, 0, len(s.CustomerTypes.Wide))
	for _, r := range s.CustomerTypes.Wide {
		wideRows = append(wideRows, []interface{}{string(r.Season), r.Casual, r.Registered})
	}
	if err := writeSheet(f, sheetCustomerTypes, []string{"Season", "Casual", "Registered"}, wideRows); err != nil {
		return err
	}

	longRows := make([][]interface{}, 0, len(s.CustomerTypes.Long))
	for _, r := range s.CustomerTypes.Long {
		longRows = append(longRows, []interface{}{string(r.Season), string(r.CustomerType), r.Rentals})
	}
	if err := writeSheet(f, sheetCustomerLong, []string{"Season", "Customer Type", "Rentals"}, longRows); err != nil {
		return err
	}

	if err := addCharts(f, s); err != nil {
		return err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("remove default sheet: %w", err)
	}
	if idx, err := f.GetSheetIndex(sheetSeasons); err == nil {
		f.SetActiveSheet(idx)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, headers []string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}

	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", name, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", name, i+1, err)
		}
	}

	last, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	return f.SetColWidth(name, "A", last, 18)
}

// addCharts places one column chart next to each wide table. Empty tables get none.
func addCharts(f *excelize.File, s rental.Summary) error {
	if n := len(s.Seasons); n > 0 {
		chart := columnChart("Total Rentals by Season", sheetSeasons, n, []string{"B"})
		if err := f.AddChart(sheetSeasons, "D2", chart); err != nil {
			return fmt.Errorf("add season chart: %w", err)
		}
	}

	if n := len(s.Weekdays); n > 0 {
		chart := columnChart("Total Rentals by Weekday", sheetWeekdays, n, []string{"B"})
		if err := f.AddChart(sheetWeekdays, "D2", chart); err != nil {
			return fmt.Errorf("add weekday chart: %w", err)
		}
	}

	if n := len(s.CustomerTypes.Wide); n > 0 {
		chart := columnChart("Rentals by Season and Customer Type", sheetCustomerTypes, n, []string{"B", "C"})
		chart.Type = excelize.Bar
		if err := f.AddChart(sheetCustomerTypes, "E2", chart); err != nil {
			return fmt.Errorf("add customer type chart: %w", err)
		}
	}
	return nil
}

// columnChart charts rows 2..n+1 of the given value columns against column A.
func columnChart(title, sheet string, n int, valueCols []string) *excelize.Chart {
	series := make([]excelize.ChartSeries, 0, len(valueCols))
	for _, col := range valueCols {
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$%s$1", sheet, col),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheet, n+1),
			Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", sheet, col, col, n+1),
		})
	}

	return &excelize.Chart{
		Type:   excelize.Col,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: title}},
		Legend: excelize.ChartLegend{Position: "bottom"},
	}
}
