package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/i474232898/bikeshare-dashboard/internal/rental"
)

var titleStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)

// RenderText renders the summary as plain terminal tables.
func RenderText(s rental.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Bike-Sharing Rentals %s to %s (%d days)\n",
		s.Range.Start.Format(time.DateOnly), s.Range.End.Format(time.DateOnly), s.Records)

	seasons := make([][]string, 0, len(s.Seasons))
	for _, r := range s.Seasons {
		seasons = append(seasons, []string{string(r.Season), strconv.Itoa(r.TotalUser)})
	}
	writeTable(&b, "Total Rentals by Season", []string{"Season", "Total Rentals"}, seasons)

	weekdays := make([][]string, 0, len(s.Weekdays))
	for _, r := range s.Weekdays {
		weekdays = append(weekdays, []string{r.Weekday, strconv.Itoa(r.TotalUser)})
	}
	writeTable(&b, "Total Rentals by Weekday", []string{"Weekday", "Total Rentals"}, weekdays)

	wide := make([][]string, 0, len(s.CustomerTypes.Wide))
	for _, r := range s.CustomerTypes.Wide {
		wide = append(wide, []string{string(r.Season), strconv.Itoa(r.Casual), strconv.Itoa(r.Registered)})
	}
	writeTable(&b, "Rentals by Season and Customer Type", []string{"Season", "Casual", "Registered"}, wide)

	return b.String()
}

func writeTable(b *strings.Builder, title string, headers []string, rows [][]string) {
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	if len(rows) == 0 {
		b.WriteString("no rentals in the selected range\n")
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	b.WriteString(t.Render())
	b.WriteString("\n")
}
