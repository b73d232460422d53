package expense

import (
	"strings"
	"time"
)

var csvHeader = []string{"Date", "Description", "Category", "Amount"}

// ExportCSV serializes the collection in storage order: a header row, then
// one row per expense, fields joined by literal commas. Fields are not
// quoted, so a description containing a comma corrupts its row — a known
// limitation kept for compatibility with the files the export has always
// produced.
func (s *Store) ExportCSV() string {
	items := s.List()

	lines := make([]string, 0, len(items)+1)
	lines = append(lines, strings.Join(csvHeader, ","))
	for _, e := range items {
		lines = append(lines, strings.Join([]string{
			e.Date.String(),
			e.Description,
			e.Category,
			e.Amount.String(),
		}, ","))
	}
	return strings.Join(lines, "\n")
}

// ExportFilename returns the download name for an export taken at t,
// "expenses-YYYY-MM-DD.csv".
func ExportFilename(t time.Time) string {
	return "expenses-" + t.Format("2006-01-02") + ".csv"
}
