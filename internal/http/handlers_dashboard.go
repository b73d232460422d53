package http

import (
	"log/slog"
	"net/http"
	"time"

	"expenso/internal/core"
	"expenso/internal/expense"
)

const summaryCacheKey = "summary"

// Summary is the dashboard payload: grand total, the last two calendar
// months with their trend, and the category/month breakdowns.
type Summary struct {
	Total            core.Money            `json:"total"`
	ThisMonth        core.Money            `json:"thisMonth"`
	LastMonth        core.Money            `json:"lastMonth"`
	TrendPct         float64               `json:"trendPct"`
	ActiveCategories int                   `json:"activeCategories"`
	ByCategory       []core.CategoryAmount `json:"byCategory"`
	ByMonth          []core.MonthAmount    `json:"byMonth"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if cached, ok := s.summaryCache.Get(summaryCacheKey); ok {
		slog.DebugContext(r.Context(), "Summary cache hit")
		writeData(w, http.StatusOK, cached)
		return
	}

	summary := s.buildSummary()
	s.summaryCache.Set(summaryCacheKey, summary)
	writeData(w, http.StatusOK, summary)
}

func (s *Server) buildSummary() Summary {
	byCategory := s.store.ByCategory()
	byMonth := s.store.ByMonth()

	// The month-over-month comparison needs the two most recent months,
	// so it runs over the chronologically sorted sequence rather than
	// the first-encounter one.
	chronological := s.store.ByMonthChronological()
	var thisMonth, lastMonth core.Money
	if n := len(chronological); n > 0 {
		thisMonth = chronological[n-1].Amount
		if n > 1 {
			lastMonth = chronological[n-2].Amount
		}
	}

	var trend float64
	if lastMonth.Cents > 0 {
		trend = float64(thisMonth.Cents-lastMonth.Cents) / float64(lastMonth.Cents) * 100
	}

	return Summary{
		Total:            s.store.TotalAll(),
		ThisMonth:        thisMonth,
		LastMonth:        lastMonth,
		TrendPct:         trend,
		ActiveCategories: len(byCategory),
		ByCategory:       byCategory,
		ByMonth:          byMonth,
	}
}

func (s *Server) invalidateSummary() {
	s.summaryCache.Delete(summaryCacheKey)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	filename := expense.ExportFilename(time.Now())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(s.store.ExportCSV())); err != nil {
		slog.ErrorContext(r.Context(), "Failed to write CSV export", "error", err)
	}
}
