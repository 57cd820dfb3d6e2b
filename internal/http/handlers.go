package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"vypiska/internal/aggregate"
	"vypiska/internal/classify"
	"vypiska/internal/core"
)

// Reference datetime layouts accepted by /api/home.
var homeDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type transactionList struct {
	Status       string             `json:"status"`
	Count        int                `json:"count"`
	Transactions []core.Transaction `json:"transactions"`
}

func (s *Server) loadRecords(w http.ResponseWriter, r *http.Request) ([]core.Transaction, bool) {
	records, err := s.records.Load(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Record load failed", "error", err)
		respondError(w, r, http.StatusInternalServerError, "record source unavailable")
		return nil, false
	}
	return records, true
}

// serveCached writes the cached payload when present.
func (s *Server) serveCached(w http.ResponseWriter, key string) bool {
	body, ok := s.pageCache.Get(key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
	return true
}

func (s *Server) respondAndCache(w http.ResponseWriter, r *http.Request, key string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		slog.ErrorContext(r.Context(), "Payload encoding failed", "error", err, "path", r.URL.Path)
		respondError(w, r, http.StatusInternalServerError, "encoding failed")
		return
	}
	s.pageCache.Set(key, body)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	builder := s.pages
	dateStr := strings.TrimSpace(r.URL.Query().Get("date"))
	if dateStr != "" {
		at, ok := parseHomeDate(dateStr)
		if !ok {
			respondError(w, r, http.StatusBadRequest, "invalid date: expected YYYY-MM-DD or YYYY-MM-DD HH:MM:SS")
			return
		}
		builder = s.pages.At(at)
	}

	key := "home|" + dateStr
	if s.serveCached(w, key) {
		return
	}

	records, ok := s.loadRecords(w, r)
	if !ok {
		return
	}
	s.respondAndCache(w, r, key, builder.HomePage(r.Context(), records))
}

func parseHomeDate(s string) (time.Time, bool) {
	for _, layout := range homeDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	period := strings.TrimSpace(r.URL.Query().Get("period"))

	key := "events|" + period
	if s.serveCached(w, key) {
		return
	}

	records, ok := s.loadRecords(w, r)
	if !ok {
		return
	}
	s.respondAndCache(w, r, key, s.pages.EventsPage(r.Context(), records, period))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		respondError(w, r, http.StatusBadRequest, "missing search query")
		return
	}

	records, ok := s.loadRecords(w, r)
	if !ok {
		return
	}

	matches := classify.Search(records, query)
	respondJSON(w, r, http.StatusOK, struct {
		transactionList
		Query string `json:"query"`
	}{
		transactionList: transactionList{Status: "success", Count: len(matches), Transactions: matches},
		Query:           query,
	})
}

func (s *Server) handlePhoneTransactions(w http.ResponseWriter, r *http.Request) {
	records, ok := s.loadRecords(w, r)
	if !ok {
		return
	}

	matches := classify.PhoneTransactions(records)
	respondJSON(w, r, http.StatusOK, transactionList{
		Status: "success", Count: len(matches), Transactions: matches,
	})
}

func (s *Server) handlePersonalTransfers(w http.ResponseWriter, r *http.Request) {
	records, ok := s.loadRecords(w, r)
	if !ok {
		return
	}

	matches := classify.PersonalTransfers(records)
	respondJSON(w, r, http.StatusOK, transactionList{
		Status: "success", Count: len(matches), Transactions: matches,
	})
}

func (s *Server) handleCashback(w http.ResponseWriter, r *http.Request) {
	records, ok := s.loadRecords(w, r)
	if !ok {
		return
	}

	respondJSON(w, r, http.StatusOK, struct {
		Status     string                  `json:"status"`
		Categories []core.CategoryCashback `json:"categories"`
	}{Status: "success", Categories: aggregate.CashbackByCategory(records)})
}

func (s *Server) handleProfitableCategories(w http.ResponseWriter, r *http.Request) {
	year, month := parseYearMonth(r)

	rate := 0.01
	if v := strings.TrimSpace(r.URL.Query().Get("rate")); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed <= 0 || parsed > 1 {
			respondError(w, r, http.StatusBadRequest, "invalid rate: expected a fraction in (0, 1]")
			return
		}
		rate = parsed
	}

	records, ok := s.loadRecords(w, r)
	if !ok {
		return
	}

	respondJSON(w, r, http.StatusOK, struct {
		Status     string                  `json:"status"`
		Year       int                     `json:"year"`
		Month      int                     `json:"month"`
		Rate       float64                 `json:"rate"`
		Categories []core.CategoryCashback `json:"categories"`
	}{
		Status:     "success",
		Year:       year,
		Month:      int(month),
		Rate:       rate,
		Categories: aggregate.ProfitableCategories(records, year, month, rate),
	})
}

func (s *Server) handleRoundup(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year, month := now.Year(), now.Month()
	monthStr := strings.TrimSpace(r.URL.Query().Get("month"))
	if monthStr != "" {
		parsed, err := time.Parse("2006-01", monthStr)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, "invalid month: expected YYYY-MM")
			return
		}
		year, month = parsed.Year(), parsed.Month()
	}

	stepRubles := int64(50)
	if v := strings.TrimSpace(r.URL.Query().Get("step")); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil || parsed <= 0 {
			respondError(w, r, http.StatusBadRequest, "invalid step: expected a positive integer")
			return
		}
		stepRubles = parsed
	}
	step := core.Money{Cents: stepRubles * 100}

	records, ok := s.loadRecords(w, r)
	if !ok {
		return
	}

	respondJSON(w, r, http.StatusOK, struct {
		Status string     `json:"status"`
		Month  string     `json:"month"`
		Step   core.Money `json:"step"`
		Saved  core.Money `json:"saved"`
	}{
		Status: "success",
		Month:  time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01"),
		Step:   step,
		Saved:  aggregate.InvestmentRoundup(records, year, month, step),
	})
}

func persistRequested(r *http.Request) bool {
	v := strings.TrimSpace(r.URL.Query().Get("persist"))
	return v == "1" || strings.EqualFold(v, "true")
}

func (s *Server) handleCategoryReport(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		respondError(w, r, http.StatusBadRequest, "missing category")
		return
	}

	report, err := s.reportSvc.SpendingByCategory(r.Context(), category, persistRequested(r))
	if err != nil {
		slog.ErrorContext(r.Context(), "Category report failed", "error", err, "category", category)
		respondError(w, r, http.StatusInternalServerError, "report generation failed")
		return
	}
	respondJSON(w, r, http.StatusOK, report)
}

func (s *Server) handleWeekdayReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.reportSvc.SpendingByWeekday(r.Context(), persistRequested(r))
	if err != nil {
		slog.ErrorContext(r.Context(), "Weekday report failed", "error", err)
		respondError(w, r, http.StatusInternalServerError, "report generation failed")
		return
	}
	respondJSON(w, r, http.StatusOK, report)
}

func (s *Server) handleWorkdayReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.reportSvc.SpendingByWorkday(r.Context(), persistRequested(r))
	if err != nil {
		slog.ErrorContext(r.Context(), "Workday report failed", "error", err)
		respondError(w, r, http.StatusInternalServerError, "report generation failed")
		return
	}
	respondJSON(w, r, http.StatusOK, report)
}

// parseYearMonth extracts year and month from query parameters, with
// the current year/month as defaults.
func parseYearMonth(r *http.Request) (int, time.Month) {
	now := time.Now()
	year := now.Year()
	month := now.Month()

	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			year = y
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil && m >= 1 && m <= 12 {
			month = time.Month(m)
		}
	}

	return year, month
}
