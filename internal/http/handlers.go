package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"finreport/internal/amqp"
	"finreport/internal/core"
	"finreport/internal/events"
	"finreport/internal/market"
	"finreport/internal/savings"
	"finreport/internal/search"
)

// errorBody is the JSON shape of client errors.
type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// dateParam parses an optional YYYY-MM-DD query parameter, defaulting to
// today. The bool result reports whether parsing succeeded.
func dateParam(w http.ResponseWriter, r *http.Request, name string) (core.Date, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return core.Today(), true
	}
	d, err := core.ParseDate(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name+" date, expected YYYY-MM-DD")
		return core.Date{}, false
	}
	return d, true
}

func (s *Server) handleWeeklyReport(w http.ResponseWriter, r *http.Request) {
	end, ok := dateParam(w, r, "end")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.svc.Weekly(r.Context(), end))
}

func (s *Server) handleCategoryReport(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		writeError(w, http.StatusBadRequest, "category parameter is required")
		return
	}
	start, ok := dateParam(w, r, "start")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.svc.CategorySpending(r.Context(), category, start))
}

func (s *Server) handleWorkdayReport(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		writeError(w, http.StatusBadRequest, "category parameter is required")
		return
	}
	start, ok := dateParam(w, r, "start")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.svc.WorkdayWeekend(r.Context(), category, start))
}

// eventsResponse joins the spending summary with market data. The two
// embedded key sets do not overlap.
type eventsResponse struct {
	events.Summary
	market.Quotes
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	ref, ok := dateParam(w, r, "date")
	if !ok {
		return
	}
	scope := core.Scope(r.URL.Query().Get("scope"))
	if scope == "" {
		scope = core.ScopeMonth
	}

	cacheKey := ref.String() + "|" + string(scope)
	summary, hit := s.eventsCache.Get(cacheKey)
	if !hit {
		var err error
		summary, err = s.svc.Events(r.Context(), ref, scope)
		if err != nil {
			if errors.Is(err, core.ErrInvalidScope) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			slog.ErrorContext(r.Context(), "Failed to build events summary", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		s.eventsCache.Set(cacheKey, summary)
	}

	resp := eventsResponse{Summary: summary}
	if s.market != nil {
		resp.Quotes = s.market.Fetch(r.Context(), s.settings.UserCurrencies, s.settings.UserStocks)
	} else {
		resp.Quotes = market.Quotes{
			CurrencyRates: []market.CurrencyRate{},
			StockPrices:   []market.StockPrice{},
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRoundup(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	step, err := strconv.Atoi(r.URL.Query().Get("step"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "step parameter must be a number")
		return
	}

	var ops []savings.Operation
	if err := json.NewDecoder(r.Body).Decode(&ops); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: expected a JSON array of operations")
		return
	}

	total, err := savings.Investment(month, ops, step)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"investment": total})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	txs, err := s.svc.Transactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load transactions for search", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, search.Simple(r.URL.Query().Get("q"), txs))
}

func (s *Server) handleSearchPhones(w http.ResponseWriter, r *http.Request) {
	txs, err := s.svc.Transactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load transactions for search", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, search.Phones(txs))
}

func (s *Server) handleEnqueueReport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind     string `json:"kind"`
		Date     string `json:"date"`
		Scope    string `json:"scope"`
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	kind := amqp.ReportKind(req.Kind)
	switch kind {
	case amqp.ReportWeekly, amqp.ReportCategory, amqp.ReportWorkday:
	default:
		writeError(w, http.StatusBadRequest, "kind must be one of weekly, category, workday")
		return
	}
	if req.Date != "" {
		if _, err := core.ParseDate(req.Date); err != nil {
			writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
	}
	if (kind == amqp.ReportCategory || kind == amqp.ReportWorkday) && req.Category == "" {
		writeError(w, http.StatusBadRequest, "category is required for this report kind")
		return
	}

	job := amqp.NewReportJob(kind, req.Date, req.Scope, req.Category)
	if err := s.svc.EnqueueJob(r.Context(), job); err != nil {
		slog.ErrorContext(r.Context(), "Failed to enqueue report job", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	if s.writer == nil {
		writeError(w, http.StatusNotImplemented, "transaction writes are not supported by this backend")
		return
	}

	var tx core.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := tx.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.writer.Append(r.Context(), tx); err != nil {
		slog.ErrorContext(r.Context(), "Failed to append transaction", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}
