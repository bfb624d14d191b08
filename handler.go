package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"stock-sentiment/analysis"
	"stock-sentiment/config"
	"stock-sentiment/observability"
	"stock-sentiment/services"
)

// dateLayout is the wire format for start_date/end_date in API requests.
const dateLayout = "2006-01-02"

// APIHandler handles HTTP API requests
type APIHandler struct {
	app *App
	cfg *config.Config
}

// NewAPIHandler creates a new APIHandler
func NewAPIHandler(app *App, cfg *config.Config) *APIHandler {
	return &APIHandler{app: app, cfg: cfg}
}

// AnalyzeRequest is one dashboard submission.
type AnalyzeRequest struct {
	CompanyName string `json:"company_name"`
	Ticker      string `json:"ticker"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Limit       int    `json:"limit,omitempty"`
}

// handleHealth returns the health status of the application, including the
// state of the data-source circuit breakers.
func (h *APIHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, map[string]interface{}{
		"status":   "ok",
		"breakers": services.GetGlobalRegistry().Status(),
	})
}

// handleStatus reports the request lifecycle state for the frontend.
func (h *APIHandler) handleStatus(w http.ResponseWriter, r *http.Request) {
	state, errMsg := h.app.Status()
	resp := map[string]string{"state": string(state)}
	if errMsg != "" {
		resp["error"] = errMsg
	}
	h.jsonResponse(w, resp)
}

// handleAnalyze triggers one analysis pass.
//
// Error mapping: incomplete input → 422, date-range rule violation → 400,
// upstream fetch failure → 502, anything else → 500. Every failure leaves
// the app usable for the next submission.
func (h *APIHandler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.jsonError(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	// The body is read once; fall back to form encoding when it is not JSON.
	var req AnalyzeRequest
	if jsonErr := json.Unmarshal(body, &req); jsonErr != nil {
		form, formErr := url.ParseQuery(string(body))
		if formErr != nil {
			h.jsonError(w, "expected a JSON or form-encoded body", http.StatusBadRequest)
			return
		}
		req.CompanyName = form.Get("company_name")
		req.Ticker = form.Get("ticker")
		req.StartDate = form.Get("start_date")
		req.EndDate = form.Get("end_date")
		if v := form.Get("limit"); v != "" {
			if n, convErr := strconv.Atoi(v); convErr == nil {
				req.Limit = n
			}
		}
	}

	req.CompanyName = strings.TrimSpace(req.CompanyName)
	req.Ticker = strings.ToUpper(strings.TrimSpace(req.Ticker))

	if req.Ticker != "" {
		if err := h.validateTicker(req.Ticker); err != nil {
			h.jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		h.jsonError(w, "invalid start_date: expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		h.jsonError(w, "invalid end_date: expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	view, err := h.app.Analyze(r.Context(), analysis.Request{
		Company: req.CompanyName,
		Ticker:  req.Ticker,
		Start:   start,
		End:     end,
		Limit:   req.Limit,
	})
	if err != nil {
		var incomplete *analysis.IncompleteInputError
		var invalid *analysis.ValidationError
		var fetch *analysis.FetchError
		switch {
		case errors.As(err, &incomplete):
			h.jsonError(w, incomplete.Error(), http.StatusUnprocessableEntity)
		case errors.As(err, &invalid):
			h.jsonError(w, invalid.Error(), http.StatusBadRequest)
		case errors.As(err, &fetch):
			observability.Error("analysis fetch failed",
				"ticker", req.Ticker,
				"source", fetch.Source,
				"error", fetch.Err)
			h.jsonError(w, fmt.Sprintf("failed to fetch %s data", fetch.Source), http.StatusBadGateway)
		default:
			observability.Error("analysis failed", "ticker", req.Ticker, "error", err)
			h.jsonError(w, "an error occurred", http.StatusInternalServerError)
		}
		return
	}

	h.jsonResponse(w, view)
}

// Helper functions

func (h *APIHandler) validateTicker(ticker string) error {
	if len(ticker) > 10 {
		return fmt.Errorf("ticker too long (max 10 characters)")
	}

	matched, _ := regexp.MatchString("^[A-Z0-9.-]+$", ticker)
	if !matched {
		return fmt.Errorf("invalid ticker format (alphanumeric, dots, and dashes only)")
	}

	return nil
}

// parseDate turns an optional wire date into a time. An empty string maps
// to the zero time, which the validator treats as an unset field.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

func (h *APIHandler) jsonResponse(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (h *APIHandler) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
