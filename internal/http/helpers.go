package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fintrack/internal/core"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encoding failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeStorageError surfaces a storage failure as a 500 with a generic
// error and the wrapped cause as diagnostics. Credentials never appear in
// adapter errors, so the message is safe to return.
func writeStorageError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error:   "Internal Server Error",
		Message: err.Error(),
	})
}

// parsePeriod reads the month/year query parameters. Month is 0-based on
// the wire ([0,11]); absent, unparseable, or out-of-range values fall back
// to the current calendar month/year. Returns the internal period and the
// wire month to echo back.
func parsePeriod(r *http.Request) (core.Period, int) {
	now := time.Now()
	p := core.Period{Month: now.Month(), Year: now.Year()}

	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil && m >= 0 && m <= 11 {
			p.Month = time.Month(m + 1)
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil && y >= 1 {
			p.Year = y
		}
	}
	return p, int(p.Month) - 1
}

// sanitizeInput trims whitespace and strips control characters except tab,
// newline, and carriage return.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
