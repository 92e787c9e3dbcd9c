package http

import (
	"crypto/subtle"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"fintrack/internal/core"
)

// addTransactionResponse echoes the stored transaction back to the form.
type addTransactionResponse struct {
	Success   bool             `json:"success"`
	Data      core.Transaction `json:"data"`
	Timestamp string           `json:"timestamp"`
	Result    string           `json:"result"`
}

// getTransactionsResponse carries one month of transactions. Month is
// 0-based on the wire, matching the front end's calendar widget.
type getTransactionsResponse struct {
	Transactions []core.Transaction `json:"transactions"`
	Month        int                `json:"month"`
	Year         int                `json:"year"`
}

type categoriesResponse struct {
	Expense []string `json:"expense"`
	Income  []string `json:"income"`
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST, OPTIONS")
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil || len(body) == 0 {
		writeError(w, http.StatusBadRequest, "Missing request body")
		return
	}

	var tx core.Transaction
	if err := json.Unmarshal(body, &tx); err != nil {
		slog.WarnContext(r.Context(), "Transaction decode failed", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid transaction data")
		return
	}
	// Any client-supplied id is meaningless; ids are assigned at read time.
	tx.ID = 0
	tx.Name = sanitizeInput(tx.Name)
	tx.Category = sanitizeInput(tx.Category)
	tx.Description = sanitizeInput(tx.Description)

	if err := tx.Validate(); err != nil {
		slog.WarnContext(r.Context(), "Transaction rejected", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid transaction data")
		return
	}

	ref, err := s.appender.Append(r.Context(), tx)
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction append failed", "error", err, "date", tx.Date, "amount_cents", tx.Amount.Cents)
		writeStorageError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, addTransactionResponse{
		Success:   true,
		Data:      tx,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Result:    ref,
	})
}

func (s *Server) handleGetTransactions(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET, OPTIONS")
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	p, wireMonth := parsePeriod(r)

	txs, err := s.lister.ListMonth(r.Context(), p)
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction list failed", "error", err, "sheet", p.SheetName())
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Failed to fetch transactions",
			Message: err.Error(),
		})
		return
	}
	if txs == nil {
		txs = []core.Transaction{}
	}

	writeJSON(w, http.StatusOK, getTransactionsResponse{
		Transactions: txs,
		Month:        wireMonth,
		Year:         p.Year,
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET, OPTIONS")
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	writeJSON(w, http.StatusOK, categoriesResponse{
		Expense: core.ExpenseCategories,
		Income:  core.IncomeCategories,
	})
}

func (s *Server) authorized(r *http.Request) bool {
	key := r.Header.Get("X-API-Key")
	if key == "" || s.apiKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(s.apiKey)) == 1
}
