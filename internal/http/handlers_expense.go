package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"expenso/internal/core"
	"expenso/internal/expense"
)

// expenseRequest is the create payload. Dates arrive as "YYYY-MM-DD" and
// amounts as plain JSON numbers.
type expenseRequest struct {
	Amount      core.Money `json:"amount"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Date        core.Date  `json:"date"`
}

// expensePatchRequest is the update payload; absent fields stay unchanged.
type expensePatchRequest struct {
	Amount      *core.Money `json:"amount"`
	Description *string     `json:"description"`
	Category    *string     `json:"category"`
	Date        *core.Date  `json:"date"`
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeData(w, http.StatusOK, s.store.List())
	case http.MethodPost:
		s.handleCreateExpense(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Description = sanitizeInput(req.Description)

	candidate := core.Expense{
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
		Date:        req.Date,
	}
	if err := candidate.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.store.Add(r.Context(), expense.Input{
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
		Date:        req.Date,
	})
	if err != nil {
		s.writePersistenceError(w, r, err)
		return
	}

	s.invalidateSummary()
	writeData(w, http.StatusCreated, created)
}

func (s *Server) handleExpenseByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/expenses/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		e, ok := s.store.Get(id)
		if !ok {
			writeError(w, http.StatusNotFound, "expense not found")
			return
		}
		writeData(w, http.StatusOK, e)
	case http.MethodPut, http.MethodPatch:
		s.handleUpdateExpense(w, r, id)
	case http.MethodDelete:
		s.handleDeleteExpense(w, r, id)
	default:
		w.Header().Set("Allow", "GET, PUT, PATCH, DELETE")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request, id string) {
	var req expensePatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Amount != nil && req.Amount.Cents <= 0 {
		writeError(w, http.StatusUnprocessableEntity, core.ErrInvalidAmount.Error())
		return
	}
	if req.Description != nil {
		clean := sanitizeInput(*req.Description)
		if clean == "" {
			writeError(w, http.StatusUnprocessableEntity, core.ErrEmptyDescription.Error())
			return
		}
		req.Description = &clean
	}
	if req.Category != nil && !core.IsCategory(*req.Category) {
		writeError(w, http.StatusUnprocessableEntity, core.ErrUnknownCategory.Error())
		return
	}

	err := s.store.Update(r.Context(), id, expense.Patch{
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
		Date:        req.Date,
	})
	if err != nil {
		s.writePersistenceError(w, r, err)
		return
	}

	s.invalidateSummary()

	// An unknown id is a silent no-op in the store; report OK either way
	// and include the record when it exists.
	if e, ok := s.store.Get(id); ok {
		writeData(w, http.StatusOK, e)
		return
	}
	writeJSON(w, http.StatusOK, Response{Status: statusOK})
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writePersistenceError(w, r, err)
		return
	}
	s.invalidateSummary()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writePersistenceError(w http.ResponseWriter, r *http.Request, err error) {
	var perr *expense.PersistenceError
	if errors.As(err, &perr) {
		slog.ErrorContext(r.Context(), "Persistence failure", "op", perr.Op, "error", perr.Err)
		writeError(w, http.StatusInternalServerError, "failed to persist expenses")
		return
	}
	slog.ErrorContext(r.Context(), "Expense operation failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}
