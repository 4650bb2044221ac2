package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

type createExpenseRequest struct {
	Title string `json:"title"`
	// Pointer distinguishes a missing amount from a legitimate zero.
	Amount *float64 `json:"amount"`
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	expenses, err := s.store.ListExpenses(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "List expenses failed", applog.FieldError, err, applog.FieldUserID, userID)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	respondJSON(w, http.StatusOK, expenses)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	var req createExpenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Amount == nil {
		respondError(w, http.StatusBadRequest, "Amount is required")
		return
	}

	expense := core.Expense{
		Title:  strings.TrimSpace(req.Title),
		Amount: *req.Amount,
		UserID: userID,
	}
	if err := expense.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.store.CreateExpense(r.Context(), expense)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create expense failed", applog.FieldError, err, applog.FieldUserID, userID)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	// Event publishing is advisory; the record is already durable.
	if err := s.publisher.PublishRecordCreated(r.Context(), "expense", created.ID, userID); err != nil {
		slog.WarnContext(r.Context(), "Record event publish failed", applog.FieldError, err, applog.FieldRecordID, created.ID)
	}

	respondJSON(w, http.StatusOK, created)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())
	id := chi.URLParam(r, "id")

	// Owner scoping happens in the store; deleting a record the caller
	// does not own silently removes nothing, and the response is a
	// success either way.
	if err := s.store.DeleteExpense(r.Context(), id, userID); err != nil {
		slog.ErrorContext(r.Context(), "Delete expense failed", applog.FieldError, err, applog.FieldRecordID, id, applog.FieldUserID, userID)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	respondJSON(w, http.StatusOK, messageResponse{Message: "Expense deleted"})
}
