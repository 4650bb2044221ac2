package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

type createSubscriptionRequest struct {
	ServiceName string   `json:"serviceName"`
	Amount      *float64 `json:"amount"`
	RenewalDate string   `json:"renewalDate"`
}

// parseRenewalDate accepts the date-input format the client sends and
// full RFC 3339 timestamps from API callers.
func parseRenewalDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func (s *Server) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	subs, err := s.store.ListSubscriptions(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "List subscriptions failed", applog.FieldError, err, applog.FieldUserID, userID)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	respondJSON(w, http.StatusOK, subs)
}

func (s *Server) handleCreateSubscription(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	var req createSubscriptionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Amount == nil {
		respondError(w, http.StatusBadRequest, "Amount is required")
		return
	}

	renewal, ok := parseRenewalDate(req.RenewalDate)
	if !ok {
		respondError(w, http.StatusBadRequest, "Renewal date is required")
		return
	}

	sub := core.Subscription{
		ServiceName: strings.TrimSpace(req.ServiceName),
		Amount:      *req.Amount,
		RenewalDate: renewal,
		UserID:      userID,
	}
	if err := sub.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.store.CreateSubscription(r.Context(), sub)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create subscription failed", applog.FieldError, err, applog.FieldUserID, userID)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if err := s.publisher.PublishRecordCreated(r.Context(), "subscription", created.ID, userID); err != nil {
		slog.WarnContext(r.Context(), "Record event publish failed", applog.FieldError, err, applog.FieldRecordID, created.ID)
	}

	respondJSON(w, http.StatusOK, created)
}

func (s *Server) handleDeleteSubscription(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())
	id := chi.URLParam(r, "id")

	if err := s.store.DeleteSubscription(r.Context(), id, userID); err != nil {
		slog.ErrorContext(r.Context(), "Delete subscription failed", applog.FieldError, err, applog.FieldRecordID, id, applog.FieldUserID, userID)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	respondJSON(w, http.StatusOK, messageResponse{Message: "Subscription deleted"})
}
