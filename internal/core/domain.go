package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// User is the root identity; expenses and subscriptions hang off it.
	User struct {
		ID           string    `json:"id"`
		Name         string    `json:"name"`
		Email        string    `json:"email"`
		PasswordHash string    `json:"-"`
		CreatedAt    time.Time `json:"createdAt"`
		UpdatedAt    time.Time `json:"updatedAt"`
	}

	Expense struct {
		ID        string    `json:"id"`
		Title     string    `json:"title"`
		Amount    float64   `json:"amount"`
		UserID    string    `json:"userId"`
		CreatedAt time.Time `json:"createdAt"`
		UpdatedAt time.Time `json:"updatedAt"`
	}

	Subscription struct {
		ID          string    `json:"id"`
		ServiceName string    `json:"serviceName"`
		Amount      float64   `json:"amount"`
		RenewalDate time.Time `json:"renewalDate"`
		UserID      string    `json:"userId"`
		CreatedAt   time.Time `json:"createdAt"`
		UpdatedAt   time.Time `json:"updatedAt"`
	}
)

var (
	ErrMissingFields      = errors.New("all fields required")
	ErrDuplicateEmail     = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrNotFound           = errors.New("not found")

	ErrEmptyTitle       = errors.New("title is required")
	ErrEmptyServiceName = errors.New("service name is required")
	ErrNegativeAmount   = errors.New("amount must be non-negative")
	ErrEmptyRenewalDate = errors.New("renewal date is required")
	ErrMissingOwner     = errors.New("owner is required")
)

// NormalizeEmail lowercases and trims an email address so uniqueness
// checks are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateSignup checks the required signup fields before any hashing
// or store access happens.
func ValidateSignup(name, email, password string) error {
	if strings.TrimSpace(name) == "" ||
		strings.TrimSpace(email) == "" ||
		password == "" {
		return ErrMissingFields
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if e.Amount < 0 {
		return ErrNegativeAmount
	}
	if e.UserID == "" {
		return ErrMissingOwner
	}
	return nil
}

func (s Subscription) Validate() error {
	if strings.TrimSpace(s.ServiceName) == "" {
		return ErrEmptyServiceName
	}
	if s.Amount < 0 {
		return ErrNegativeAmount
	}
	if s.RenewalDate.IsZero() {
		return ErrEmptyRenewalDate
	}
	if s.UserID == "" {
		return ErrMissingOwner
	}
	return nil
}
