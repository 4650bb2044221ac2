package core

import (
	"testing"
	"time"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase passthrough", "a@x.com", "a@x.com"},
		{"mixed case", "Alice@Example.COM", "alice@example.com"},
		{"surrounding whitespace", "  bob@x.com ", "bob@x.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeEmail(tt.input); got != tt.want {
				t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateSignup(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{"all fields present", "A", "a@x.com", "pw", nil},
		{"missing name", "", "a@x.com", "pw", ErrMissingFields},
		{"whitespace name", "   ", "a@x.com", "pw", ErrMissingFields},
		{"missing email", "A", "", "pw", ErrMissingFields},
		{"missing password", "A", "a@x.com", "", ErrMissingFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSignup(tt.userName, tt.email, tt.password)
			if err != tt.wantErr {
				t.Errorf("ValidateSignup() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpenseValidate(t *testing.T) {
	tests := []struct {
		name    string
		expense Expense
		wantErr error
	}{
		{"valid", Expense{Title: "Coffee", Amount: 3, UserID: "u1"}, nil},
		{"zero amount allowed", Expense{Title: "Freebie", Amount: 0, UserID: "u1"}, nil},
		{"empty title", Expense{Title: "", Amount: 3, UserID: "u1"}, ErrEmptyTitle},
		{"whitespace title", Expense{Title: "  ", Amount: 3, UserID: "u1"}, ErrEmptyTitle},
		{"negative amount", Expense{Title: "Coffee", Amount: -1, UserID: "u1"}, ErrNegativeAmount},
		{"missing owner", Expense{Title: "Coffee", Amount: 3}, ErrMissingOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.expense.Validate(); err != tt.wantErr {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSubscriptionValidate(t *testing.T) {
	renewal := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		sub     Subscription
		wantErr error
	}{
		{"valid", Subscription{ServiceName: "Netflix", Amount: 9.99, RenewalDate: renewal, UserID: "u1"}, nil},
		{"empty service name", Subscription{ServiceName: "", Amount: 9.99, RenewalDate: renewal, UserID: "u1"}, ErrEmptyServiceName},
		{"negative amount", Subscription{ServiceName: "Netflix", Amount: -0.01, RenewalDate: renewal, UserID: "u1"}, ErrNegativeAmount},
		{"zero renewal date", Subscription{ServiceName: "Netflix", Amount: 9.99, UserID: "u1"}, ErrEmptyRenewalDate},
		{"missing owner", Subscription{ServiceName: "Netflix", Amount: 9.99, RenewalDate: renewal}, ErrMissingOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.sub.Validate(); err != tt.wantErr {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
