package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
	applog "fintrack/internal/log"

	_ "modernc.org/sqlite"
)

// SQLiteRepository persists users, expenses and subscriptions. SQLite
// serializes conflicting writes itself; the repository adds no locking.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// SQLite allows a single writer; one pooled connection also keeps
	// in-memory databases coherent across queries.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateUser inserts a new user. The email is normalized before the
// uniqueness check so lookups stay case-insensitive.
func (r *SQLiteRepository) CreateUser(ctx context.Context, name, email, passwordHash string) (core.User, error) {
	email = core.NormalizeEmail(email)

	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE email = ?`, email).Scan(&exists)
	switch {
	case err == nil:
		return core.User{}, core.ErrDuplicateEmail
	case !errors.Is(err, sql.ErrNoRows):
		return core.User{}, fmt.Errorf("check existing email: %w", err)
	}

	now := time.Now().UTC()
	user := core.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		// The unique index is the backstop for concurrent signups.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return core.User{}, core.ErrDuplicateEmail
		}
		return core.User{}, fmt.Errorf("insert user: %w", err)
	}

	slog.InfoContext(ctx, "User created", applog.FieldUserID, user.ID, applog.FieldEmail, user.Email)
	return user, nil
}

func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (core.User, error) {
	email = core.NormalizeEmail(email)

	var u core.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE email = ?`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, core.ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) GetUserByID(ctx context.Context, id string) (core.User, error) {
	var u core.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE id = ?`,
		id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, core.ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// CreateExpense assigns an ID and timestamps, then inserts the record.
func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	now := time.Now().UTC()
	e.ID = uuid.NewString()
	e.CreatedAt = now
	e.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (id, title, amount, user_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.Amount, e.UserID, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense created", applog.FieldRecordID, e.ID, applog.FieldUserID, e.UserID, "amount", e.Amount)
	return e, nil
}

// ListExpenses returns the caller's expenses, newest first. The result
// is never nil so the API serializes an empty list as [].
func (r *SQLiteRepository) ListExpenses(ctx context.Context, userID string) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, amount, user_id, created_at, updated_at FROM expenses WHERE user_id = ? ORDER BY created_at DESC, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []core.Expense{}
	for rows.Next() {
		var e core.Expense
		if err := rows.Scan(&e.ID, &e.Title, &e.Amount, &e.UserID, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// DeleteExpense removes the record only when it belongs to userID.
// Deleting someone else's record (or a missing one) affects no rows and
// is not an error; callers report success either way.
func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

// CreateSubscription assigns an ID and timestamps, then inserts the record.
func (r *SQLiteRepository) CreateSubscription(ctx context.Context, s core.Subscription) (core.Subscription, error) {
	now := time.Now().UTC()
	s.ID = uuid.NewString()
	s.CreatedAt = now
	s.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO subscriptions (id, service_name, amount, renewal_date, user_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.ServiceName, s.Amount, s.RenewalDate, s.UserID, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return core.Subscription{}, fmt.Errorf("insert subscription: %w", err)
	}

	slog.InfoContext(ctx, "Subscription created", applog.FieldRecordID, s.ID, applog.FieldUserID, s.UserID, "amount", s.Amount)
	return s, nil
}

func (r *SQLiteRepository) ListSubscriptions(ctx context.Context, userID string) ([]core.Subscription, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, service_name, amount, renewal_date, user_id, created_at, updated_at FROM subscriptions WHERE user_id = ? ORDER BY created_at DESC, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	subs := []core.Subscription{}
	for rows.Next() {
		var s core.Subscription
		if err := rows.Scan(&s.ID, &s.ServiceName, &s.Amount, &s.RenewalDate, &s.UserID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// DeleteSubscription mirrors DeleteExpense: owner-scoped, silent no-op
// for records the caller does not own.
func (r *SQLiteRepository) DeleteSubscription(ctx context.Context, id, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM subscriptions WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	return nil
}
