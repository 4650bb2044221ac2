package http

import (
	"context"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"fintrack/internal/auth"
	"fintrack/internal/core"
	"fintrack/internal/events"
	"fintrack/web"
)

// Store is what the handlers need from the persistence layer. The
// SQLite repository satisfies it; tests may substitute doubles.
type Store interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (core.User, error)
	GetUserByEmail(ctx context.Context, email string) (core.User, error)

	CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error)
	ListExpenses(ctx context.Context, userID string) ([]core.Expense, error)
	DeleteExpense(ctx context.Context, id, userID string) error

	CreateSubscription(ctx context.Context, s core.Subscription) (core.Subscription, error)
	ListSubscriptions(ctx context.Context, userID string) ([]core.Subscription, error)
	DeleteSubscription(ctx context.Context, id, userID string) error
}

type Server struct {
	http.Server

	store     Store
	tokens    *auth.TokenService
	publisher *events.Publisher

	rateLimiter *rateLimiter
	startedAt   time.Time

	shutdownOnce sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
func NewServer(addr string, store Store, tokens *auth.TokenService, publisher *events.Publisher) *Server {
	s := &Server{
		store:       store,
		tokens:      tokens,
		publisher:   publisher,
		rateLimiter: newRateLimiter(),
		startedAt:   time.Now(),
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(recoverJSON)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	r.Use(securityHeaders)

	r.Get("/health", s.handleHealth)

	r.Route("/auth", func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Post("/signup", s.handleSignup)
		r.Post("/login", s.handleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/expenses", s.handleListExpenses)
		r.Post("/expenses", s.handleCreateExpense)
		r.Delete("/expenses/{id}", s.handleDeleteExpense)

		r.Get("/subscriptions", s.handleListSubscriptions)
		r.Post("/subscriptions", s.handleCreateSubscription)
		r.Delete("/subscriptions/{id}", s.handleDeleteSubscription)
	})

	// Embedded client page.
	if sub, err := fs.Sub(web.StaticFS, "static"); err == nil {
		static := http.FileServer(http.FS(sub))
		r.Handle("/*", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600")
			static.ServeHTTP(w, req)
		}))
	}

	s.Server = http.Server{Addr: addr, Handler: r}
	return s
}

// Shutdown drains in-flight requests and stops the rate limiter cleanup.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

type healthResponse struct {
	Status    string  `json:"status"`
	Service   string  `json:"service"`
	Uptime    float64 `json:"uptime"`
	Timestamp string  `json:"timestamp"`
}

// handleHealth is a pure liveness probe; it touches no state.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Service:   "fintrack",
		Uptime:    time.Since(s.startedAt).Seconds(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
