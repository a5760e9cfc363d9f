// Package httpapi wires the HTTP surface of the bankbook service.
// It keeps handlers thin, delegating the rules to the bank package.
package httpapi

import (
    "context"
    "log/slog"
    "net/http"
    "sync"

    chi "github.com/go-chi/chi/v5"
    chimw "github.com/go-chi/chi/v5/middleware"

    "github.com/tdunne/bankbook/internal/bank"
    "github.com/tdunne/bankbook/internal/snapshot"
)

// SnapshotStore persists and restores whole registries. Implemented by
// snapshot.FileStore and storage/postgres.Store.
type SnapshotStore interface {
    Save(ctx context.Context, reg *bank.Registry) (snapshot.Meta, error)
    Load(ctx context.Context) (*bank.Registry, error)
}

// Server wires handlers and middleware using Chi. It owns the live
// registry; restore swaps the whole aggregate under regMu.
type Server struct {
    regMu sync.RWMutex
    reg   *bank.Registry

    store SnapshotStore
    log   *slog.Logger
    rt    *chi.Mux
}

// New constructs the HTTP server with routes and middleware.
// The logger is used by request/response logging and panic recovery.
func New(reg *bank.Registry, store SnapshotStore, logger *slog.Logger) *Server {
    r := chi.NewRouter()
    r.Use(chimw.RequestID)
    r.Use(requestLogger(logger))
    r.Use(recoverer(logger))
    r.Use(metricsMiddleware)

    s := &Server{reg: reg, store: store, log: logger, rt: r}
    s.routes()
    return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// registry returns the live registry.
func (s *Server) registry() *bank.Registry {
    s.regMu.RLock()
    defer s.regMu.RUnlock()
    return s.reg
}

// replaceRegistry swaps in a restored registry wholesale.
func (s *Server) replaceRegistry(reg *bank.Registry) {
    s.regMu.Lock()
    s.reg = reg
    s.regMu.Unlock()
}

// routes declares the public HTTP API endpoints and attaches any per-route
// middleware.
func (s *Server) routes() {
    // Accounts (v1)
    s.rt.With(s.validatePostAccount()).Post("/v1/accounts", s.postAccount)
    s.rt.Get("/v1/accounts", s.listAccounts)
    s.rt.Get("/v1/accounts/{number}", s.getAccount)
    // Transactions (v1)
    s.rt.With(s.validatePostTransaction()).Post("/v1/accounts/{number}/transactions", s.postTransaction)
    s.rt.Get("/v1/accounts/{number}/transactions", s.listTransactions)
    s.rt.Post("/v1/accounts/{number}/interest", s.postInterest)
    // Snapshots (v1)
    s.rt.Post("/v1/snapshot", s.saveSnapshot)
    s.rt.Post("/v1/restore", s.restoreSnapshot)
    // Health and metrics (unversioned)
    s.rt.Get("/healthz", s.healthz)
    s.rt.Get("/readyz", s.readyz)
    s.rt.Get("/metrics", metricsHandler().ServeHTTP)
}
