package postgres

// Package postgres provides a pgx-backed snapshot archive. Each save
// appends a row carrying the full JSON snapshot; loads restore from the
// most recent row. Migrations creating the expected schema live under
// db/migrations.

import (
    "bytes"
    "context"
    "errors"
    "log/slog"

    "github.com/jackc/pgx/v5"
    "github.com/jackc/pgx/v5/pgxpool"

    "github.com/tdunne/bankbook/internal/bank"
    "github.com/tdunne/bankbook/internal/errs"
    "github.com/tdunne/bankbook/internal/snapshot"
)

// Store holds a pgx connection pool. All methods are safe for concurrent use.
type Store struct {
    pool *pgxpool.Pool
    log  *slog.Logger
}

// Open establishes a pgx pool using the provided connection string.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*Store, error) {
    cfg, err := pgxpool.ParseConfig(dsn)
    if err != nil {
        return nil, err
    }
    pool, err := pgxpool.NewWithConfig(ctx, cfg)
    if err != nil {
        return nil, err
    }
    // Verify connection
    if err := pool.Ping(ctx); err != nil {
        pool.Close()
        return nil, err
    }
    if logger == nil {
        logger = slog.Default()
    }
    return &Store{pool: pool, log: logger}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
    if s.pool != nil {
        s.pool.Close()
    }
}

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

// Save captures the registry and inserts it as a new snapshot row.
func (s *Store) Save(ctx context.Context, reg *bank.Registry) (snapshot.Meta, error) {
    snap := snapshot.Capture(reg)
    var buf bytes.Buffer
    if err := snap.Encode(&buf); err != nil {
        return snapshot.Meta{}, err
    }
    _, err := s.pool.Exec(ctx, `
        insert into snapshots (id, created_at, version, data)
        values ($1, $2, $3, $4)
    `, snap.Meta.ID, snap.Meta.CreatedAt, snap.Meta.Version, buf.Bytes())
    if err != nil {
        return snapshot.Meta{}, err
    }
    s.log.Info("snapshot saved", "backend", "postgres", "snapshot_id", snap.Meta.ID, "accounts", len(snap.Accounts))
    return snap.Meta, nil
}

// Load restores the registry from the most recent snapshot row. No rows
// maps to errs.ErrNotFound.
func (s *Store) Load(ctx context.Context) (*bank.Registry, error) {
    var data []byte
    err := s.pool.QueryRow(ctx, `
        select data from snapshots
        order by created_at desc, id desc
        limit 1
    `).Scan(&data)
    if errors.Is(err, pgx.ErrNoRows) {
        return nil, errs.ErrNotFound
    }
    if err != nil {
        return nil, err
    }
    snap, err := snapshot.Decode(bytes.NewReader(data))
    if err != nil {
        return nil, err
    }
    reg, err := snap.Registry(s.log)
    if err != nil {
        return nil, err
    }
    s.log.Info("snapshot loaded", "backend", "postgres", "snapshot_id", snap.Meta.ID, "accounts", len(snap.Accounts))
    return reg, nil
}
