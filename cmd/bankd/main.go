package main

import (
    "context"
    "errors"
    "log/slog"
    "net/http"
    "os"
    "os/signal"
    "strings"
    "syscall"
    "time"

    "github.com/tdunne/bankbook/internal/bank"
    "github.com/tdunne/bankbook/internal/errs"
    "github.com/tdunne/bankbook/internal/httpapi"
    "github.com/tdunne/bankbook/internal/snapshot"
    pgstore "github.com/tdunne/bankbook/internal/storage/postgres"
)

func main() {
    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    // Logger (slog to stdout). Level via LOG_LEVEL; format via LOG_FORMAT (json|text, default json)
    logger := buildLoggerFromEnv()
    slog.SetDefault(logger)

    var store httpapi.SnapshotStore
    var closeFn func()

    if dsn := strings.TrimSpace(os.Getenv("DATABASE_URL")); dsn != "" {
        // Archive snapshots in Postgres when DATABASE_URL is provided
        pg, err := pgstore.Open(ctx, dsn, logger)
        if err != nil {
            logger.Error("failed to connect to postgres", "err", err)
            os.Exit(1)
        }
        closeFn = func() { pg.Close() }
        store = pg
        logger.Info("snapshot backend: postgres")
    } else {
        path := strings.TrimSpace(os.Getenv("SNAPSHOT_PATH"))
        if path == "" {
            path = snapshot.DefaultPath
        }
        store = snapshot.NewFileStore(path, logger)
        logger.Info("snapshot backend: file", "path", path)
    }

    // Restore the latest snapshot when one exists; otherwise start empty.
    reg, err := store.Load(ctx)
    if err != nil {
        if !os.IsNotExist(err) && !errors.Is(err, errs.ErrNotFound) {
            logger.Warn("could not restore snapshot, starting empty", "err", err)
        }
        reg = bank.New(logger)
    }

    srv := &http.Server{
        Addr:              addrFromEnv(),
        Handler:           httpapi.New(reg, store, logger).Handler(),
        ReadTimeout:       5 * time.Second,
        ReadHeaderTimeout: 5 * time.Second,
        WriteTimeout:      10 * time.Second,
        IdleTimeout:       60 * time.Second,
    }

    errCh := make(chan error, 1)
    go func() {
        logger.Info("bankbook service listening", "addr", srv.Addr)
        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            errCh <- err
        }
    }()

    select {
    case <-ctx.Done():
        ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
        defer cancel()
        if err := srv.Shutdown(ctxShutdown); err != nil {
            logger.Error("server shutdown error", "err", err)
        }
    case err := <-errCh:
        logger.Error("server error", "err", err)
    }
    if closeFn != nil {
        closeFn()
    }
}

func addrFromEnv() string {
    if addr := strings.TrimSpace(os.Getenv("ADDR")); addr != "" {
        return addr
    }
    return ":8080"
}

// parseLogLevel maps env values to slog.Leveler
func parseLogLevel(s string) slog.Leveler {
    switch s {
    case "DEBUG", "debug":
        return slog.LevelDebug
    case "WARN", "WARNING", "warn", "warning":
        return slog.LevelWarn
    case "ERROR", "ERR", "error", "err":
        return slog.LevelError
    default:
        return slog.LevelInfo
    }
}

func buildLoggerFromEnv() *slog.Logger {
    level := parseLogLevel(os.Getenv("LOG_LEVEL"))
    format := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT")))
    if format == "text" {
        return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
    }
    // default to JSON
    return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
