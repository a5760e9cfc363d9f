package snapshot

import (
    "context"
    "log/slog"
    "os"

    "github.com/tdunne/bankbook/internal/bank"
)

// DefaultPath is the canonical snapshot file when none is configured.
const DefaultPath = "bank.snapshot.json"

// FileStore persists snapshots to a single file. Saves go through a
// temporary file renamed over the target so an interrupted write never
// clobbers the previous snapshot.
type FileStore struct {
    path string
    log  *slog.Logger
}

// NewFileStore builds a store writing to path.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
    if path == "" {
        path = DefaultPath
    }
    if logger == nil {
        logger = slog.Default()
    }
    return &FileStore{path: path, log: logger}
}

// Path returns the target file.
func (fs *FileStore) Path() string { return fs.path }

// Save captures the registry and writes it out, replacing any prior
// snapshot. I/O errors propagate unmodified.
func (fs *FileStore) Save(_ context.Context, reg *bank.Registry) (Meta, error) {
    snap := Capture(reg)
    tmp := fs.path + ".tmp"
    f, err := os.Create(tmp)
    if err != nil {
        return Meta{}, err
    }
    if err := snap.Encode(f); err != nil {
        f.Close()
        os.Remove(tmp)
        return Meta{}, err
    }
    if err := f.Close(); err != nil {
        os.Remove(tmp)
        return Meta{}, err
    }
    if err := os.Rename(tmp, fs.path); err != nil {
        return Meta{}, err
    }
    fs.log.Info("snapshot saved", "path", fs.path, "snapshot_id", snap.Meta.ID, "accounts", len(snap.Accounts))
    return snap.Meta, nil
}

// Load reads the snapshot file and rebuilds the registry. A missing or
// unreadable file surfaces the os error; undecodable or foreign bytes
// surface errs.ErrBadSnapshot.
func (fs *FileStore) Load(_ context.Context) (*bank.Registry, error) {
    f, err := os.Open(fs.path)
    if err != nil {
        return nil, err
    }
    defer f.Close()
    snap, err := Decode(f)
    if err != nil {
        return nil, err
    }
    reg, err := snap.Registry(fs.log)
    if err != nil {
        return nil, err
    }
    fs.log.Info("snapshot loaded", "path", fs.path, "snapshot_id", snap.Meta.ID, "accounts", len(snap.Accounts))
    return reg, nil
}
