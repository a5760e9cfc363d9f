package bank

import (
    "fmt"
    "log/slog"
    "sync"
    "time"

    "github.com/govalues/money"

    "github.com/tdunne/bankbook/internal/errs"
)

// Registry tracks every open account and the next account number to issue.
// Numbers start at 1, increase monotonically, and are never reused. The
// mutex guards the account list and the counter; each account serializes
// its own postings, so live *Account pointers are safe to share.
type Registry struct {
    mu         sync.Mutex
    log        *slog.Logger
    accounts   []*Account
    nextNumber int
}

// New returns an empty registry with the counter at 1.
func New(logger *slog.Logger) *Registry {
    if logger == nil {
        logger = slog.Default()
    }
    return &Registry{log: logger, nextNumber: 1}
}

// Restore rebuilds a registry from persisted state, re-checking the
// numbering invariant: every account number unique and below nextNumber.
func Restore(logger *slog.Logger, nextNumber int, accounts []*Account) (*Registry, error) {
    if nextNumber < 1 {
        return nil, fmt.Errorf("%w: next account number %d", errs.ErrInvalid, nextNumber)
    }
    seen := make(map[int]struct{}, len(accounts))
    for _, a := range accounts {
        if _, dup := seen[a.Number()]; dup {
            return nil, fmt.Errorf("%w: duplicate account number %d", errs.ErrInvalid, a.Number())
        }
        if a.Number() >= nextNumber {
            return nil, fmt.Errorf("%w: account number %d not below next number %d",
                errs.ErrInvalid, a.Number(), nextNumber)
        }
        seen[a.Number()] = struct{}{}
    }
    r := New(logger)
    r.nextNumber = nextNumber
    r.accounts = append(r.accounts, accounts...)
    return r, nil
}

// Open creates an account of the given kind, assigning the current counter
// value. The counter only advances on success.
func (r *Registry) Open(kind Kind) (*Account, error) {
    k, err := ParseKind(string(kind))
    if err != nil {
        return nil, err
    }
    r.mu.Lock()
    defer r.mu.Unlock()
    a := NewAccount(k, r.nextNumber)
    r.accounts = append(r.accounts, a)
    r.nextNumber++
    r.log.Debug("created account", "number", a.Number(), "kind", a.Kind())
    return a, nil
}

// OpenByName parses a case-insensitive kind tag and opens the account.
func (r *Registry) OpenByName(tag string) (*Account, error) {
    kind, err := ParseKind(tag)
    if err != nil {
        return nil, err
    }
    return r.Open(kind)
}

// Account looks up an account by number, scanning in creation order.
// A miss returns errs.ErrNotFound.
func (r *Registry) Account(number int) (*Account, error) {
    r.mu.Lock()
    defer r.mu.Unlock()
    for _, a := range r.accounts {
        if a.Number() == number {
            return a, nil
        }
    }
    return nil, errs.ErrNotFound
}

// Accounts returns all accounts in creation order.
func (r *Registry) Accounts() []*Account {
    r.mu.Lock()
    defer r.mu.Unlock()
    out := make([]*Account, len(r.accounts))
    copy(out, r.accounts)
    return out
}

// NextNumber reports the number the next opened account will receive.
func (r *Registry) NextNumber() int {
    r.mu.Lock()
    defer r.mu.Unlock()
    return r.nextNumber
}

// Post records a customer transaction on the numbered account.
func (r *Registry) Post(number int, amount money.Amount, date time.Time) (Transaction, error) {
    a, err := r.Account(number)
    if err != nil {
        return Transaction{}, err
    }
    t, err := a.Post(amount, date)
    if err != nil {
        return Transaction{}, err
    }
    r.log.Debug("created transaction", "number", number, "amount", FormatAmount(amount))
    return t, nil
}

// ApplyInterest assesses interest and fees on the numbered account.
func (r *Registry) ApplyInterest(number int) error {
    a, err := r.Account(number)
    if err != nil {
        return err
    }
    if err := a.ApplyInterest(); err != nil {
        return err
    }
    r.log.Debug("applied interest and fees", "number", number)
    return nil
}
