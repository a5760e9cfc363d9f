// Package snapshot defines the persisted form of the registry: an explicit,
// versioned JSON schema with one record per account, rather than an opaque
// object-graph blob. Restores replace the whole aggregate at once.
package snapshot

import (
    "encoding/json"
    "fmt"
    "io"
    "log/slog"
    "time"

    "github.com/google/uuid"

    "github.com/tdunne/bankbook/internal/bank"
    "github.com/tdunne/bankbook/internal/errs"
)

// Version is the current schema version. Loads reject anything else.
const Version = 1

const dateLayout = "2006-01-02"

// Meta identifies a snapshot and its schema version.
type Meta struct {
    ID        uuid.UUID `json:"id"`
    Version   int       `json:"version"`
    CreatedAt time.Time `json:"created_at"`
}

// TransactionRecord is the persisted form of a bank.Transaction.
type TransactionRecord struct {
    ID          uuid.UUID `json:"id"`
    Date        string    `json:"date"`
    AmountMinor int64     `json:"amount_minor"`
    Currency    string    `json:"currency"`
    Exempt      bool      `json:"exempt,omitempty"`
}

// AccountRecord is the persisted form of a bank.Account.
type AccountRecord struct {
    Number        int                 `json:"number"`
    Kind          bank.Kind           `json:"kind"`
    InterestMonth string              `json:"interest_month,omitempty"`
    Transactions  []TransactionRecord `json:"transactions"`
}

// Snapshot is a full copy of the registry state.
type Snapshot struct {
    Meta              Meta            `json:"_meta"`
    NextAccountNumber int             `json:"next_account_number"`
    Accounts          []AccountRecord `json:"accounts"`
}

// Capture converts the registry's current state into a snapshot with a
// fresh id.
func Capture(r *bank.Registry) Snapshot {
    s := Snapshot{
        Meta:              Meta{ID: uuid.New(), Version: Version, CreatedAt: time.Now().UTC()},
        NextAccountNumber: r.NextNumber(),
    }
    for _, a := range r.Accounts() {
        rec := AccountRecord{
            Number:        a.Number(),
            Kind:          a.Kind(),
            InterestMonth: a.InterestMonth(),
            Transactions:  []TransactionRecord{},
        }
        for _, t := range a.Transactions() {
            minor, _ := t.Amount.MinorUnits()
            rec.Transactions = append(rec.Transactions, TransactionRecord{
                ID:          t.ID,
                Date:        t.Date.Format(dateLayout),
                AmountMinor: minor,
                Currency:    t.Amount.Curr().Code(),
                Exempt:      t.Exempt,
            })
        }
        s.Accounts = append(s.Accounts, rec)
    }
    return s
}

// Registry rebuilds the full aggregate from the snapshot.
func (s Snapshot) Registry(logger *slog.Logger) (*bank.Registry, error) {
    if s.Meta.Version != Version {
        return nil, fmt.Errorf("%w: schema version %d (want %d)", errs.ErrBadSnapshot, s.Meta.Version, Version)
    }
    accounts := make([]*bank.Account, 0, len(s.Accounts))
    for _, rec := range s.Accounts {
        txs := make([]bank.Transaction, 0, len(rec.Transactions))
        for _, tr := range rec.Transactions {
            date, err := time.Parse(dateLayout, tr.Date)
            if err != nil {
                return nil, fmt.Errorf("%w: account %d: %v", errs.ErrBadSnapshot, rec.Number, err)
            }
            if tr.Currency != bank.Currency {
                return nil, fmt.Errorf("%w: account %d: currency %q", errs.ErrBadSnapshot, rec.Number, tr.Currency)
            }
            txs = append(txs, bank.Transaction{
                ID:     tr.ID,
                Date:   date,
                Amount: bank.NewAmount(tr.AmountMinor),
                Exempt: tr.Exempt,
            })
        }
        a, err := bank.RestoreAccount(rec.Kind, rec.Number, rec.InterestMonth, txs)
        if err != nil {
            return nil, fmt.Errorf("%w: %v", errs.ErrBadSnapshot, err)
        }
        accounts = append(accounts, a)
    }
    reg, err := bank.Restore(logger, s.NextAccountNumber, accounts)
    if err != nil {
        return nil, fmt.Errorf("%w: %v", errs.ErrBadSnapshot, err)
    }
    return reg, nil
}

// Encode writes the snapshot as indented JSON.
func (s Snapshot) Encode(w io.Writer) error {
    enc := json.NewEncoder(w)
    enc.SetIndent("", "  ")
    return enc.Encode(s)
}

// Decode reads a snapshot from JSON, mapping malformed bytes onto
// errs.ErrBadSnapshot.
func Decode(r io.Reader) (Snapshot, error) {
    var s Snapshot
    if err := json.NewDecoder(r).Decode(&s); err != nil {
        return Snapshot{}, fmt.Errorf("%w: %v", errs.ErrBadSnapshot, err)
    }
    return s, nil
}
