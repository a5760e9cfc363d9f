package httpapi

import (
    "time"

    "github.com/google/uuid"

    "github.com/tdunne/bankbook/internal/bank"
)

type postAccountRequest struct {
    Kind string `json:"kind"`
}

type accountResponse struct {
    Number       int       `json:"number"`
    Kind         bank.Kind `json:"kind"`
    BalanceMinor int64     `json:"balance_minor"`
    Currency     string    `json:"currency"`
    Summary      string    `json:"summary"`
}

type postTransactionRequest struct {
    AmountMinor int64  `json:"amount_minor"`
    Date        string `json:"date"`
}

// validPostTransaction is the parsed form stored in the request context.
type validPostTransaction struct {
    AmountMinor int64
    Date        time.Time
}

type transactionResponse struct {
    ID          uuid.UUID `json:"id"`
    Date        string    `json:"date"`
    AmountMinor int64     `json:"amount_minor"`
    Currency    string    `json:"currency"`
    Exempt      bool      `json:"exempt"`
}

type snapshotResponse struct {
    SnapshotID uuid.UUID `json:"snapshot_id"`
    CreatedAt  time.Time `json:"created_at"`
    Accounts   int       `json:"accounts"`
}

type restoreResponse struct {
    NextAccountNumber int `json:"next_account_number"`
    Accounts          int `json:"accounts"`
}

func toAccountResponse(a *bank.Account) accountResponse {
    minor, _ := a.Balance().MinorUnits()
    return accountResponse{
        Number:       a.Number(),
        Kind:         a.Kind(),
        BalanceMinor: minor,
        Currency:     bank.Currency,
        Summary:      a.Summary(),
    }
}

func toTransactionResponse(t bank.Transaction) transactionResponse {
    minor, _ := t.Amount.MinorUnits()
    return transactionResponse{
        ID:          t.ID,
        Date:        t.Date.Format("2006-01-02"),
        AmountMinor: minor,
        Currency:    t.Amount.Curr().Code(),
        Exempt:      t.Exempt,
    }
}
