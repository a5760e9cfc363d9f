// Package bank holds the account domain: the enumerated account kinds,
// posting rules (chronological order, overdraw, savings limits), monthly
// interest and fee assessment, and the registry that issues account numbers.
package bank

import (
    "fmt"
    "sort"
    "strings"
    "sync"
    "time"

    "github.com/google/uuid"
    "github.com/govalues/decimal"
    "github.com/govalues/money"

    "github.com/tdunne/bankbook/internal/errs"
)

// Kind enumerates the concrete account variants.
type Kind string

const (
    KindSavings  Kind = "savings"
    KindChecking Kind = "checking"
)

// ParseKind maps a case-insensitive tag onto the enumerated set.
// Anything outside the set returns an error wrapping errs.ErrUnknownKind
// so callers cannot mistake an invalid tag for a created account.
func ParseKind(s string) (Kind, error) {
    switch Kind(strings.ToLower(strings.TrimSpace(s))) {
    case KindSavings:
        return KindSavings, nil
    case KindChecking:
        return KindChecking, nil
    }
    return "", fmt.Errorf("%w: %q", errs.ErrUnknownKind, s)
}

// Title renders the kind the way account summaries print it.
func (k Kind) Title() string {
    switch k {
    case KindSavings:
        return "Savings"
    case KindChecking:
        return "Checking"
    }
    return "Account"
}

// kindPolicy carries the per-kind posting and interest parameters.
type kindPolicy struct {
    monthlyRate  decimal.Decimal
    dailyLimit   int // non-exempt transactions per day; 0 = unlimited
    monthlyLimit int // non-exempt transactions per month; 0 = unlimited
    lowBalanceFee      money.Amount // zero amount = no fee
    lowBalanceFloorMinor int64
}

var policies = map[Kind]kindPolicy{
    KindSavings: {
        monthlyRate:  decimal.MustNew(33, 4), // 0.33% per month
        dailyLimit:   2,
        monthlyLimit: 5,
        lowBalanceFee: zeroAmount(),
    },
    KindChecking: {
        monthlyRate:          decimal.MustNew(8, 4), // 0.08% per month
        lowBalanceFee:        NewAmount(-575),
        lowBalanceFloorMinor: 100_00,
    },
}

// Account is one customer account. The registry hands these out with
// sequential numbers; all mutation goes through Post and ApplyInterest.
// The mutex serializes postings against reads so live pointers can be
// shared across goroutines; number and kind are immutable.
type Account struct {
    number int
    kind   Kind

    mu           sync.Mutex
    transactions []Transaction
    // interestMonth is the "2006-01" month interest and fees were last
    // assessed for, or empty.
    interestMonth string
}

// NewAccount builds an empty account of the given kind with the given number.
func NewAccount(kind Kind, number int) *Account {
    return &Account{number: number, kind: kind}
}

// RestoreAccount rebuilds an account from persisted state. Used by the
// snapshot layer; it trusts the transactions as recorded and applies no
// posting rules to them.
func RestoreAccount(kind Kind, number int, interestMonth string, txs []Transaction) (*Account, error) {
    k, err := ParseKind(string(kind))
    if err != nil {
        return nil, err
    }
    if number < 1 {
        return nil, fmt.Errorf("%w: account number %d", errs.ErrInvalid, number)
    }
    a := &Account{number: number, kind: k, interestMonth: interestMonth}
    a.transactions = append(a.transactions, txs...)
    return a, nil
}

// Number returns the registry-assigned identifier.
func (a *Account) Number() int { return a.number }

// Kind returns the account variant.
func (a *Account) Kind() Kind { return a.kind }

// InterestMonth returns the "2006-01" month interest was last assessed
// for, or empty when it never was.
func (a *Account) InterestMonth() string {
    a.mu.Lock()
    defer a.mu.Unlock()
    return a.interestMonth
}

// Balance sums all transaction amounts.
func (a *Account) Balance() money.Amount {
    a.mu.Lock()
    defer a.mu.Unlock()
    return a.balance()
}

// balance sums all transaction amounts. Callers hold a.mu.
func (a *Account) balance() money.Amount {
    total := zeroAmount()
    for _, t := range a.transactions {
        v, err := total.Add(t.Amount)
        if err != nil {
            // every posting shares Currency; anything else is corrupted state
            panic(fmt.Sprintf("bank: account %d: %v", a.number, err))
        }
        total = v
    }
    return total
}

// Transactions returns the account's transactions sorted by date.
func (a *Account) Transactions() []Transaction {
    a.mu.Lock()
    out := make([]Transaction, len(a.transactions))
    copy(out, a.transactions)
    a.mu.Unlock()
    sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
    return out
}

// Post records a customer transaction, enforcing chronological order,
// the non-negative balance rule, and the kind's transaction limits.
func (a *Account) Post(amount money.Amount, date time.Time) (Transaction, error) {
    a.mu.Lock()
    defer a.mu.Unlock()
    t := Transaction{ID: uuid.New(), Date: date, Amount: amount}
    if err := a.check(t); err != nil {
        return Transaction{}, err
    }
    a.transactions = append(a.transactions, t)
    return t, nil
}

// appendExempt records a system transaction (interest or fee). Exempt
// postings bypass balance and limit checks. Callers hold a.mu.
func (a *Account) appendExempt(amount money.Amount, date time.Time) Transaction {
    t := Transaction{ID: uuid.New(), Date: date, Amount: amount, Exempt: true}
    a.transactions = append(a.transactions, t)
    return t
}

// check applies the posting rules. Callers hold a.mu.
func (a *Account) check(t Transaction) error {
    if latest, ok := a.latest(); ok && t.Date.Before(latest.Date) {
        return fmt.Errorf("%w: transactions must be dated %s or later",
            errs.ErrOutOfOrder, latest.Date.Format("2006-01-02"))
    }
    if t.Amount.IsNeg() {
        bal, _ := a.balance().MinorUnits()
        amt, _ := t.Amount.MinorUnits()
        if bal+amt < 0 {
            return fmt.Errorf("%w: insufficient balance", errs.ErrOverdrawn)
        }
    }
    p := policies[a.kind]
    if p.dailyLimit > 0 || p.monthlyLimit > 0 {
        day, month := 0, 0
        for _, prev := range a.transactions {
            if prev.Exempt {
                continue
            }
            if prev.sameDay(t) {
                day++
            }
            if prev.sameMonth(t) {
                month++
            }
        }
        if p.dailyLimit > 0 && day >= p.dailyLimit {
            return fmt.Errorf("%w: at most %d transactions per day", errs.ErrDailyLimit, p.dailyLimit)
        }
        if p.monthlyLimit > 0 && month >= p.monthlyLimit {
            return fmt.Errorf("%w: at most %d transactions per month", errs.ErrMonthlyLimit, p.monthlyLimit)
        }
    }
    return nil
}

// ApplyInterest assesses monthly interest (and, for checking accounts with
// a balance under the floor, the low-balance fee) dated on the last day of
// the latest transaction's month. At most once per calendar month; a
// no-op on accounts with no transactions.
func (a *Account) ApplyInterest() error {
    a.mu.Lock()
    defer a.mu.Unlock()
    latest, ok := a.latest()
    if !ok {
        return nil
    }
    trigger := latest.lastDayOfMonth()
    month := trigger.Format("2006-01")
    if a.interestMonth == month {
        return fmt.Errorf("%w: interest and fees already applied for %s",
            errs.ErrInterestApplied, trigger.Format("January 2006"))
    }
    p := policies[a.kind]
    interest, err := a.balance().Mul(p.monthlyRate)
    if err != nil {
        return err
    }
    a.appendExempt(interest.RoundToCurr(), trigger)
    if floor := p.lowBalanceFloorMinor; floor > 0 {
        if bal, _ := a.balance().MinorUnits(); bal < floor {
            a.appendExempt(p.lowBalanceFee, trigger)
        }
    }
    a.interestMonth = month
    return nil
}

// latest returns the most recently dated transaction. Callers hold a.mu.
func (a *Account) latest() (Transaction, bool) {
    var out Transaction
    found := false
    for _, t := range a.transactions {
        if !found || t.Date.After(out.Date) {
            out = t
            found = true
        }
    }
    return out, found
}

// Summary formats the account for listings,
// e.g. "Savings#000000001,\tbalance: $1,000.00".
func (a *Account) Summary() string {
    a.mu.Lock()
    defer a.mu.Unlock()
    return fmt.Sprintf("%s#%09d,\tbalance: %s", a.kind.Title(), a.number, FormatAmount(a.balance()))
}
