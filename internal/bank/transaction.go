package bank

import (
    "time"

    "github.com/google/uuid"
    "github.com/govalues/money"
)

// Currency is the single currency all accounts are denominated in.
const Currency = "USD"

// Transaction is a single posting on an account. Exempt transactions are
// system-generated (interest, fees) and bypass balance and limit checks.
type Transaction struct {
    ID     uuid.UUID
    Date   time.Time
    Amount money.Amount
    Exempt bool
}

// String formats the date and amount of this transaction,
// e.g. "2022-09-15, $50.00".
func (t Transaction) String() string {
    return t.Date.Format("2006-01-02") + ", " + FormatAmount(t.Amount)
}

func (t Transaction) sameDay(other Transaction) bool {
    return t.Date.Format("2006-01-02") == other.Date.Format("2006-01-02")
}

func (t Transaction) sameMonth(other Transaction) bool {
    return t.Date.Year() == other.Date.Year() && t.Date.Month() == other.Date.Month()
}

// lastDayOfMonth returns the final calendar day of the transaction's month.
func (t Transaction) lastDayOfMonth() time.Time {
    firstOfNext := time.Date(t.Date.Year(), t.Date.Month()+1, 1, 0, 0, 0, 0, time.UTC)
    return firstOfNext.AddDate(0, 0, -1)
}

func zeroAmount() money.Amount {
    a, _ := money.NewAmountFromMinorUnits(Currency, 0)
    return a
}

// NewAmount builds a Currency amount from minor units (cents).
func NewAmount(minor int64) money.Amount {
    a, _ := money.NewAmountFromMinorUnits(Currency, minor)
    return a
}

// FormatAmount renders an amount as a dollar string with thousands
// separators, e.g. "$1,234.56" or "$-5.75".
func FormatAmount(a money.Amount) string {
    minor, _ := a.MinorUnits()
    neg := minor < 0
    if neg {
        minor = -minor
    }
    dollars, cents := minor/100, minor%100
    digits := []byte{}
    if dollars == 0 {
        digits = append(digits, '0')
    }
    for i := 0; dollars > 0; i++ {
        if i > 0 && i%3 == 0 {
            digits = append(digits, ',')
        }
        digits = append(digits, byte('0'+dollars%10))
        dollars /= 10
    }
    for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
        digits[i], digits[j] = digits[j], digits[i]
    }
    out := "$"
    if neg {
        out += "-"
    }
    return out + string(digits) + "." + string([]byte{byte('0' + cents/10), byte('0' + cents%10)})
}
