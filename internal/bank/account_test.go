package bank

import (
    "errors"
    "testing"
    "time"

    "github.com/google/uuid"
    "github.com/govalues/money"
    "github.com/tdunne/bankbook/internal/errs"
)

func day(y int, m time.Month, d int) time.Time {
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustPost(t *testing.T, a *Account, minor int64, date time.Time) {
    t.Helper()
    if _, err := a.Post(NewAmount(minor), date); err != nil {
        t.Fatalf("post %d on %s: %v", minor, date.Format("2006-01-02"), err)
    }
}

func balanceMinor(t *testing.T, a *Account) int64 {
    t.Helper()
    minor, ok := a.Balance().MinorUnits()
    if !ok {
        t.Fatalf("balance not representable in minor units")
    }
    return minor
}

func TestPostRejectsOverdraw(t *testing.T) {
    a := NewAccount(KindChecking, 1)
    mustPost(t, a, 50_00, day(2024, time.March, 1))
    if _, err := a.Post(NewAmount(-60_00), day(2024, time.March, 2)); !errors.Is(err, errs.ErrOverdrawn) {
        t.Fatalf("err = %v, want ErrOverdrawn", err)
    }
    if got := balanceMinor(t, a); got != 50_00 {
        t.Fatalf("balance = %d, want 5000", got)
    }
    if got := len(a.Transactions()); got != 1 {
        t.Fatalf("transactions = %d, want 1", got)
    }
}

func TestPostRejectsOutOfOrderDates(t *testing.T) {
    a := NewAccount(KindChecking, 1)
    mustPost(t, a, 10_00, day(2024, time.March, 10))
    if _, err := a.Post(NewAmount(10_00), day(2024, time.March, 9)); !errors.Is(err, errs.ErrOutOfOrder) {
        t.Fatalf("err = %v, want ErrOutOfOrder", err)
    }
    // same day is fine
    mustPost(t, a, 10_00, day(2024, time.March, 10))
}

func TestSavingsDailyLimit(t *testing.T) {
    a := NewAccount(KindSavings, 1)
    d := day(2024, time.March, 4)
    mustPost(t, a, 10_00, d)
    mustPost(t, a, 10_00, d)
    if _, err := a.Post(NewAmount(10_00), d); !errors.Is(err, errs.ErrDailyLimit) {
        t.Fatalf("err = %v, want ErrDailyLimit", err)
    }
}

func TestSavingsMonthlyLimit(t *testing.T) {
    a := NewAccount(KindSavings, 1)
    mustPost(t, a, 10_00, day(2024, time.March, 1))
    mustPost(t, a, 10_00, day(2024, time.March, 1))
    mustPost(t, a, 10_00, day(2024, time.March, 2))
    mustPost(t, a, 10_00, day(2024, time.March, 2))
    mustPost(t, a, 10_00, day(2024, time.March, 3))
    if _, err := a.Post(NewAmount(10_00), day(2024, time.March, 4)); !errors.Is(err, errs.ErrMonthlyLimit) {
        t.Fatalf("err = %v, want ErrMonthlyLimit", err)
    }
    // a new month resets the count
    mustPost(t, a, 10_00, day(2024, time.April, 1))
}

func TestCheckingHasNoLimits(t *testing.T) {
    a := NewAccount(KindChecking, 1)
    d := day(2024, time.March, 4)
    for i := 0; i < 10; i++ {
        mustPost(t, a, 10_00, d)
    }
}

func TestApplyInterestSavings(t *testing.T) {
    a := NewAccount(KindSavings, 1)
    mustPost(t, a, 1000_00, day(2024, time.August, 5))

    if err := a.ApplyInterest(); err != nil {
        t.Fatalf("apply interest: %v", err)
    }
    // 0.33% of $1000.00 = $3.30, dated on the last day of August
    if got := balanceMinor(t, a); got != 1003_30 {
        t.Fatalf("balance = %d, want 100330", got)
    }
    txs := a.Transactions()
    last := txs[len(txs)-1]
    if !last.Exempt {
        t.Fatalf("interest transaction not exempt")
    }
    if got := last.Date.Format("2006-01-02"); got != "2024-08-31" {
        t.Fatalf("interest date = %s, want 2024-08-31", got)
    }

    if err := a.ApplyInterest(); !errors.Is(err, errs.ErrInterestApplied) {
        t.Fatalf("second apply: err = %v, want ErrInterestApplied", err)
    }

    // next month is assessable again
    mustPost(t, a, 10_00, day(2024, time.September, 2))
    if err := a.ApplyInterest(); err != nil {
        t.Fatalf("apply interest for September: %v", err)
    }
}

func TestApplyInterestCheckingLowBalanceFee(t *testing.T) {
    a := NewAccount(KindChecking, 1)
    mustPost(t, a, 50_00, day(2024, time.August, 5))

    if err := a.ApplyInterest(); err != nil {
        t.Fatalf("apply interest: %v", err)
    }
    // 0.08% of $50.00 = $0.04, then the $5.75 low balance fee
    if got := balanceMinor(t, a); got != 44_29 {
        t.Fatalf("balance = %d, want 4429", got)
    }
    if got := len(a.Transactions()); got != 3 {
        t.Fatalf("transactions = %d, want 3", got)
    }
}

func TestApplyInterestCheckingAboveFloor(t *testing.T) {
    a := NewAccount(KindChecking, 1)
    mustPost(t, a, 500_00, day(2024, time.August, 5))

    if err := a.ApplyInterest(); err != nil {
        t.Fatalf("apply interest: %v", err)
    }
    // 0.08% of $500.00 = $0.40, no fee
    if got := balanceMinor(t, a); got != 500_40 {
        t.Fatalf("balance = %d, want 50040", got)
    }
}

func TestApplyInterestNoTransactions(t *testing.T) {
    a := NewAccount(KindSavings, 1)
    if err := a.ApplyInterest(); err != nil {
        t.Fatalf("apply interest on empty account: %v", err)
    }
    if got := len(a.Transactions()); got != 0 {
        t.Fatalf("transactions = %d, want 0", got)
    }
}

func TestBalancePanicsOnMixedCurrency(t *testing.T) {
    foreign, err := money.NewAmountFromMinorUnits("GBP", 100)
    if err != nil {
        t.Fatalf("build amount: %v", err)
    }
    txs := []Transaction{
        {ID: uuid.New(), Date: day(2024, time.March, 1), Amount: NewAmount(10_00)},
        {ID: uuid.New(), Date: day(2024, time.March, 2), Amount: foreign},
    }
    a, err := RestoreAccount(KindChecking, 1, "", txs)
    if err != nil {
        t.Fatalf("restore: %v", err)
    }
    defer func() {
        if recover() == nil {
            t.Fatalf("Balance did not panic on mixed currencies")
        }
    }()
    a.Balance()
}

func TestSummaryFormat(t *testing.T) {
    a := NewAccount(KindSavings, 1)
    mustPost(t, a, 1234_56, day(2024, time.March, 1))
    want := "Savings#000000001,\tbalance: $1,234.56"
    if got := a.Summary(); got != want {
        t.Fatalf("summary = %q, want %q", got, want)
    }
}

func TestFormatAmountNegative(t *testing.T) {
    if got := FormatAmount(NewAmount(-575)); got != "$-5.75" {
        t.Fatalf("FormatAmount(-575) = %q", got)
    }
    if got := FormatAmount(NewAmount(0)); got != "$0.00" {
        t.Fatalf("FormatAmount(0) = %q", got)
    }
    if got := FormatAmount(NewAmount(1_000_000_00)); got != "$1,000,000.00" {
        t.Fatalf("FormatAmount(100000000) = %q", got)
    }
}
