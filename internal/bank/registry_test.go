package bank

import (
    "errors"
    "io"
    "log/slog"
    "sync"
    "testing"
    "time"

    "github.com/tdunne/bankbook/internal/errs"
)

func testLogger() *slog.Logger {
    return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestOpenAssignsSequentialNumbers(t *testing.T) {
    reg := New(testLogger())
    tags := []string{"savings", "Savings", "CHECKING", "checking", "SaViNgS"}
    for i, tag := range tags {
        want := i + 1
        if got := reg.NextNumber(); got != want {
            t.Fatalf("next number before open = %d, want %d", got, want)
        }
        acc, err := reg.OpenByName(tag)
        if err != nil {
            t.Fatalf("open %q: %v", tag, err)
        }
        if acc.Number() != want {
            t.Fatalf("account number = %d, want %d", acc.Number(), want)
        }
        if got := reg.NextNumber(); got != want+1 {
            t.Fatalf("next number after open = %d, want %d", got, want+1)
        }
    }
    accs := reg.Accounts()
    if len(accs) != len(tags) {
        t.Fatalf("accounts = %d, want %d", len(accs), len(tags))
    }
    for i, a := range accs {
        if a.Number() != i+1 {
            t.Fatalf("accounts[%d].Number() = %d, want %d", i, a.Number(), i+1)
        }
    }
}

func TestOpenUnknownKindLeavesStateUnchanged(t *testing.T) {
    reg := New(testLogger())
    for _, tag := range []string{"", "bogus", "saving", "checking account"} {
        _, err := reg.OpenByName(tag)
        if !errors.Is(err, errs.ErrUnknownKind) {
            t.Fatalf("open %q: err = %v, want ErrUnknownKind", tag, err)
        }
    }
    if got := reg.NextNumber(); got != 1 {
        t.Fatalf("next number = %d, want 1", got)
    }
    if got := len(reg.Accounts()); got != 0 {
        t.Fatalf("accounts = %d, want 0", got)
    }
}

func TestOpenCanonicalizesKind(t *testing.T) {
    reg := New(testLogger())
    acc, err := reg.Open(Kind("SAVINGS"))
    if err != nil {
        t.Fatalf("open: %v", err)
    }
    if acc.Kind() != KindSavings {
        t.Fatalf("kind = %q, want %q", acc.Kind(), KindSavings)
    }
    if got := acc.Kind().Title(); got != "Savings" {
        t.Fatalf("title = %q, want %q", got, "Savings")
    }

    day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
    for i := 0; i < 2; i++ {
        if _, err := acc.Post(NewAmount(1000), day); err != nil {
            t.Fatalf("post %d: %v", i+1, err)
        }
    }
    if _, err := acc.Post(NewAmount(1000), day); !errors.Is(err, errs.ErrDailyLimit) {
        t.Fatalf("third same-day post: err = %v, want ErrDailyLimit", err)
    }
}

func TestConcurrentPostsAndReads(t *testing.T) {
    reg := New(testLogger())
    acc, err := reg.Open(KindChecking)
    if err != nil {
        t.Fatalf("open: %v", err)
    }

    const posts = 100
    day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

    var wg sync.WaitGroup
    done := make(chan struct{})

    wg.Add(1)
    go func() {
        defer wg.Done()
        defer close(done)
        for i := 0; i < posts; i++ {
            if _, err := reg.Post(acc.Number(), NewAmount(100), day); err != nil {
                t.Errorf("post %d: %v", i+1, err)
                return
            }
        }
    }()

    wg.Add(1)
    go func() {
        defer wg.Done()
        for {
            select {
            case <-done:
                return
            default:
            }
            acc.Balance()
            acc.Transactions()
            acc.Summary()
            reg.Accounts()
        }
    }()

    wg.Wait()

    if got := len(acc.Transactions()); got != posts {
        t.Fatalf("transactions = %d, want %d", got, posts)
    }
    minor, ok := acc.Balance().MinorUnits()
    if !ok || minor != posts*100 {
        t.Fatalf("balance = %d, want %d", minor, posts*100)
    }
}

func TestAccountLookup(t *testing.T) {
    reg := New(testLogger())
    first, _ := reg.Open(KindSavings)
    second, _ := reg.Open(KindChecking)

    got, err := reg.Account(1)
    if err != nil || got != first {
        t.Fatalf("Account(1) = %v, %v; want first account", got, err)
    }
    got, err = reg.Account(2)
    if err != nil || got != second {
        t.Fatalf("Account(2) = %v, %v; want second account", got, err)
    }
    if _, err := reg.Account(99); !errors.Is(err, errs.ErrNotFound) {
        t.Fatalf("Account(99): err = %v, want ErrNotFound", err)
    }
}

func TestParseKind(t *testing.T) {
    cases := []struct {
        in   string
        want Kind
        ok   bool
    }{
        {"savings", KindSavings, true},
        {" Checking ", KindChecking, true},
        {"SAVINGS", KindSavings, true},
        {"bogus", "", false},
        {"", "", false},
    }
    for _, tc := range cases {
        got, err := ParseKind(tc.in)
        if tc.ok && (err != nil || got != tc.want) {
            t.Fatalf("ParseKind(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
        }
        if !tc.ok && !errors.Is(err, errs.ErrUnknownKind) {
            t.Fatalf("ParseKind(%q): err = %v, want ErrUnknownKind", tc.in, err)
        }
    }
}
