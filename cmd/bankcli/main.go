// Command bankcli is a menu-driven shell over a registry backed by the
// local snapshot file. State is loaded at start when a snapshot exists and
// saved on quit.
package main

import (
    "bufio"
    "context"
    "fmt"
    "log/slog"
    "os"
    "strconv"
    "strings"
    "time"

    "github.com/govalues/money"

    "github.com/tdunne/bankbook/internal/bank"
    "github.com/tdunne/bankbook/internal/snapshot"
)

func main() {
    level := slog.LevelWarn
    if strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug") {
        level = slog.LevelDebug
    }
    logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

    path := strings.TrimSpace(os.Getenv("SNAPSHOT_PATH"))
    if path == "" {
        path = snapshot.DefaultPath
    }
    store := snapshot.NewFileStore(path, logger)

    ctx := context.Background()
    reg, err := store.Load(ctx)
    if err != nil {
        // Missing or unreadable snapshot: start fresh, as the shell always has.
        reg = bank.New(logger)
    }

    in := bufio.NewScanner(os.Stdin)
    var selected *bank.Account

    for {
        fmt.Println(strings.Repeat("-", 32))
        if selected == nil {
            fmt.Println("Currently selected account: None")
        } else {
            fmt.Println("Currently selected account: " + selected.Summary())
        }
        fmt.Println("Enter command")
        fmt.Println("1: open account")
        fmt.Println("2: summary")
        fmt.Println("3: select account")
        fmt.Println("4: add transaction")
        fmt.Println("5: list transactions")
        fmt.Println("6: interest and fees")
        fmt.Println("7: quit")

        switch prompt(in, ">") {
        case "1":
            tag := prompt(in, "Type of account? (checking/savings)\n>")
            acc, err := reg.OpenByName(tag)
            if err != nil {
                fmt.Println(err)
                continue
            }
            fmt.Printf("Opened %s\n", acc.Summary())
        case "2":
            for _, acc := range reg.Accounts() {
                fmt.Println(acc.Summary())
            }
        case "3":
            number, err := strconv.Atoi(prompt(in, "Enter account number\n>"))
            if err != nil {
                continue
            }
            if acc, err := reg.Account(number); err == nil {
                selected = acc
            }
        case "4":
            if selected == nil {
                continue
            }
            amount, err := parseAmount(prompt(in, "Amount?\n>"))
            if err != nil {
                fmt.Println(err)
                continue
            }
            date, err := time.Parse("2006-01-02", prompt(in, "Date? (YYYY-MM-DD)\n>"))
            if err != nil {
                fmt.Println("invalid date")
                continue
            }
            if _, err := reg.Post(selected.Number(), amount, date); err != nil {
                fmt.Println(err)
            }
        case "5":
            if selected == nil {
                continue
            }
            for _, t := range selected.Transactions() {
                fmt.Println(t)
            }
        case "6":
            if selected == nil {
                continue
            }
            if err := reg.ApplyInterest(selected.Number()); err != nil {
                fmt.Println(err)
            }
        case "7":
            if _, err := store.Save(ctx, reg); err != nil {
                fmt.Fprintln(os.Stderr, "save failed:", err)
                os.Exit(1)
            }
            return
        }
    }
}

// prompt prints p and returns the next trimmed input line, exiting
// gracefully on EOF.
func prompt(in *bufio.Scanner, p string) string {
    fmt.Print(p)
    if !in.Scan() {
        os.Exit(0)
    }
    return strings.TrimSpace(in.Text())
}

// parseAmount converts a dollar string like "50", "50.25" or "-5.75"
// into a money amount.
func parseAmount(s string) (money.Amount, error) {
    s = strings.TrimSpace(s)
    neg := strings.HasPrefix(s, "-")
    s = strings.TrimPrefix(s, "-")
    dollars, cents := s, ""
    if i := strings.IndexByte(s, '.'); i >= 0 {
        dollars, cents = s[:i], s[i+1:]
    }
    if dollars == "" {
        dollars = "0"
    }
    for len(cents) < 2 {
        cents += "0"
    }
    d, err := strconv.ParseInt(dollars, 10, 64)
    if err != nil {
        return money.Amount{}, fmt.Errorf("invalid amount %q", s)
    }
    c, err := strconv.ParseInt(cents, 10, 64)
    if err != nil || len(cents) > 2 {
        return money.Amount{}, fmt.Errorf("invalid amount %q", s)
    }
    minor := d*100 + c
    if neg {
        minor = -minor
    }
    return bank.NewAmount(minor), nil
}
