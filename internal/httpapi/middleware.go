package httpapi

import (
    "context"
    "encoding/json"
    "net/http"
    "time"

    "github.com/tdunne/bankbook/internal/bank"
)

type ctxKey string

const ctxKeyPostAccount ctxKey = "validatedPostAccount"
const ctxKeyPostTransaction ctxKey = "validatedPostTransaction"

// validatePostAccount parses POST /accounts, resolves the kind tag, and
// stores the validated kind in the request context for the handler.
func (s *Server) validatePostAccount() func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            var req postAccountRequest
            dec := json.NewDecoder(r.Body)
            dec.DisallowUnknownFields()
            if err := dec.Decode(&req); err != nil {
                badRequest(w, "invalid JSON: "+err.Error())
                return
            }
            kind, err := bank.ParseKind(req.Kind)
            if err != nil {
                domainErr(w, err)
                return
            }
            ctx := context.WithValue(r.Context(), ctxKeyPostAccount, kind)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}

// validatePostTransaction parses POST /accounts/{number}/transactions.
func (s *Server) validatePostTransaction() func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            var req postTransactionRequest
            dec := json.NewDecoder(r.Body)
            dec.DisallowUnknownFields()
            if err := dec.Decode(&req); err != nil {
                badRequest(w, "invalid JSON: "+err.Error())
                return
            }
            date, err := time.Parse("2006-01-02", req.Date)
            if err != nil {
                badRequest(w, "invalid date, expected YYYY-MM-DD")
                return
            }
            v := validPostTransaction{AmountMinor: req.AmountMinor, Date: date}
            ctx := context.WithValue(r.Context(), ctxKeyPostTransaction, v)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}
