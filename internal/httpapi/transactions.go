// Transaction handlers: post, list, interest and fees.
package httpapi

import (
    "net/http"

    "github.com/tdunne/bankbook/internal/bank"
)

func (s *Server) postTransaction(w http.ResponseWriter, r *http.Request) {
    number, err := accountNumber(r)
    if err != nil {
        badRequest(w, "invalid account number")
        return
    }
    v := r.Context().Value(ctxKeyPostTransaction)
    req, ok := v.(validPostTransaction)
    if !ok {
        writeErr(w, http.StatusInternalServerError, "validated request missing", "")
        return
    }
    t, err := s.registry().Post(number, bank.NewAmount(req.AmountMinor), req.Date)
    if err != nil {
        domainErr(w, err)
        return
    }
    toJSON(w, http.StatusCreated, toTransactionResponse(t))
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
    number, err := accountNumber(r)
    if err != nil {
        badRequest(w, "invalid account number")
        return
    }
    acc, err := s.registry().Account(number)
    if err != nil {
        domainErr(w, err)
        return
    }
    txs := acc.Transactions()
    out := make([]transactionResponse, 0, len(txs))
    for _, t := range txs {
        out = append(out, toTransactionResponse(t))
    }
    toJSON(w, http.StatusOK, out)
}

func (s *Server) postInterest(w http.ResponseWriter, r *http.Request) {
    number, err := accountNumber(r)
    if err != nil {
        badRequest(w, "invalid account number")
        return
    }
    if err := s.registry().ApplyInterest(number); err != nil {
        domainErr(w, err)
        return
    }
    acc, err := s.registry().Account(number)
    if err != nil {
        domainErr(w, err)
        return
    }
    toJSON(w, http.StatusOK, toAccountResponse(acc))
}
