// Account handlers: open, list, fetch by number.
package httpapi

import (
    "net/http"
    "strconv"

    chi "github.com/go-chi/chi/v5"

    "github.com/tdunne/bankbook/internal/bank"
)

func (s *Server) postAccount(w http.ResponseWriter, r *http.Request) {
    v := r.Context().Value(ctxKeyPostAccount)
    kind, ok := v.(bank.Kind)
    if !ok {
        writeErr(w, http.StatusInternalServerError, "validated request missing", "")
        return
    }
    acc, err := s.registry().Open(kind)
    if err != nil {
        domainErr(w, err)
        return
    }
    toJSON(w, http.StatusCreated, toAccountResponse(acc))
}

func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
    accs := s.registry().Accounts()
    out := make([]accountResponse, 0, len(accs))
    for _, a := range accs {
        out = append(out, toAccountResponse(a))
    }
    toJSON(w, http.StatusOK, out)
}

// getAccount handles GET /v1/accounts/{number}
func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
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
    toJSON(w, http.StatusOK, toAccountResponse(acc))
}

func accountNumber(r *http.Request) (int, error) {
    return strconv.Atoi(chi.URLParam(r, "number"))
}
