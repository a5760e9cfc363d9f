// Snapshot handlers: save the registry, restore it wholesale.
package httpapi

import (
    "errors"
    "net/http"
    "os"

    "github.com/tdunne/bankbook/internal/errs"
)

func (s *Server) saveSnapshot(w http.ResponseWriter, r *http.Request) {
    meta, err := s.store.Save(r.Context(), s.registry())
    if err != nil {
        writeErr(w, http.StatusInternalServerError, "snapshot failed: "+err.Error(), "storage_error")
        return
    }
    reg := s.registry()
    toJSON(w, http.StatusOK, snapshotResponse{
        SnapshotID: meta.ID,
        CreatedAt:  meta.CreatedAt,
        Accounts:   len(reg.Accounts()),
    })
}

func (s *Server) restoreSnapshot(w http.ResponseWriter, r *http.Request) {
    reg, err := s.store.Load(r.Context())
    if err != nil {
        switch {
        case os.IsNotExist(err), errors.Is(err, errs.ErrNotFound):
            notFound(w)
        default:
            domainErr(w, err)
        }
        return
    }
    s.replaceRegistry(reg)
    toJSON(w, http.StatusOK, restoreResponse{
        NextAccountNumber: reg.NextNumber(),
        Accounts:          len(reg.Accounts()),
    })
}
