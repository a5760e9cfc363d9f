package httpapi

import (
    "net/http"
)

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (s *Server) readyz(w http.ResponseWriter, r *http.Request)  { w.WriteHeader(http.StatusOK) }
