package handlers

import (
	"net/http"

	"quay/internal/httpserver/deps"
	"quay/internal/httpserver/httpx"
)

// Data returns the stored categories and sites. Reads are fail-soft: the
// nav service collapses any storage or decode problem into empty
// collections, so this endpoint always answers 200.
func Data(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		httpx.WriteJSON(w, d.Nav.Get(r.Context()))
	}
}
