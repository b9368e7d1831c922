package handlers

import (
	"net/http"

	"quay/internal/domain"
	"quay/internal/httpserver/deps"
	"quay/internal/httpserver/httpx"
	"quay/internal/httpserver/mw"
	"quay/internal/logger"
)

// requireVerifiedSession enforces that the session middleware validated this
// request. Mutating handlers call it first so that authorization is carried
// by the request context, not by the route prefix they happen to be mounted
// under.
func requireVerifiedSession(w http.ResponseWriter, r *http.Request) bool {
	if _, ok := mw.VerifiedToken(r.Context()); !ok {
		httpx.Fail(w, "not authenticated")
		return false
	}
	return true
}

// Save handles POST /admin/save: a wholesale replacement of both
// collections, written atomically.
func Save(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireVerifiedSession(w, r) {
			return
		}

		var data domain.Data
		if err := httpx.DecodeJSON(r, &data); err != nil {
			httpx.Fail(w, "server error")
			return
		}

		if err := d.Nav.Save(r.Context(), data); err != nil {
			d.Logger.Error("save failed", logger.Error(err))
			httpx.Fail(w, "operation failed")
			return
		}
		httpx.OK(w)
	}
}
