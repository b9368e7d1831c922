package handlers

import (
	"errors"
	"net/http"

	"quay/internal/auth"
	"quay/internal/httpserver/deps"
	"quay/internal/httpserver/httpx"
	"quay/internal/logger"
)

// Login handles POST /admin/auth. The password arrives form-encoded. When no
// admin password exists yet, the first submitted value claims the account
// (first-use bootstrap).
func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			httpx.Fail(w, "server error")
			return
		}
		password := r.PostFormValue("password")

		token, err := d.Auth.Login(r.Context(), password)
		if err != nil {
			if errors.Is(err, auth.ErrIncorrectPassword) {
				httpx.Fail(w, "incorrect password")
				return
			}
			d.Logger.Error("login failed", logger.Error(err))
			httpx.Fail(w, "server error")
			return
		}

		setSessionCookie(w, token, d.CookieMaxAge, d.CookieSecure)
		httpx.OK(w)
	}
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ChangePassword handles POST /admin/change-password. The new password
// replaces the stored one; the session token is not re-issued. Strength
// rules live in the admin console (client-side minimum of 6 characters).
func ChangePassword(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireVerifiedSession(w, r) {
			return
		}

		var req changePasswordRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.Fail(w, "server error")
			return
		}

		err := d.Auth.ChangePassword(r.Context(), req.CurrentPassword, req.NewPassword, req.ConfirmPassword)
		switch {
		case errors.Is(err, auth.ErrIncorrectPassword):
			httpx.Fail(w, "current password incorrect")
		case errors.Is(err, auth.ErrPasswordMismatch):
			httpx.Fail(w, "passwords do not match")
		case err != nil:
			d.Logger.Error("password change failed", logger.Error(err))
			httpx.Fail(w, "operation failed")
		default:
			httpx.OK(w)
		}
	}
}

// Logout handles POST /admin/logout. Unconditional and idempotent: it
// deletes the stored token (missing is fine) and clears the cookie.
func Logout(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Auth.Logout(r.Context()); err != nil {
			d.Logger.Error("logout failed", logger.Error(err))
			httpx.Fail(w, "operation failed")
			return
		}
		clearSessionCookie(w, d.CookieSecure)
		httpx.OK(w)
	}
}
