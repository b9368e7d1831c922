package handlers

import (
	"net/http"

	"quay/internal/httpserver/deps"
	"quay/internal/httpserver/mw"
)

func writeHTML(w http.ResponseWriter, doc string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(doc))
}

// Home serves the public home page. It is also the fallback for unmatched
// paths and unexpected verbs: the page defaults to home instead of a 404.
func Home(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeHTML(w, d.Renderer.Home())
	}
}

// AdminPage serves the admin page. The session check selects the variant
// (login form vs management console); an unauthenticated request is not an
// error, it just gets the login form. Authenticated loads re-issue the
// session cookie with a fresh Max-Age.
func AdminPage(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := mw.TokenFromRequest(r)
		authenticated := d.Auth.CheckSession(r.Context(), token)

		if authenticated {
			setSessionCookie(w, token, d.CookieMaxAge, d.CookieSecure)
		}
		writeHTML(w, d.Renderer.Admin(authenticated))
	}
}
