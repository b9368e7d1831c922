package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	"quay/internal/httpserver/deps"
	"quay/internal/httpserver/handlers"
	"quay/internal/httpserver/mw"
)

func init() { Register(registerAdmin) }

func registerAdmin(r chi.Router, d deps.Deps) {
	r.Route("/admin", func(r chi.Router) {
		r.With(mw.RateLimit(mw.RateLimitConfig{
			Burst:        d.LoginBurst,
			RefillPerMin: d.LoginRefillPerMin,
			IdleTTL:      15 * time.Minute,
			TrustProxy:   d.TrustProxy,
		})).Post("/auth", handlers.Login(d))

		gated := r.With(mw.RequireSession(d.Auth, d.Logger))
		gated.Post("/save", handlers.Save(d))
		gated.Post("/change-password", handlers.ChangePassword(d))
		gated.Post("/backup", handlers.Backup(d))

		r.Post("/logout", handlers.Logout(d))

		// Any other method or sub-path under /admin is the admin page; the
		// session check inside only selects the variant.
		r.HandleFunc("/", handlers.AdminPage(d))
		r.HandleFunc("/*", handlers.AdminPage(d))
	})
}
