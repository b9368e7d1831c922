package routes

import (
	"github.com/go-chi/chi/v5"

	"quay/internal/httpserver/deps"
	"quay/internal/httpserver/handlers"
)

func init() { Register(registerPages) }

func registerPages(r chi.Router, d deps.Deps) {
	r.Get("/", handlers.Home(d))
	r.Get("/data", handlers.Data(d))
}
