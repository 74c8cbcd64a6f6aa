package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/bookhive/bookhive-go/internal/middleware"
)

// NewRouter assembles the full route table. The authenticator runs on
// every request; whether its failures are fatal depends on the path
// (see middleware.Authenticate). Credential endpoints additionally sit
// behind a per-IP rate limit.
func NewRouter(
	authenticator *middleware.Authenticator,
	authHandler *AuthHandler,
	userHandler *UserHandler,
	bookHandler *BookHandler,
	loginRPS float64,
	loginBurst int,
) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Authenticate(authenticator))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/user_mgt", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(loginRPS, loginBurst))
			r.Post("/signup", authHandler.HandleSignup)
			r.Post("/login", authHandler.HandleLogin)
		})
		r.Post("/token/refresh", authHandler.HandleRefresh)

		r.Get("/users", userHandler.HandleList)
		r.Post("/users", userHandler.HandleCreate)
		r.Get("/users/{id:[0-9]+}", userHandler.HandleGet)
		r.Patch("/users/{id:[0-9]+}", userHandler.HandlePatch)
		r.Put("/users/{id:[0-9]+}", userHandler.HandlePut)
		r.Delete("/users/{id:[0-9]+}", userHandler.HandleDelete)
	})

	r.Route("/api/book_mgt", func(r chi.Router) {
		r.Get("/books", bookHandler.HandleList)
		r.Post("/books", bookHandler.HandleCreate)
		r.Get("/books/{id:[0-9]+}", bookHandler.HandleGet)
		r.Patch("/books/{id:[0-9]+}", bookHandler.HandlePatch)
		r.Put("/books/{id:[0-9]+}", bookHandler.HandlePut)
		r.Delete("/books/{id:[0-9]+}", bookHandler.HandleDelete)
	})

	return r
}
