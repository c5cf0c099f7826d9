package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/sbilibin2017/echo/internal/handlers"
	"github.com/sbilibin2017/echo/internal/middlewares"
	"github.com/sbilibin2017/echo/internal/services"
)

type routerDeps struct {
	cfg     config
	tokener middlewares.Tokener
	auth    *services.AuthService
	users   *services.UserService
	posts   *services.PostService
}

// newRouter mounts every route on a chi router.
func newRouter(d routerDeps) http.Handler {
	cookie := handlers.CookieConfig{
		Secure: d.cfg.production(),
		MaxAge: d.cfg.RefreshTokenExp,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)
	r.Use(chimiddleware.Timeout(d.cfg.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public routes
	r.Get("/", handlers.NewRootHandler())
	r.Post("/signup", handlers.NewSignupHandler(d.auth))
	r.Post("/login", handlers.NewLoginHandler(d.auth, cookie))
	r.Post("/refresh", handlers.NewRefreshHandler(d.auth, cookie))
	r.Post("/logout", handlers.NewLogoutHandler(d.auth, cookie))
	r.Get("/post", handlers.NewListPostsHandler(d.posts))

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(d.tokener))

		r.Get("/protected", handlers.NewProtectedHandler())

		r.Get("/profile", handlers.NewGetProfileHandler(d.users))
		r.Put("/profile", handlers.NewUpdateProfileHandler(d.users))
		r.Delete("/profile", handlers.NewDeleteProfileHandler(d.users))

		r.Put("/post", handlers.NewPutPostHandler(d.posts))
		r.Get("/post/mine", handlers.NewListMyPostsHandler(d.posts))
		r.Delete("/post/{id}", handlers.NewDeletePostHandler(d.posts))
		r.Delete("/post", handlers.NewDeleteAllPostsHandler(d.posts))

		if !d.cfg.production() {
			r.Get("/debug/raw-profile", handlers.NewRawProfileHandler(d.users))
		}
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", d.cfg.AppHost, d.cfg.AppPort)),
	))

	return r
}
