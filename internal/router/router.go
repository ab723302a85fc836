package router

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pantry-api/internal/config"
	"pantry-api/internal/handler"
	"pantry-api/internal/middleware"
	"pantry-api/internal/model"
)

type Handlers struct {
	Auth   *handler.AuthHandler
	User   *handler.UserHandler
	Item   *handler.ItemHandler
	Store  *handler.StoreHandler
	Recipe *handler.RecipeHandler

	// Health reports backing-store readiness; nil means always healthy.
	Health func(ctx context.Context) error
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if h.Health != nil {
			if err := h.Health(req.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("degraded"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", h.Auth.Register)
			auth.Post("/login", h.Auth.Login)
			auth.With(authMiddleware.RequireAuth).Post("/logout", h.Auth.Logout)
			auth.With(authMiddleware.RequireAuth).Get("/profile/{email}", h.Auth.GetProfile)
			auth.With(authMiddleware.RequireAuth).Put("/profile/{email}", h.Auth.UpdateProfile)
			auth.With(authMiddleware.RequireAuth).Delete("/profile/{email}", h.Auth.DeleteProfile)
		})

		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles(model.RoleAdmin)).Get("/users", h.User.List)

		api.Route("/items", func(items chi.Router) {
			items.Use(authMiddleware.RequireAuth)
			items.Get("/", h.Item.List)
			items.Post("/", h.Item.Create)
			items.Get("/{id}", h.Item.Get)
			items.Put("/{id}", h.Item.Update)
			items.Delete("/{id}", h.Item.Delete)
		})

		api.Route("/stores", func(stores chi.Router) {
			stores.Use(authMiddleware.RequireAuth)
			stores.Get("/", h.Store.List)
			stores.Post("/", h.Store.Create)
			stores.Get("/{id}", h.Store.Get)
			stores.Put("/{id}", h.Store.Update)
			stores.Delete("/{id}", h.Store.Delete)
		})

		api.Route("/recipes", func(recipes chi.Router) {
			recipes.Use(authMiddleware.RequireAuth)
			recipes.Get("/", h.Recipe.List)
			recipes.Post("/", h.Recipe.Create)
			recipes.Get("/{id}", h.Recipe.Get)
			recipes.Put("/{id}", h.Recipe.Update)
			recipes.Delete("/{id}", h.Recipe.Delete)
		})
	})

	return r
}
