package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tai160903/viet-coffee-server/internal/auth"
	coffeeHttp "github.com/tai160903/viet-coffee-server/internal/handler/http"
)

// Handlers collects the HTTP handlers mounted by the router.
type Handlers struct {
	Products  *coffeeHttp.ProductHandler
	Auth      *coffeeHttp.AuthHandler
	Checkout  *coffeeHttp.CheckoutHandler
	Orders    *coffeeHttp.OrderHandler
	Dashboard *coffeeHttp.DashboardHandler
}

// NewRouter mounts the storefront routes publicly and the manager routes
// behind the session and role middleware.
func NewRouter(h Handlers, authSvc auth.Service, broadcast *auth.UnauthenticatedBroadcast) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		h.Products.RegisterRoutes(r)
		h.Auth.RegisterRoutes(r)
		h.Checkout.RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(RequireSession(authSvc, broadcast))

			h.Auth.RegisterAuthenticatedRoutes(r)

			r.Route("/manager", func(r chi.Router) {
				r.Use(RequireManager)

				h.Orders.RegisterRoutes(r)
				h.Dashboard.RegisterRoutes(r)
				h.Auth.RegisterManagerRoutes(r)
			})
		})
	})

	return router
}
