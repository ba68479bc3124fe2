package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pagemarket/bookstore-backend/api/controllers"
	"github.com/pagemarket/bookstore-backend/api/middleware"
	authsvc "github.com/pagemarket/bookstore-backend/internal/auth"
	"github.com/pagemarket/bookstore-backend/internal/cart"
	"github.com/pagemarket/bookstore-backend/internal/catalog"
	"github.com/pagemarket/bookstore-backend/internal/interactions"
	"github.com/pagemarket/bookstore-backend/internal/users"
	"github.com/pagemarket/bookstore-backend/pkg/logger"
	"github.com/pagemarket/bookstore-backend/pkg/metrics"
)

// Deps bundles everything the router needs. RateLimiter and Metrics are
// optional; tests usually leave them nil.
type Deps struct {
	Logger        *logger.Logger
	Metrics       *metrics.Registry
	Authenticator *middleware.Authenticator
	RateLimiter   *middleware.AuthRateLimiter

	AuthService         *authsvc.Service
	UsersService        *users.Service
	CatalogService      *catalog.Service
	InteractionsService *interactions.Service
	CartService         *cart.Service

	HealthDeps map[string]controllers.Pinger
}

// New assembles the HTTP router.
func New(deps Deps) http.Handler {
	logg := deps.Logger

	authCtl := controllers.NewAuthController(deps.AuthService, logg)
	usersCtl := controllers.NewUsersController(deps.UsersService, logg)
	booksCtl := controllers.NewBooksController(deps.CatalogService, logg)
	sellerBooksCtl := controllers.NewSellerBooksController(deps.CatalogService, logg)
	favouritesCtl := controllers.NewFavouritesController(deps.InteractionsService, logg)
	historyCtl := controllers.NewHistoryController(deps.InteractionsService, logg)
	cartCtl := controllers.NewCartController(deps.CartService, logg)
	healthCtl := controllers.NewHealthController(logg, deps.HealthDeps)

	r := chi.NewRouter()
	r.Use(middleware.RequestID(logg))
	r.Use(middleware.RequestLogger(logg, deps.Metrics))
	r.Use(middleware.Recoverer(logg))
	r.Use(middleware.CORS())

	r.Get("/healthz", healthCtl.Live)
	r.Get("/readyz", healthCtl.Ready)
	if deps.Metrics != nil {
		r.Method("GET", "/metrics", deps.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			signup := http.HandlerFunc(authCtl.Signup)
			login := http.HandlerFunc(authCtl.Login)
			if deps.RateLimiter != nil {
				r.Method("POST", "/signup", deps.RateLimiter.LimitSignup(signup))
				r.Method("POST", "/login", deps.RateLimiter.LimitLogin(login))
			} else {
				r.Post("/signup", signup)
				r.Post("/login", login)
			}
			r.Post("/refresh", authCtl.Refresh)
			r.Post("/logout", authCtl.Logout)
		})

		// Public catalog. Optional auth so signed-in reads land in history.
		r.Group(func(r chi.Router) {
			r.Use(deps.Authenticator.Optional)
			r.Get("/books", booksCtl.List)
			r.Get("/books/{articleNumber}", booksCtl.Get)
		})

		// Authenticated surface.
		r.Group(func(r chi.Router) {
			r.Use(deps.Authenticator.Require)

			r.Get("/profile", usersCtl.Profile)
			r.Patch("/profile", usersCtl.UpdateProfile)

			r.Route("/seller/books", func(r chi.Router) {
				r.Use(middleware.RequireSeller(logg))
				r.Get("/", sellerBooksCtl.List)
				r.Post("/", sellerBooksCtl.Create)
				r.Patch("/{articleNumber}", sellerBooksCtl.Patch)
			})

			r.Route("/favourites", func(r chi.Router) {
				r.Get("/", favouritesCtl.List)
				r.Post("/", favouritesCtl.Add)
				r.Delete("/{bookId}", favouritesCtl.Remove)
			})

			r.Route("/history", func(r chi.Router) {
				r.Get("/", historyCtl.List)
				r.Get("/today", historyCtl.Today)
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartCtl.Get)
				r.Put("/items", cartCtl.SetItem)
				r.Delete("/items", cartCtl.RemoveItem)
				r.Delete("/", cartCtl.Clear)
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireStaff(logg))
				r.Get("/", usersCtl.List)
				r.Post("/", authCtl.AdminCreateUser)
				r.Get("/{userId}", usersCtl.Get)
				r.Patch("/{userId}", usersCtl.Update)
			})
		})
	})

	return r
}
