package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/surangaprinters/printshop-backend/api/controllers"
	quotecontrollers "github.com/surangaprinters/printshop-backend/api/controllers/quotes"
	"github.com/surangaprinters/printshop-backend/api/middleware"
	internalauth "github.com/surangaprinters/printshop-backend/internal/auth"
	"github.com/surangaprinters/printshop-backend/internal/catalog"
	"github.com/surangaprinters/printshop-backend/internal/deliveryareas"
	"github.com/surangaprinters/printshop-backend/internal/portfolio"
	"github.com/surangaprinters/printshop-backend/internal/quotes"
	"github.com/surangaprinters/printshop-backend/internal/reviews"
	"github.com/surangaprinters/printshop-backend/internal/settings"
	"github.com/surangaprinters/printshop-backend/pkg/auth/session"
	"github.com/surangaprinters/printshop-backend/pkg/config"
	"github.com/surangaprinters/printshop-backend/pkg/db"
	"github.com/surangaprinters/printshop-backend/pkg/logger"
	"github.com/surangaprinters/printshop-backend/pkg/redis"
	"github.com/surangaprinters/printshop-backend/pkg/storage/cloudinary"
)

// Services bundles the domain services wired into the router.
type Services struct {
	Auth          internalauth.Service
	Quotes        quotes.Service
	Catalog       catalog.Service
	Portfolio     portfolio.Service
	Reviews       reviews.Service
	DeliveryAreas deliveryareas.Service
	Settings      settings.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	storageP cloudinary.Pinger,
	sessions session.AccessSessionChecker,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.LoginLimit.Window,
		cfg.LoginLimit.IPLimit,
		cfg.LoginLimit.EmailLimit,
	)
	intakePolicy := middleware.NewAuthRateLimitPolicy(
		"intake",
		cfg.IntakeLimit.Window,
		cfg.IntakeLimit.IPLimit,
		0,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient, storageP))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())

		r.With(middleware.IntakeRateLimit(intakePolicy, redisClient, logg)).
			Post("/quotes", quotecontrollers.Submit(svcs.Quotes, cfg.Upload, logg))

		r.Get("/services", controllers.PublicServices(svcs.Catalog, logg))
		r.Get("/portfolio", controllers.PublicPortfolio(svcs.Portfolio, logg))
		r.Get("/delivery-areas", controllers.PublicDeliveryAreas(svcs.DeliveryAreas, logg))
		r.Get("/settings", controllers.PublicSettings(svcs.Settings, logg))

		r.Get("/reviews", controllers.PublicReviews(svcs.Reviews, logg))
		r.With(middleware.IntakeRateLimit(intakePolicy, redisClient, logg)).
			Post("/reviews", controllers.SubmitReview(svcs.Reviews, logg))

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).
				Post("/login", controllers.AdminLogin(svcs.Auth, logg))
			r.Post("/logout", controllers.AdminLogout(svcs.Auth, cfg.JWT, logg))
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.RequireRole("admin", logg))

		r.Get("/ping", controllers.AdminPing())
		r.Get("/auth/me", controllers.AdminMe(svcs.Auth, logg))

		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", quotecontrollers.List(svcs.Quotes, logg))
			r.Get("/{quoteId}", quotecontrollers.Detail(svcs.Quotes, logg))
			r.Patch("/{quoteId}", quotecontrollers.Update(svcs.Quotes, logg))
		})

		r.Route("/services", func(r chi.Router) {
			r.Get("/", controllers.AdminServices(svcs.Catalog, logg))
			r.Post("/", controllers.AdminCreateService(svcs.Catalog, cfg.Upload, logg))
			r.Patch("/{serviceId}", controllers.AdminUpdateService(svcs.Catalog, cfg.Upload, logg))
			r.Delete("/{serviceId}", controllers.AdminDeleteService(svcs.Catalog, logg))
		})

		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/", controllers.AdminPortfolio(svcs.Portfolio, logg))
			r.Post("/", controllers.AdminCreatePortfolioItem(svcs.Portfolio, cfg.Upload, logg))
			r.Patch("/{itemId}", controllers.AdminUpdatePortfolioItem(svcs.Portfolio, cfg.Upload, logg))
			r.Delete("/{itemId}", controllers.AdminDeletePortfolioItem(svcs.Portfolio, logg))
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", controllers.AdminReviews(svcs.Reviews, logg))
			r.Patch("/{reviewId}", controllers.AdminModerateReview(svcs.Reviews, logg))
			r.Delete("/{reviewId}", controllers.AdminDeleteReview(svcs.Reviews, logg))
		})

		r.Route("/delivery-areas", func(r chi.Router) {
			r.Get("/", controllers.AdminDeliveryAreas(svcs.DeliveryAreas, logg))
			r.Post("/", controllers.AdminCreateDeliveryArea(svcs.DeliveryAreas, logg))
			r.Patch("/{areaId}", controllers.AdminUpdateDeliveryArea(svcs.DeliveryAreas, logg))
			r.Delete("/{areaId}", controllers.AdminDeleteDeliveryArea(svcs.DeliveryAreas, logg))
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", controllers.PublicSettings(svcs.Settings, logg))
			r.Put("/", controllers.AdminUpdateSettings(svcs.Settings, logg))
		})
	})

	return r
}
