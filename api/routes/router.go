package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/minjaepark/commerce-backend/api/controllers"
	"github.com/minjaepark/commerce-backend/api/middleware"
	"github.com/minjaepark/commerce-backend/internal/brands"
	"github.com/minjaepark/commerce-backend/internal/likes"
	"github.com/minjaepark/commerce-backend/internal/orders"
	"github.com/minjaepark/commerce-backend/internal/products"
	"github.com/minjaepark/commerce-backend/internal/users"
	"github.com/minjaepark/commerce-backend/pkg/config"
	"github.com/minjaepark/commerce-backend/pkg/db"
	"github.com/minjaepark/commerce-backend/pkg/logger"
	"github.com/minjaepark/commerce-backend/pkg/metrics"
	"github.com/minjaepark/commerce-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	userService users.Service,
	brandService brands.Service,
	productService products.Service,
	likesService likes.Service,
	orderService orders.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginAccountLimit,
	)

	var redisP redis.Pinger
	if redisClient != nil {
		redisP = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	loginLimiter := middleware.AuthRateLimit(loginPolicy, nil, logg)
	if redisClient != nil {
		loginLimiter = middleware.AuthRateLimit(loginPolicy, redisClient, logg)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(loginLimiter).Post("/login", controllers.AuthLogin(userService, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/users", controllers.UserRegister(userService, logg))

		// Public catalog reads.
		r.Get("/brands", controllers.BrandList(brandService, logg))
		r.Get("/brands/{brandId}", controllers.BrandGet(brandService, logg))
		r.Get("/brands/{brandId}/products", controllers.ProductListByBrand(productService, logg))
		r.Get("/products/{productId}", controllers.ProductGet(productService, logg))
		r.Get("/products/{productId}/likes/count", controllers.LikeCount(likesService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Route("/users/me", func(r chi.Router) {
				r.Get("/", controllers.UserMe(userService, logg))
				r.Put("/password", controllers.UserChangePassword(userService, logg))
				r.Get("/likes", controllers.ListLikedProducts(likesService, logg))
			})

			// Catalog management.
			r.Post("/brands", controllers.BrandRegister(brandService, logg))
			r.Patch("/brands/{brandId}", controllers.BrandUpdate(brandService, logg))
			r.Delete("/brands/{brandId}", controllers.BrandDelete(brandService, logg))
			r.Post("/products", controllers.ProductRegister(productService, logg))
			r.Patch("/products/{productId}", controllers.ProductUpdate(productService, logg))
			r.Put("/products/{productId}/stock", controllers.ProductSetStock(productService, logg))
			r.Delete("/products/{productId}", controllers.ProductDelete(productService, logg))

			r.Put("/products/{productId}/likes", controllers.LikeProduct(likesService, logg))
			r.Delete("/products/{productId}/likes", controllers.UnlikeProduct(likesService, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", controllers.PlaceOrder(orderService, logg))
				r.Get("/", controllers.ListMyOrders(orderService, logg))
				r.Get("/{orderId}", controllers.GetOrder(orderService, logg))
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Get("/orders", controllers.AdminListOrders(orderService, logg))
	})

	return r
}
