package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/shop-assistant-api/internal/config"
	"github.com/shop-assistant-api/internal/domain"
	"github.com/shop-assistant-api/internal/transport/http/handler"
	appmiddleware "github.com/shop-assistant-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(appmiddleware.Locale(cfg.Locale))
	r.Use(appmiddleware.Recoverer(deps.Classifier))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.NotFound(appmiddleware.NotFound)
	r.MethodNotAllowed(appmiddleware.MethodNotAllowed)

	// 5 requests/second, burst of 10, for the credential endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	rs := handler.NewResponder(deps.Classifier, deps.Mapper)
	healthH := handler.NewHealthHandler()
	userH := handler.NewUserHandler(deps.Users, rs)
	shopH := handler.NewShopHandler(deps.Shops, deps.AccessTokens, rs)
	customerH := handler.NewCustomerHandler(deps.Customers, rs)
	productH := handler.NewProductHandler(deps.Products, deps.Feedbacks, deps.Images, rs)
	orderH := handler.NewOrderHandler(deps.Orders, rs)
	paymentH := handler.NewPaymentHandler(deps.Payments, rs)

	r.Route("/v1", func(r chi.Router) {
		// Public routes
		r.Get("/health", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/auth/register", userH.Register)
		r.With(sensitiveRL.Limit).Post("/auth/login", userH.Login)
		r.With(sensitiveRL.Limit).Post("/auth/google", userH.GoogleLogin)
		r.Get("/auth/verify", userH.VerifyEmail)
		r.Get("/payments/vnpay/return", paymentH.VNPayReturn)
		r.Get("/payments/vnpay/ipn", paymentH.VNPayIPN)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Auth(deps.Tokens))

			r.Get("/users/me", userH.Me)
			r.Post("/users/me/deduct", userH.DeductBalance)

			r.Post("/shops", shopH.Create)
			r.Get("/shops", shopH.List)
			r.Route("/shops/{shopID}", func(r chi.Router) {
				r.Get("/", shopH.Get)
				r.Put("/", shopH.Update)
				r.Delete("/", shopH.Delete)
				r.Get("/tokens", shopH.ListTokens)
				r.Get("/customers", customerH.ListByShop)
				r.Post("/products", productH.Create)
				r.Get("/products", productH.ListByShop)
				r.Get("/orders", orderH.ListByShop)
			})

			r.Post("/tokens", shopH.CreateToken)
			r.Delete("/tokens/{tokenID}", shopH.RevokeToken)

			r.Post("/customers", customerH.Create)
			r.Get("/customers/{id}", customerH.Get)
			r.Put("/customers/{id}", customerH.Update)
			r.Delete("/customers/{id}", customerH.Delete)

			r.Get("/products/{id}", productH.Get)
			r.Put("/products/{id}", productH.Update)
			r.Delete("/products/{id}", productH.Delete)
			r.Get("/products/{id}/feedbacks", productH.ListFeedbacks)
			r.Get("/products/{id}/images", productH.ListImages)

			r.Post("/orders", orderH.Create)
			r.Get("/orders/{id}", orderH.Get)
			r.Put("/orders/{id}", orderH.Update)
			r.Put("/orders/{id}/status", orderH.UpdateStatus)

			r.Post("/feedbacks", productH.CreateFeedback)
			r.Post("/images/generate", productH.GenerateImage)

			r.Get("/payments", paymentH.List)
			r.Post("/payments/vnpay", paymentH.CreateVNPay)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Post("/payments", paymentH.Credit)
			})
		})
	})

	return r
}
