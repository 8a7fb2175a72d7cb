package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shop-assistant-api/internal/application/accesstoken"
	"github.com/shop-assistant-api/internal/application/customer"
	"github.com/shop-assistant-api/internal/application/feedback"
	"github.com/shop-assistant-api/internal/application/image"
	"github.com/shop-assistant-api/internal/application/order"
	"github.com/shop-assistant-api/internal/application/payment"
	"github.com/shop-assistant-api/internal/application/product"
	"github.com/shop-assistant-api/internal/application/shop"
	"github.com/shop-assistant-api/internal/application/user"
	"github.com/shop-assistant-api/internal/apperror"
	"github.com/shop-assistant-api/internal/config"
	"github.com/shop-assistant-api/internal/infrastructure/dynamo"
	"github.com/shop-assistant-api/internal/infrastructure/google"
	"github.com/shop-assistant-api/internal/infrastructure/imagegen"
	jwtinfra "github.com/shop-assistant-api/internal/infrastructure/jwt"
	s3infra "github.com/shop-assistant-api/internal/infrastructure/s3"
	"github.com/shop-assistant-api/internal/infrastructure/smtp"
	"github.com/shop-assistant-api/internal/infrastructure/sns"
	"github.com/shop-assistant-api/internal/infrastructure/vnpay"
	"github.com/shop-assistant-api/internal/mapper"
	transporthttp "github.com/shop-assistant-api/internal/transport/http"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	logger := newLogger(cfg.AppEnv)
	slog.SetDefault(logger)
	if envErr != nil {
		logger.Info("no .env file found, reading from environment")
	}

	ctx := context.Background()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient, err := dynamo.NewClient(ctx, cfg)
	if err != nil {
		fatal(logger, "dynamodb client", err)
	}
	dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables)
	repos := dynamo.NewRepos(dynamoClient, cfg.DynamoTables)

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		fatal(logger, "jwt provider", err)
	}

	s3Client, err := s3infra.NewClient(ctx, cfg)
	if err != nil {
		fatal(logger, "s3 client", err)
	}
	s3Store := s3infra.NewStore(s3Client, cfg)

	mailer := smtp.NewMailer(cfg)

	// SNS SMS sender is optional; orders are still accepted without it.
	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(ctx, cfg); err == nil {
		smsSender = sender
	} else {
		logger.Warn("sns sender not available", "err", err)
	}

	m := mapper.New()

	deps := &transporthttp.Deps{
		Users: user.NewService(user.ServiceDeps{
			UserRepo:       repos.Users,
			PaymentRepo:    repos.Payments,
			JWTProvider:    jwtProvider,
			Mailer:         mailer,
			GoogleVerifier: google.NewVerifier(cfg.GoogleClientID),
			Mapper:         m,
			PublicBaseURL:  cfg.PublicBaseURL,
			Logger:         logger,
		}),
		Shops: shop.NewService(shop.ServiceDeps{
			ShopRepo: repos.Shops,
			UserRepo: repos.Users,
			Mapper:   m,
		}),
		AccessTokens: accesstoken.NewService(accesstoken.ServiceDeps{
			AccessTokenRepo: repos.AccessTokens,
			ShopRepo:        repos.Shops,
			UserRepo:        repos.Users,
			Mapper:          m,
		}),
		Customers: customer.NewService(customer.ServiceDeps{
			CustomerRepo: repos.Customers,
			ShopRepo:     repos.Shops,
			Mapper:       m,
		}),
		Products: product.NewService(product.ServiceDeps{
			ProductRepo: repos.Products,
			ShopRepo:    repos.Shops,
			ImageStore:  s3Store,
			Mapper:      m,
			Logger:      logger,
		}),
		Orders: order.NewService(order.ServiceDeps{
			OrderRepo:    repos.Orders,
			ProductRepo:  repos.Products,
			CustomerRepo: repos.Customers,
			ShopRepo:     repos.Shops,
			SMSSender:    smsSender,
			Mapper:       m,
			Logger:       logger,
		}),
		Feedbacks: feedback.NewService(feedback.ServiceDeps{
			FeedbackRepo: repos.Feedbacks,
			CustomerRepo: repos.Customers,
			ProductRepo:  repos.Products,
			ShopRepo:     repos.Shops,
			Mapper:       m,
		}),
		Payments: payment.NewService(payment.ServiceDeps{
			PaymentRepo: repos.Payments,
			UserRepo:    repos.Users,
			VNPay:       vnpay.NewClient(cfg.VNPay),
			Mapper:      m,
			Logger:      logger,
		}),
		Images: image.NewService(image.ServiceDeps{
			ImageRequestRepo: repos.ImageRequests,
			ProductRepo:      repos.Products,
			ShopRepo:         repos.Shops,
			UserRepo:         repos.Users,
			Generator:        imagegen.NewClient(cfg.ImageGen),
			ObjectStore:      s3Store,
			Mapper:           m,
			Logger:           logger,
		}),
		Tokens:     jwtProvider,
		Classifier: apperror.NewClassifier(logger, cfg.Locale),
		Mapper:     m,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.AppPort, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fatal(logger, "server error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fatal(logger, "forced shutdown", err)
	}
	logger.Info("server stopped")
}

// newLogger returns a JSON logger in production and a text logger elsewhere.
func newLogger(env string) *slog.Logger {
	if env == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "err", err)
	os.Exit(1)
}
