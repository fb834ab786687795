package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"example.com/opscost-dashboard/backend/internal/auth"
	"example.com/opscost-dashboard/backend/internal/config"
	"example.com/opscost-dashboard/backend/internal/handlers"
	"example.com/opscost-dashboard/backend/internal/ledger"
	"example.com/opscost-dashboard/backend/internal/localstore"
	"example.com/opscost-dashboard/backend/internal/notifications"
	"example.com/opscost-dashboard/backend/internal/repository"
)

// New собирает HTTP-сервер Echo: леджеры из локального хранилища,
// репозитории проектов из PostgreSQL, обработчики и роуты.
func New(cfg config.Config, logger *slog.Logger, db *pgxpool.Pool, store *localstore.Store) (*echo.Echo, error) {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))

	costLedger, err := ledger.NewCostLedger(store)
	if err != nil {
		return nil, fmt.Errorf("init cost ledger: %w", err)
	}

	subscriptionLedger, err := ledger.NewSubscriptionLedger(store)
	if err != nil {
		return nil, fmt.Errorf("init subscription ledger: %w", err)
	}

	// Производная категория хранит ноль до первой мутации, выравниваем при старте.
	if err := costLedger.RecomputeDerived(subscriptionLedger.TotalMonthly()); err != nil {
		return nil, fmt.Errorf("sync subscription costs: %w", err)
	}

	employeeLedger, err := ledger.NewEmployeeLedger(store)
	if err != nil {
		return nil, fmt.Errorf("init employee ledger: %w", err)
	}

	obligationLedger, err := ledger.NewObligationLedger(store)
	if err != nil {
		return nil, fmt.Errorf("init obligation ledger: %w", err)
	}

	supplyLedger, err := ledger.NewSupplyLedger(store)
	if err != nil {
		return nil, fmt.Errorf("init supply ledger: %w", err)
	}

	insuranceLedger, err := ledger.NewInsuranceLedger(store)
	if err != nil {
		return nil, fmt.Errorf("init insurance ledger: %w", err)
	}

	rentLedger, err := ledger.NewRentLedger(store)
	if err != nil {
		return nil, fmt.Errorf("init rent ledger: %w", err)
	}

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	notificationHub := notifications.NewHub()

	authHandler := handlers.NewAuthHandler(userRepo, tokenRepo, tokenManager)
	costsHandler := handlers.NewCostsHandler(costLedger, notificationHub)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionLedger, costLedger, notificationHub)
	employeeHandler := handlers.NewEmployeeHandler(employeeLedger, costLedger, notificationHub)
	obligationHandler := handlers.NewObligationHandler(obligationLedger, costLedger, notificationHub)
	supplyHandler := handlers.NewSupplyHandler(supplyLedger, costLedger, notificationHub)
	insuranceHandler := handlers.NewInsuranceHandler(insuranceLedger, costLedger, notificationHub)
	rentHandler := handlers.NewRentHandler(rentLedger, costLedger, notificationHub)
	projectHandler := handlers.NewProjectHandler(projectRepo, costLedger, notificationHub)
	pricingHandler := handlers.NewPricingHandler(projectRepo, costLedger)
	notificationHandler := handlers.NewNotificationHandler(notificationHub)

	registerRoutes(
		e,
		authHandler,
		costsHandler,
		subscriptionHandler,
		employeeHandler,
		obligationHandler,
		supplyHandler,
		insuranceHandler,
		rentHandler,
		projectHandler,
		pricingHandler,
		notificationHandler,
		auth.JWTMiddleware(tokenManager),
		authRateLimiter(cfg.Auth),
	)

	return e, nil
}

// NewHTTPServer создает net/http сервер с заданными таймаутами.
func NewHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote_ip", v.RemoteIP),
				slog.Duration("latency", v.Latency),
			}

			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}

			msg := "request completed"
			if v.Status >= http.StatusInternalServerError {
				logger.LogAttrs(c.Request().Context(), slog.LevelError, msg, attrs...)
				return nil
			}

			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, msg, attrs...)
			return nil
		},
	})
}

func authRateLimiter(cfg config.AuthConfig) echo.MiddlewareFunc {
	limit := rate.Limit(float64(cfg.RateLimitPerMinute) / 60.0)
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      limit,
		Burst:     cfg.RateLimitBurst,
		ExpiresIn: time.Minute,
	})

	return middleware.RateLimiter(store)
}
