// cmd/catalogservice/main.go
package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"google.golang.org/grpc"

	httpAPI "catalog-service/internal/api"
	"catalog-service/internal/config"
	"catalog-service/internal/db"
	grpcServer "catalog-service/internal/grpc"
	"catalog-service/internal/notify"
	"catalog-service/internal/obs"
	"catalog-service/internal/service"
	"catalog-service/internal/store"
	"catalog-service/pkg/auth"
)

const serviceName = "catalog-service"

func main() {
	// .env не обязателен
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	logger.Info("Config loaded", slog.String("config", cfg.String()))

	if err := run(cfg, logger); err != nil {
		logger.Error("Catalog service stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := obs.InitTracer(ctx, serviceName, cfg.OTLPEndpoint, logger)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(sctx); err != nil {
			logger.Error("Tracer shutdown failed", slog.String("error", err.Error()))
		}
	}()

	tokenManager, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return err
	}

	// --- База данных и хранилища ---
	database, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("Failed to close DB connection", slog.String("error", err.Error()))
		} else {
			logger.Info("DB connection closed.")
		}
	}()
	userStore := store.NewSQLUserStore(database, logger)
	categoryStore := store.NewSQLCategoryStore(database, logger)
	characterStore := store.NewSQLCharacterStore(database, logger)
	movieStore := store.NewSQLMovieStore(database, logger)

	notifier, err := notify.New(notify.Options{
		Kind: cfg.NotifyKind,
		SMTP: notify.SMTPOptions{
			Host:     cfg.MailHost,
			Port:     cfg.MailPort,
			User:     cfg.MailUser,
			Password: cfg.MailPassword,
			From:     cfg.MailFrom,
		},
		AMQPURL:      cfg.AMQPURL,
		AMQPExchange: cfg.AMQPExchange,
		KafkaBrokers: cfg.KafkaBrokers,
		KafkaTopic:   cfg.KafkaTopic,
	}, logger)
	if err != nil {
		return err
	}
	defer notifier.Close()

	// --- Сервисы ---
	users := service.NewUserService(userStore, logger)
	services := httpAPI.Services{
		Users:      users,
		Categories: service.NewCategoryService(categoryStore, movieStore, logger),
		Characters: service.NewCharacterService(characterStore, movieStore, logger),
		Movies:     service.NewMovieService(movieStore, categoryStore, characterStore, logger),
		Auth: service.NewAuthService(users, userStore, tokenManager, notifier, service.WelcomeOptions{
			IncludeAdminToken: cfg.NotifyIncludeAdminToken,
			AdminTokenTTL:     cfg.NotifyAdminTokenTTL,
		}, logger),
	}

	if cfg.AdminEmail != "" {
		if _, _, err := users.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return err
		}
	} else {
		logger.Warn("USER_ADMIN_EMAIL not set, admin account is not seeded")
	}

	// --- gRPC сервер ---
	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return err
	}
	grpcSrv := grpc.NewServer()
	grpcServer.RegisterLookupServer(grpcSrv, grpcServer.NewServer(services.Movies, users, logger))
	go func() {
		logger.Info("Catalog gRPC Service starting", slog.String("port", cfg.GRPCPort))
		if err := grpcSrv.Serve(lis); err != nil {
			logger.Error("Catalog gRPC Service Serve() failed", slog.String("error", err.Error()))
		}
	}()

	// --- HTTP сервер ---
	handler := httpAPI.NewHandler(services, tokenManager, validator.New(), logger)
	router := httpAPI.NewRouter(handler, httpAPI.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateBurst))
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Catalog HTTP Service starting", slog.String("port", cfg.Port))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Catalog Service shutting down...")
	case err := <-serveErr:
		logger.Error("Catalog HTTP Service ListenAndServe() failed", slog.String("error", err.Error()))
	}

	ctxHTTP, cancelHTTP := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelHTTP()
	if err := httpSrv.Shutdown(ctxHTTP); err != nil {
		logger.Error("Catalog HTTP Server Shutdown Failed", slog.String("error", err.Error()))
	} else {
		logger.Info("Catalog HTTP Server gracefully stopped.")
	}
	grpcSrv.GracefulStop()
	logger.Info("Catalog gRPC Service gracefully stopped.")
	return nil
}
