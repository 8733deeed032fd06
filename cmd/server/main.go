package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/sahilk27/wattwise/internal/config"
	"github.com/sahilk27/wattwise/internal/repository/mongodb"
	"github.com/sahilk27/wattwise/internal/repository/sheets"
	"github.com/sahilk27/wattwise/internal/scheduler"
	"github.com/sahilk27/wattwise/internal/server/handlers"
	"github.com/sahilk27/wattwise/internal/server/router"
	authsvc "github.com/sahilk27/wattwise/internal/service/auth"
	exportsvc "github.com/sahilk27/wattwise/internal/service/export"
	ledgersvc "github.com/sahilk27/wattwise/internal/service/ledger"
	"github.com/sahilk27/wattwise/pkg/clients/webhook"
	"github.com/sahilk27/wattwise/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	loc, err := time.LoadLocation(cfg.Ledger.Timezone)
	if err != nil {
		baseLogger.Fatal("invalid timezone", zap.String("timezone", cfg.Ledger.Timezone), zap.Error(err))
	}

	mongoClient, err := mongodb.Connect(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb client", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	consumptionRepo := mongodb.NewConsumptionRepository(mongoClient, baseLogger.Named("repo.consumption"))
	userRepo := mongodb.NewUserRepository(mongoClient, baseLogger.Named("repo.users"))

	ledgerService := ledgersvc.NewService(consumptionRepo, loc, baseLogger.Named("svc.ledger"))
	authService := authsvc.NewService(userRepo, []byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL, baseLogger.Named("svc.auth"))

	var sheetExporter sheets.Exporter
	if cfg.SheetsEnabled() {
		sheetExporter, err = sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		baseLogger.Info("spreadsheet export enabled")
	} else {
		baseLogger.Warn("spreadsheet export disabled, sheets credentials missing")
	}
	exportService := exportsvc.NewService(sheetExporter, baseLogger.Named("svc.export"))

	engine := router.New(router.Handlers{
		Auth:        handlers.NewAuthHandler(authService, baseLogger.Named("handlers.auth")),
		Consumption: handlers.NewConsumptionHandler(ledgerService, baseLogger.Named("handlers.consumption")),
		Profile:     handlers.NewProfileHandler(authService, baseLogger.Named("handlers.profile")),
		Export:      handlers.NewExportHandler(ledgerService, exportService, baseLogger.Named("handlers.export")),
	}, []byte(cfg.Auth.JWTSecret), baseLogger.Named("router"))

	if cfg.Digest.WebhookURL != "" {
		digestClient := webhook.NewClient(cfg.Digest.WebhookURL)
		sched := scheduler.NewScheduler(cfg.Digest, ledgerService, userRepo, digestClient, baseLogger.Named("scheduler"))
		sched.Start()
		defer sched.Stop()
	} else {
		baseLogger.Info("digest webhook not configured, scheduler disabled")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
