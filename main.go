// main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariebrainware/healthsync-rx/config"
	"github.com/ariebrainware/healthsync-rx/endpoint"
	"github.com/ariebrainware/healthsync-rx/middleware"
	"github.com/ariebrainware/healthsync-rx/model"
	"github.com/ariebrainware/healthsync-rx/routes"
	"github.com/ariebrainware/healthsync-rx/util"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// @title           healthsync-rx API
// @version         1.0
// @description     Appointment requests, prescriptions and patient case numbers for admins, doctors and patients.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session token as "Bearer <token>"
func main() {
	if err := run(); err != nil {
		util.Log.WithError(err).Error("server exited")
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadConfig()
	util.InitLogger(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	if cfg.JWTSecret == "" {
		return errors.New("JWTSECRET must be set")
	}
	util.SetJWTSecret(cfg.JWTSecret)

	if err := util.InitSentry(cfg.SentryDSN, cfg.AppEnv, cfg.AppName); err != nil {
		util.Log.WithError(err).Warn("sentry disabled")
	}
	defer util.FlushSentry(2 * time.Second)

	if err := util.InitGeoIP(cfg.GeoIPDBPath); err != nil {
		util.Log.WithError(err).Warn("geoip lookups disabled")
	}
	defer util.CloseGeoIP()

	db, err := config.ConnectDatabase(cfg, util.NewGormLogger())
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	if err := model.Migrate(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if err := model.SeedAdmin(db, model.SeedAdminParams{Email: cfg.SeedAdminEmail, Password: cfg.SeedAdminPass}); err != nil {
		return fmt.Errorf("seeding admin failed: %w", err)
	}
	util.SetSecurityLoggerDB(db)

	if _, err := config.ConnectRedis(); err != nil {
		util.Log.WithError(err).Warn("redis unavailable, sessions fall back to the database and rate limiting is off")
	}
	defer config.CloseRedis()

	var reports model.ReportStore = model.NewGormReportStore(db)
	mongoClient, mongoDB, err := config.ConnectMongo(context.Background(), cfg)
	if err != nil {
		util.Log.WithError(err).Warn("mongodb unavailable, reports are kept in the relational database")
	} else if mongoDB != nil {
		reports = model.NewMongoReportStore(mongoDB)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mongoClient.Disconnect(ctx); err != nil {
				util.Log.WithError(err).Warn("mongodb disconnect failed")
			}
		}()
	}

	catalog, err := util.LoadMedicineCatalog(cfg.MedicinesPath)
	if err != nil {
		return fmt.Errorf("failed to load medicine catalog: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if err := middleware.RegisterHTTPMetrics(registry); err != nil {
		return fmt.Errorf("failed to register http metrics: %w", err)
	}
	if err := util.RegisterDomainMetrics(registry); err != nil {
		return fmt.Errorf("failed to register domain metrics: %w", err)
	}

	router := routes.NewRouter(routes.Deps{
		AppName:        cfg.AppName,
		DB:             db,
		DBTimeout:      cfg.DBTimeout,
		Reports:        reports,
		MaxReportBytes: cfg.MaxReportBytes,
		Catalog:        catalog,
		Mailer: util.NewMailer(util.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.SMTPFrom,
		}),
		ClinicName: cfg.AppName,
		Auth: endpoint.AuthOptions{
			SessionTTL:       cfg.SessionTTL,
			AllowAdminSignup: cfg.AllowAdminSignup,
			SecureCookie:     cfg.GinMode == gin.ReleaseMode,
		},
		CORSOrigins: cfg.CORSOrigins,
		Gatherer:    registry,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	return serve(srv, quit, 10*time.Second)
}

// serve runs srv until it fails or quit fires, then shuts it down within grace.
func serve(srv *http.Server, quit <-chan os.Signal, grace time.Duration) error {
	serveErr := make(chan error, 1)
	go func() {
		util.Log.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("serve: %w", err)
	case <-quit:
	}

	util.Log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
