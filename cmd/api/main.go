package main

import (
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"

	_ "petsafe-api/docs"
	"petsafe-api/internal/adapters/auth/jwtauth"
	"petsafe-api/internal/adapters/storage/postgres"
	"petsafe-api/internal/config"
	"petsafe-api/internal/platform/logger"
	"petsafe-api/internal/ports/auth"
	"petsafe-api/internal/router"
)

// @title PetSafe API
// @version 1.0
// @description Backend multi-tenant para clínicas veterinarias: registro de mascotas, identidad pública escaneable, agendamientos y documentos.
// @BasePath /
func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	opts := router.Options{Logger: zl}

	var verifier auth.AuthVerifier
	if cfg.JWTSecret != "" {
		verifier = jwtauth.New(cfg.JWTSecret)
	} else {
		zl.Warn("no JWT_SECRET set, running in dev auth mode (X-Debug-Clinic-ID)")
	}
	opts.AuthVerifier = verifier

	if cfg.DBDSN != "" {
		db, err := postgres.Open(cfg.DBDSN)
		if err != nil {
			zl.Fatal("postgres", zap.Error(err))
		}
		defer func() { _ = db.Close() }()
		opts.DB = db
	} else {
		zl.Warn("no DB_DSN set, using in-memory storage")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	zl.Info("starting server", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zl.Fatal("server error", zap.Error(err))
	}
}
