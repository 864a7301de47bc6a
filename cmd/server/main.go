package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"schemaforge/internal/api"
	"schemaforge/internal/config"
	"schemaforge/internal/logging"
	"schemaforge/internal/templates"
)

func main() {
	fs := pflag.NewFlagSet("server", pflag.ExitOnError)
	config.RegisterFlags(fs)
	config.RegisterServerFlags(fs)
	_ = fs.Parse(os.Args[1:])

	// defaults -> файл -> ENV -> флаги
	cfg, err := config.Load("", fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Logger.Level, cfg.Logger.Format)
	defer func() { _ = log.Sync() }()

	catalog, err := templates.Default()
	if err != nil {
		log.Fatal("load templates", zap.Error(err))
	}
	log.Info("templates loaded", zap.Int("count", len(catalog)))

	gin.SetMode(gin.ReleaseMode)
	svc := api.NewService(cfg.GenerateOptions(), catalog, log)
	handler := api.NewHandler(svc, api.RouterConfig{
		CORSOrigins:    cfg.CORSOrigins(),
		RateLimitRPS:   cfg.Gateway.RateLimitRPS,
		RateLimitBurst: cfg.Gateway.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		log.Info("http server listening",
			zap.String("addr", srv.Addr),
			zap.String("family", string(cfg.GenerateOptions().Family)),
			zap.Bool("smart_defaults", cfg.Generate.SmartDefaults),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		log.Fatal("server error", zap.Error(err))
	case sig := <-sigChan:
		log.Info("graceful shutdown", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
		return
	}
	log.Info("server stopped")
}
