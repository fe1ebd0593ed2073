package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contractai/api/router"
	"contractai/job"
	"contractai/pkg/logger"
	"contractai/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func NewServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

func runServe(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	logger.Init(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	slog.Info("configuration loaded successfully")

	deps, err := buildDeps(ctx, cfg)
	if err != nil {
		return err
	}
	manager := service.NewManager(deps)

	sweeper, err := job.StartCronJob(manager, cfg.Session.SweepSpec, cfg.Session.IdleTTL)
	if err != nil {
		return err
	}
	defer sweeper.Stop()

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router.New(manager),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: cfg.LLM.Timeout + 30*time.Second, // ?wait=true 要等生成结果
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("start server: %w", err)
	case <-quit:
	}
	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	manager.Wait()

	slog.Info("server exited gracefully")
	return nil
}
