package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"contractai/pkg/logger"
	"contractai/service"
	"contractai/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func NewTUICmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch the interactive terminal UI",
		Long: `Launch the terminal interface for uploading, analyzing and generating contracts.

Controls:
  F1 / F2 / F3 - Upload / Search & Analyze / Generate
  Enter        - Upload / Ask / next field
  Ctrl+S       - Generate contract
  Ctrl+C       - Quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), *configPath)
		},
	}
}

func runTUI(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	// 界面占用终端，日志写文件
	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger.Init(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: logFile})

	deps, err := buildDeps(ctx, cfg)
	if err != nil {
		return err
	}
	sess := service.NewManager(deps).Create(ctx)

	p := tea.NewProgram(tui.NewApp(ctx, sess), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	sess.Wait()
	slog.Info("tui exited")
	return nil
}
