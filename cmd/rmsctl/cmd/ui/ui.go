// Package ui starts the interactive terminal interface.
package ui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/client"
	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/config"
	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/tui"
	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

var (
	startPath string
	logFile   string
)

// UICmd opens the full-screen interface.
var UICmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive terminal interface",
	Long: `Opens a full-screen interface with the same pages as the web client.

Pages are addressed by path (press ':' to jump to one). Pages you are not
allowed to see redirect to the login page or to your role's home page.`,
	Example: `  rmsctl ui
  rmsctl ui --path /servicer/bookings
  rmsctl ui --debug --log-file rmsctl.log`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		if cfg.NonInteractive {
			return fmt.Errorf("the terminal interface cannot run with --non-interactive")
		}

		logger, closeLog, err := tuiLogger(cfg.Debug, logFile)
		if err != nil {
			return err
		}
		defer closeLog()

		// The alternate screen owns stdout and stderr, so the interface
		// gets its own clients whose logs go to the file or nowhere.
		anonymous := sdk.NewClient(cfg.ServerURL, sdk.WithTimeout(cfg.RequestTimeout()), sdk.WithLogger(logger))
		gateway := sdk.NewGateway(anonymous, cfg.Session, logger)

		return tui.Run(cmd.Context(), tui.Options{
			Gateway: gateway,
			Clients: client.NewProvider(cfg.ServerURL, cfg.RequestTimeout(), gateway, logger),
			Router:  cfg.Router,
			Logger:  logger,
			Start:   startPath,
		})
	},
}

func init() {
	UICmd.Flags().StringVar(&startPath, "path", "", "Page to open first (for example /user/my-bookings)")
	UICmd.Flags().StringVar(&logFile, "log-file", "rmsctl-debug.log", "Where debug logs go while the interface is open (with --debug)")
}

// tuiLogger returns a debug logger writing to path when debug is set, and a
// discarding logger otherwise.
func tuiLogger(debug bool, path string) (*slog.Logger, func(), error) {
	if !debug {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := tea.LogToFile(path, "rmsctl")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { _ = f.Close() }, nil
}
