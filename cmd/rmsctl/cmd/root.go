package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/cmd/auth"
	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/cmd/bookings"
	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/cmd/resources"
	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/cmd/servicer"
	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/cmd/ui"
	credentials "github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/auth"
	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/client"
	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/config"
	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/output"
	"github.com/Syam115/Resource-Management-System/pkg/nav"
	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

var configFile string

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rmsctl",
		Short: "Resource Management System client",
		Long: `rmsctl is the command-line client for the Resource Management System.
Users browse resources and request bookings; servicers manage categories and
resources and approve or reject booking requests. Run 'rmsctl ui' for the
interactive terminal interface.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file (default $XDG_CONFIG_HOME/rmsctl/config.yaml)")
	flags.String("server", config.DefaultServerURL, "Backend API root URL (env RMS_SERVER_URL)")
	flags.String("session-file", "", "Session file (default $XDG_CONFIG_HOME/rmsctl/session.json, env RMS_SESSION_FILE)")
	flags.Duration("timeout", sdk.DefaultTimeout, "Per-request timeout (env RMS_TIMEOUT)")
	flags.Bool("debug", false, "Log requests and diagnostics to stderr (env RMS_DEBUG)")
	flags.StringP("output", "o", string(output.FormatTable), "Output format: table, json or yaml (env RMS_OUTPUT)")
	flags.Bool("non-interactive", false, "Disable interactive prompts (env RMS_NON_INTERACTIVE=1)")

	root.AddCommand(auth.AuthCmd)
	root.AddCommand(resources.ResourcesCmd)
	root.AddCommand(bookings.BookingsCmd)
	root.AddCommand(servicer.ServicerCmd)
	root.AddCommand(ui.UICmd)
	return root
}

// setup resolves configuration, rehydrates the session and applies the
// route guard for the command about to run.
func setup(cmd *cobra.Command, args []string) error {
	settings, err := config.Load(cmd.Flags(), configFile)
	if err != nil {
		return err
	}
	cfg := newGlobalConfig(settings)
	cfg.Logger.Debug("configuration loaded",
		"server", settings.ServerURL,
		"config_file", settings.ConfigFile,
		"timeout", settings.Timeout)

	cmd.SetContext(config.InjectConfig(cmd.Context(), cfg))
	return checkRoute(cmd, cfg)
}

func newGlobalConfig(settings config.Settings) *config.GlobalConfig {
	logger := config.NewLogger(settings.Debug)
	store := sdk.NewSessionStore(
		credentials.NewFileStore(settings.SessionFile),
		sdk.WithSessionLogger(logger),
	)
	store.Load()

	timeout := settings.RequestTimeout()
	anonymous := sdk.NewClient(settings.ServerURL, sdk.WithTimeout(timeout), sdk.WithLogger(logger))
	gateway := sdk.NewGateway(anonymous, store, logger)

	return &config.GlobalConfig{
		Settings: settings,
		Logger:   logger,
		Session:  store,
		Gateway:  gateway,
		Router:   nav.NewRouter(store, nil),
		Clients:  client.NewProvider(settings.ServerURL, timeout, gateway, logger),
		Printer:  output.NewPrinter(settings.Output),
	}
}

// checkRoute evaluates the guard for commands annotated with a route.
func checkRoute(cmd *cobra.Command, cfg *config.GlobalConfig) error {
	path, ok := cmd.Annotations[config.RouteAnnotation]
	if !ok {
		return nil
	}

	decision := cfg.Router.Decide(path)
	if decision.Outcome == nav.Render {
		return nil
	}
	cfg.Logger.Debug("route guard redirected", "command", cmd.CommandPath(), "route", path, "target", decision.Target)

	switch decision.Reason {
	case nav.ReasonUnauthenticated:
		return fmt.Errorf("%s: not logged in; run 'rmsctl auth login'", cmd.CommandPath())
	case nav.ReasonWrongRole:
		route, _ := cfg.Router.Lookup(path)
		role := cfg.Session.Current().Identity.Role
		return fmt.Errorf("%s requires a %s account (signed in as %s); try '%s'",
			cmd.CommandPath(), route.Requirement, role, config.HomeCommand(role))
	default:
		return fmt.Errorf("%s: route %s is not available", cmd.CommandPath(), path)
	}
}

// describe renders err for the terminal. Errors the SDK knows about get
// their user-facing message; anything else is printed as is.
func describe(err error) string {
	var (
		validationErr *sdk.ValidationError
		authErr       *sdk.AuthError
		authzErr      *sdk.AuthorizationError
		apiErr        *sdk.APIError
		networkErr    *sdk.NetworkError
	)
	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &authErr),
		errors.As(err, &authzErr),
		errors.As(err, &apiErr),
		errors.As(err, &networkErr),
		errors.Is(err, sdk.ErrSessionExpired),
		errors.Is(err, sdk.ErrNotAuthenticated):
		return sdk.UserMessage(err)
	default:
		return err.Error()
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", describe(err))
		os.Exit(1)
	}
}
