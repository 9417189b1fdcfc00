package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/client"
	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/output"
	"github.com/Syam115/Resource-Management-System/pkg/nav"
	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

type contextKey string

const configKey contextKey = "rmsctl-config"

// GlobalConfig holds shared state for all rmsctl commands. The root command
// builds it in PersistentPreRunE and injects it into the command context.
type GlobalConfig struct {
	Settings

	Logger  *slog.Logger
	Session *sdk.SessionStore
	Gateway *sdk.Gateway
	Router  *nav.Router
	Clients *client.Provider
	Printer *output.Printer
}

// Settings are the user-tunable values resolved by Load.
type Settings struct {
	ServerURL      string
	SessionFile    string
	ConfigFile     string
	Timeout        time.Duration
	Debug          bool
	Output         output.Format
	NonInteractive bool
}

// InjectConfig adds config to the cobra command context.
func InjectConfig(ctx context.Context, cfg *GlobalConfig) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from the cobra command context.
// Returns (nil, false) if config is not present.
func FromContext(ctx context.Context) (*GlobalConfig, bool) {
	cfg, ok := ctx.Value(configKey).(*GlobalConfig)
	return cfg, ok
}

// MustFromContext retrieves config from context or panics. Only for RunE
// functions running under the root command.
func MustFromContext(ctx context.Context) *GlobalConfig {
	cfg, ok := FromContext(ctx)
	if !ok {
		panic("rmsctl: config not found in context - this is a bug in rmsctl")
	}
	return cfg
}

// RouteAnnotation is the cobra annotation naming the route a command
// belongs to. The root command checks it against the route guard before
// the command runs.
const RouteAnnotation = "rmsctl.route"

// Route returns annotations placing a command under path.
func Route(path string) map[string]string {
	return map[string]string{RouteAnnotation: path}
}

// Prompter returns the prompt helper honouring --non-interactive.
func (c *GlobalConfig) Prompter() output.Prompter {
	return output.Prompter{NonInteractive: c.NonInteractive}
}

var homeCommands = map[sdk.Role]string{
	sdk.RoleUser:     "rmsctl resources list",
	sdk.RoleServicer: "rmsctl servicer dashboard",
}

// HomeCommand is the command matching a role's home view.
func HomeCommand(role sdk.Role) string {
	if cmd, ok := homeCommands[role]; ok {
		return cmd
	}
	return "rmsctl auth login"
}
