package auth

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	credentials "github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/auth"
	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/config"
	"github.com/Syam115/Resource-Management-System/pkg/nav"
	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

// sessionStatus is the structured form of 'auth status'.
type sessionStatus struct {
	LoggedIn    bool              `json:"loggedIn"`
	User        *sdk.UserIdentity `json:"user,omitempty"`
	ExpiresAt   *time.Time        `json:"expiresAt,omitempty"`
	Home        string            `json:"home,omitempty"`
	Server      string            `json:"server"`
	SessionFile string            `json:"sessionFile"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display authentication status",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		status := buildStatus(cfg.Session.Current(), cfg.ServerURL, credentials.NewFileStore(cfg.SessionFile).Path())

		if ok, err := cfg.Printer.Emit(status); ok {
			return err
		}

		pterm.DefaultSection.Println("Authentication Status")
		if !status.LoggedIn {
			pterm.Warning.Println("Not logged in; run 'rmsctl auth login'")
			pterm.Info.Printf("Server: %s\n", status.Server)
			return nil
		}

		pterm.Info.Printf("Signed in as: %s (%s)\n", status.User.Name, status.User.Email)
		pterm.Info.Printf("Role: %s\n", status.User.Role)
		if status.ExpiresAt != nil {
			pterm.Info.Printf("Token expires: %s (%s)\n", status.ExpiresAt.Local().Format(time.RFC1123), humanize.Time(*status.ExpiresAt))
		}
		pterm.Info.Printf("Home view: %s (%s)\n", status.Home, config.HomeCommand(status.User.Role))
		pterm.Info.Printf("Server: %s\n", status.Server)
		pterm.Info.Printf("Session file: %s\n", status.SessionFile)
		return nil
	},
}

func buildStatus(session *sdk.Session, server, sessionFile string) sessionStatus {
	status := sessionStatus{Server: server, SessionFile: sessionFile}
	if session == nil {
		return status
	}
	identity := session.Identity
	status.LoggedIn = true
	status.User = &identity
	status.Home = nav.HomeFor(identity.Role)
	if expiresAt, ok := sdk.TokenExpiry(session.Token); ok {
		status.ExpiresAt = &expiresAt
	}
	return status
}
