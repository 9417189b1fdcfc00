package auth

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/config"
	"github.com/Syam115/Resource-Management-System/pkg/nav"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with email and password",
	Long: `Signs in to the Resource Management System and stores the session
locally so later commands run as that account.

Missing values are prompted for unless --non-interactive is set. Signing in
while another account is active replaces that session.`,
	Annotations: config.Route(nav.LoginPath),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		prompt := cfg.Prompter()

		email, err := prompt.Text(loginEmail, "Email", "email")
		if err != nil {
			return err
		}
		password, err := prompt.Password(loginPassword, "Password", "password")
		if err != nil {
			return err
		}

		if previous := cfg.Session.Current(); previous != nil {
			pterm.Info.Printf("Replacing session for %s\n", previous.Identity.Email)
		}

		session, err := cfg.Gateway.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}

		pterm.Success.Printf("Signed in as %s (%s, %s)\n", session.Identity.Name, session.Identity.Email, session.Identity.Role)
		pterm.Info.Printf("Next: %s\n", config.HomeCommand(session.Identity.Role))
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")
}
