package auth

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/config"
	"github.com/Syam115/Resource-Management-System/pkg/nav"
	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

var (
	registerName     string
	registerEmail    string
	registerPassword string
	registerRole     string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	Long: `Creates a USER or SERVICER account and signs in with it.

USER accounts browse resources and request bookings. SERVICER accounts own
categories and resources and approve or reject booking requests.`,
	Annotations: config.Route(nav.RegisterPath),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		prompt := cfg.Prompter()

		name, err := prompt.Text(registerName, "Full name", "name")
		if err != nil {
			return err
		}
		email, err := prompt.Text(registerEmail, "Email", "email")
		if err != nil {
			return err
		}
		password, err := prompt.Password(registerPassword, "Password", "password")
		if err != nil {
			return err
		}
		roleName, err := prompt.Select(registerRole, "Account type", "role", roleOptions())
		if err != nil {
			return err
		}
		role, err := sdk.ParseRole(roleName)
		if err != nil {
			return err
		}

		session, err := cfg.Gateway.Register(cmd.Context(), name, email, password, role)
		if err != nil {
			return err
		}

		pterm.Success.Printf("Registered %s as %s\n", session.Identity.Email, session.Identity.Role)
		pterm.Info.Printf("Next: %s\n", config.HomeCommand(session.Identity.Role))
		return nil
	},
}

func roleOptions() []string {
	options := make([]string, 0, len(sdk.Roles))
	for _, role := range sdk.Roles {
		options = append(options, role.String())
	}
	return options
}

func init() {
	registerCmd.Flags().StringVar(&registerName, "name", "", "Full name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Account password (prompted when omitted)")
	registerCmd.Flags().StringVar(&registerRole, "role", "", "Account type: USER or SERVICER")
}
