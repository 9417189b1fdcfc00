package auth

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/config"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		if !cfg.Session.IsAuthenticated() {
			pterm.Info.Println("Not logged in")
			return nil
		}

		cfg.Gateway.Logout()
		pterm.Success.Println("Logged out successfully")
		return nil
	},
}
