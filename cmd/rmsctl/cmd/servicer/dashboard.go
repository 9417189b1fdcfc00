package servicer

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/cmd/bookings"
	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/config"
	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/output"
	"github.com/Syam115/Resource-Management-System/pkg/nav"
)

var dashboardCmd = &cobra.Command{
	Use:         "dashboard",
	Short:       "Overview of your catalogue and pending requests",
	Annotations: config.Route(nav.DashboardPath),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		client, err := cfg.Clients.SDKClient()
		if err != nil {
			return err
		}

		summary, err := client.Dashboard(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load dashboard: %w", err)
		}
		if ok, err := cfg.Printer.Emit(summary); ok {
			return err
		}

		if session := cfg.Session.Current(); session != nil {
			pterm.DefaultSection.Printf("Dashboard: %s\n", session.Identity.Name)
		}
		pterm.Info.Printf("%s, %s (%d available)\n",
			output.Count(summary.Categories, "category"),
			output.Count(summary.Resources, "resource"),
			summary.AvailableResources)
		pterm.Info.Printf("%s, %d pending, %d approved\n",
			output.Count(summary.Bookings, "booking"), summary.Pending, summary.Approved)

		if summary.Pending == 0 {
			pterm.Success.Println("No requests awaiting a decision")
			return nil
		}
		pterm.DefaultSection.Println("Pending requests")
		if err := cfg.Printer.Table(bookings.Header(true), bookings.Rows(summary.PendingRequests, true)); err != nil {
			return err
		}
		pterm.Info.Println("Decide with 'rmsctl servicer bookings approve <id>' or 'reject <id>'")
		return nil
	},
}
