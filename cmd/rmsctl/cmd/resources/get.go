package resources

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/config"
	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/output"
	"github.com/Syam115/Resource-Management-System/pkg/nav"
)

var getCmd = &cobra.Command{
	Use:         "get <id>",
	Short:       "Show a single resource",
	Args:        cobra.ExactArgs(1),
	Annotations: config.Route(nav.BrowsePath),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid resource id %q", args[0])
		}

		cfg := config.MustFromContext(cmd.Context())
		client, err := cfg.Clients.SDKClient()
		if err != nil {
			return err
		}

		resource, err := client.GetResource(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get resource %d: %w", id, err)
		}
		if ok, err := cfg.Printer.Emit(resource); ok {
			return err
		}

		pterm.DefaultSection.Println(resource.Name)
		pterm.Info.Printf("Category: %s\n", output.Dash(resource.CategoryName))
		pterm.Info.Printf("Location: %s\n", output.Dash(resource.Location))
		pterm.Info.Printf("Capacity: %s\n", capacity(resource.Capacity))
		pterm.Info.Printf("Available: %s\n", yesNo(resource.IsAvailable))
		pterm.Info.Printf("Servicer: %s\n", output.Dash(resource.ServicerName))
		if resource.Description != "" {
			pterm.Println()
			pterm.Println(resource.Description)
		}
		if resource.IsAvailable {
			pterm.Info.Printf("Book it with: rmsctl bookings create --resource-id %d --start ... --end ...\n", resource.ID)
		}
		return nil
	},
}
