package resources

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/config"
	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/output"
	"github.com/Syam115/Resource-Management-System/pkg/nav"
	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

var categoriesCmd = &cobra.Command{
	Use:         "categories",
	Short:       "List every category, to pick a filter for 'resources list'",
	Annotations: config.Route(nav.BrowsePath),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		client, err := cfg.Clients.SDKClient()
		if err != nil {
			return err
		}

		categories, err := client.ListCategories(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		if ok, err := cfg.Printer.Emit(categories); ok {
			return err
		}
		return cfg.Printer.Table(CategoryHeader(), CategoryRows(categories))
	},
}

// CategoryHeader is the table header matching CategoryRows.
func CategoryHeader() []string {
	return []string{"ID", "NAME", "RESOURCES", "SERVICER", "DESCRIPTION"}
}

// CategoryRows renders categories for the table view.
func CategoryRows(categories []sdk.Category) [][]string {
	rows := make([][]string, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []string{
			strconv.FormatInt(c.ID, 10),
			c.Name,
			strconv.Itoa(c.ResourceCount),
			output.Dash(c.ServicerName),
			output.Dash(c.Description),
		})
	}
	return rows
}
