package resources

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/config"
	"github.com/Syam115/Resource-Management-System/pkg/nav"
	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

var (
	listCategoryID   int64
	listCategoryName string
	listSearch       string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List resources, optionally filtered by category or search text",
	Long: `Lists resources from the catalogue.

--category-id filters by category id. --category accepts a category name
instead and is resolved against the category list first. --search matches
resource names and descriptions.`,
	Annotations: config.Route(nav.BrowsePath),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		client, err := cfg.Clients.SDKClient()
		if err != nil {
			return err
		}

		filter := sdk.ResourceFilter{Search: listSearch}
		switch {
		case listCategoryID > 0:
			filter.Category = sdk.CategoryByID(listCategoryID)
		case listCategoryName != "":
			filter.Category = sdk.CategoryByName(listCategoryName)
		}

		resources, err := client.ListResources(cmd.Context(), filter)
		if err != nil {
			return fmt.Errorf("failed to list resources: %w", err)
		}

		if ok, err := cfg.Printer.Emit(resources); ok {
			return err
		}
		if len(resources) == 0 {
			pterm.Info.Println("No resources match")
			return nil
		}
		return cfg.Printer.Table(ResourceHeader(), ResourceRows(resources))
	},
}

func init() {
	listCmd.Flags().Int64Var(&listCategoryID, "category-id", 0, "Only resources in this category id")
	listCmd.Flags().StringVar(&listCategoryName, "category", "", "Only resources in the category with this name")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Search text matched against name and description")
	listCmd.MarkFlagsMutuallyExclusive("category-id", "category")
}

