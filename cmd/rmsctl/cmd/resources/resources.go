package resources

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/output"
	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

// ResourcesCmd is the parent command for browsing the resource catalogue
var ResourcesCmd = &cobra.Command{
	Use:     "resources",
	Aliases: []string{"browse"},
	Short:   "Browse bookable resources",
	Long:    `Commands for browsing categories and resources available for booking.`,
}

func init() {
	ResourcesCmd.AddCommand(listCmd)
	ResourcesCmd.AddCommand(getCmd)
	ResourcesCmd.AddCommand(categoriesCmd)
}

var resourceHeader = []string{"ID", "NAME", "CATEGORY", "LOCATION", "CAPACITY", "AVAILABLE", "SERVICER"}

// ResourceRows renders resources for the table view. Shared with the
// servicer commands.
func ResourceRows(resources []sdk.Resource) [][]string {
	rows := make([][]string, 0, len(resources))
	for _, r := range resources {
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.Name,
			output.Dash(r.CategoryName),
			output.Dash(r.Location),
			capacity(r.Capacity),
			yesNo(r.IsAvailable),
			output.Dash(r.ServicerName),
		})
	}
	return rows
}

// ResourceHeader is the table header matching ResourceRows.
func ResourceHeader() []string {
	return append([]string(nil), resourceHeader...)
}

func capacity(value *int) string {
	if value == nil {
		return "-"
	}
	return strconv.Itoa(*value)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
