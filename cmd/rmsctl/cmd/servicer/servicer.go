package servicer

import (
	"github.com/spf13/cobra"
)

// ServicerCmd is the parent command for servicer operations
var ServicerCmd = &cobra.Command{
	Use:   "servicer",
	Short: "Manage your categories, resources and booking requests",
	Long: `Commands for SERVICER accounts: an overview dashboard, category and
resource management, and approving or rejecting booking requests.`,
}

var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"category"},
	Short:   "Manage your categories",
}

var resourcesCmd = &cobra.Command{
	Use:     "resources",
	Aliases: []string{"resource"},
	Short:   "Manage your resources",
}

var bookingsCmd = &cobra.Command{
	Use:     "bookings",
	Aliases: []string{"requests"},
	Short:   "Review booking requests for your resources",
}

func init() {
	ServicerCmd.AddCommand(dashboardCmd)
	ServicerCmd.AddCommand(categoriesCmd)
	ServicerCmd.AddCommand(resourcesCmd)
	ServicerCmd.AddCommand(bookingsCmd)

	categoriesCmd.AddCommand(categoryListCmd)
	categoriesCmd.AddCommand(categoryCreateCmd)
	categoriesCmd.AddCommand(categoryUpdateCmd)
	categoriesCmd.AddCommand(categoryDeleteCmd)

	resourcesCmd.AddCommand(resourceListCmd)
	resourcesCmd.AddCommand(resourceCreateCmd)
	resourcesCmd.AddCommand(resourceUpdateCmd)
	resourcesCmd.AddCommand(resourceDeleteCmd)

	bookingsCmd.AddCommand(requestListCmd)
	bookingsCmd.AddCommand(approveCmd)
	bookingsCmd.AddCommand(rejectCmd)
}
