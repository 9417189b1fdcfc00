package servicer

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/cmd/bookings"
	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/cmd/resources"
	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/config"
	"github.com/Syam115/Resource-Management-System/pkg/nav"
	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

var (
	categoryName        string
	categoryDescription string
	categoryYes         bool
)

var categoryListCmd = &cobra.Command{
	Use:         "list",
	Short:       "List your categories",
	Annotations: config.Route(nav.CategoriesPath),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		client, err := cfg.Clients.SDKClient()
		if err != nil {
			return err
		}

		categories, err := client.MyCategories(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		if ok, err := cfg.Printer.Emit(categories); ok {
			return err
		}
		if len(categories) == 0 {
			pterm.Info.Println("No categories yet; add one with 'rmsctl servicer categories create --name ...'")
			return nil
		}
		return cfg.Printer.Table(resources.CategoryHeader(), resources.CategoryRows(categories))
	},
}

var categoryCreateCmd = &cobra.Command{
	Use:         "create",
	Short:       "Create a category",
	Annotations: config.Route(nav.CategoriesPath),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		name, err := cfg.Prompter().Text(categoryName, "Category name", "name")
		if err != nil {
			return err
		}
		input := sdk.CategoryInput{Name: name, Description: categoryDescription}
		if err := input.Validate(); err != nil {
			return err
		}

		client, err := cfg.Clients.SDKClient()
		if err != nil {
			return err
		}
		category, err := client.CreateCategory(cmd.Context(), input)
		if err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}
		if ok, err := cfg.Printer.Emit(category); ok {
			return err
		}
		pterm.Success.Printf("Category %d %q created\n", category.ID, category.Name)
		return nil
	},
}

var categoryUpdateCmd = &cobra.Command{
	Use:         "update <id>",
	Short:       "Rename or re-describe a category",
	Args:        cobra.ExactArgs(1),
	Annotations: config.Route(nav.CategoriesPath),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := bookings.ParseID("category", args[0])
		if err != nil {
			return err
		}
		cfg := config.MustFromContext(cmd.Context())
		client, err := cfg.Clients.SDKClient()
		if err != nil {
			return err
		}

		owned, err := client.MyCategories(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		current, err := findCategory(owned, id)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		input := mergeCategory(current, flags.Changed("name"), categoryName, flags.Changed("description"), categoryDescription)
		category, err := client.UpdateCategory(cmd.Context(), id, input)
		if err != nil {
			return fmt.Errorf("failed to update category %d: %w", id, err)
		}
		if ok, err := cfg.Printer.Emit(category); ok {
			return err
		}
		pterm.Success.Printf("Category %d updated\n", category.ID)
		return nil
	},
}

var categoryDeleteCmd = &cobra.Command{
	Use:         "delete <id>",
	Short:       "Delete a category together with its resources",
	Args:        cobra.ExactArgs(1),
	Annotations: config.Route(nav.CategoriesPath),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := bookings.ParseID("category", args[0])
		if err != nil {
			return err
		}
		cfg := config.MustFromContext(cmd.Context())
		client, err := cfg.Clients.SDKClient()
		if err != nil {
			return err
		}

		owned, err := client.MyCategories(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		category, err := findCategory(owned, id)
		if err != nil {
			return err
		}

		question := fmt.Sprintf("Delete category %q?", category.Name)
		if category.ResourceCount > 0 {
			question = fmt.Sprintf("Delete category %q and its %d resource(s)?", category.Name, category.ResourceCount)
		}
		ok, err := cfg.Prompter().Confirm(question, categoryYes)
		if err != nil {
			return err
		}
		if !ok {
			pterm.Info.Println("Category kept")
			return nil
		}

		if err := client.DeleteCategory(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete category %d: %w", id, err)
		}
		pterm.Success.Printf("Category %d deleted\n", id)
		return nil
	},
}

func findCategory(categories []sdk.Category, id int64) (sdk.Category, error) {
	for _, c := range categories {
		if c.ID == id {
			return c, nil
		}
	}
	return sdk.Category{}, fmt.Errorf("category %d not found among your categories", id)
}

// mergeCategory applies only the flags that were given on top of current.
func mergeCategory(current sdk.Category, setName bool, name string, setDescription bool, description string) sdk.CategoryInput {
	input := sdk.CategoryInput{Name: current.Name, Description: current.Description}
	if setName {
		input.Name = name
	}
	if setDescription {
		input.Description = description
	}
	return input
}

func init() {
	for _, c := range []*cobra.Command{categoryCreateCmd, categoryUpdateCmd} {
		c.Flags().StringVar(&categoryName, "name", "", "Category name")
		c.Flags().StringVar(&categoryDescription, "description", "", "Category description")
	}
	categoryDeleteCmd.Flags().BoolVarP(&categoryYes, "yes", "y", false, "Delete without asking for confirmation")
}
