package servicer

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/cmd/bookings"
	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/cmd/resources"
	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/config"
	"github.com/Syam115/Resource-Management-System/pkg/nav"
	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

// resourceFlags holds the values of the resource create/update flags.
type resourceFlags struct {
	name         string
	description  string
	categoryID   int64
	categoryName string
	location     string
	capacity     int
	available    bool
}

var (
	resourceOpts resourceFlags
	resourceYes  bool
)

var resourceListCmd = &cobra.Command{
	Use:         "list",
	Short:       "List your resources",
	Annotations: config.Route(nav.ResourcesPath),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		client, err := cfg.Clients.SDKClient()
		if err != nil {
			return err
		}

		owned, err := client.MyResources(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list resources: %w", err)
		}
		if ok, err := cfg.Printer.Emit(owned); ok {
			return err
		}
		if len(owned) == 0 {
			pterm.Info.Println("No resources yet; add one with 'rmsctl servicer resources create'")
			return nil
		}
		return cfg.Printer.Table(resources.ResourceHeader(), resources.ResourceRows(owned))
	},
}

var resourceCreateCmd = &cobra.Command{
	Use:         "create",
	Short:       "Add a resource to one of your categories",
	Annotations: config.Route(nav.ResourcesPath),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		client, err := cfg.Clients.SDKClient()
		if err != nil {
			return err
		}

		name, err := cfg.Prompter().Text(resourceOpts.name, "Resource name", "name")
		if err != nil {
			return err
		}
		resourceOpts.name = name

		input, err := resourceOpts.apply(cmd.Context(), client, cmd.Flags(), sdk.ResourceInput{})
		if err != nil {
			return err
		}
		resource, err := client.CreateResource(cmd.Context(), input)
		if err != nil {
			return fmt.Errorf("failed to create resource: %w", err)
		}
		if ok, err := cfg.Printer.Emit(resource); ok {
			return err
		}
		pterm.Success.Printf("Resource %d %q created\n", resource.ID, resource.Name)
		return nil
	},
}

var resourceUpdateCmd = &cobra.Command{
	Use:         "update <id>",
	Short:       "Change a resource; only the given flags are modified",
	Args:        cobra.ExactArgs(1),
	Annotations: config.Route(nav.ResourcesPath),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := bookings.ParseID("resource", args[0])
		if err != nil {
			return err
		}
		cfg := config.MustFromContext(cmd.Context())
		client, err := cfg.Clients.SDKClient()
		if err != nil {
			return err
		}

		owned, err := client.MyResources(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list resources: %w", err)
		}
		current, err := findResource(owned, id)
		if err != nil {
			return err
		}

		input, err := resourceOpts.apply(cmd.Context(), client, cmd.Flags(), inputFrom(current))
		if err != nil {
			return err
		}
		resource, err := client.UpdateResource(cmd.Context(), id, input)
		if err != nil {
			return fmt.Errorf("failed to update resource %d: %w", id, err)
		}
		if ok, err := cfg.Printer.Emit(resource); ok {
			return err
		}
		pterm.Success.Printf("Resource %d updated\n", resource.ID)
		return nil
	},
}

var resourceDeleteCmd = &cobra.Command{
	Use:         "delete <id>",
	Short:       "Delete a resource",
	Args:        cobra.ExactArgs(1),
	Annotations: config.Route(nav.ResourcesPath),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := bookings.ParseID("resource", args[0])
		if err != nil {
			return err
		}
		cfg := config.MustFromContext(cmd.Context())
		client, err := cfg.Clients.SDKClient()
		if err != nil {
			return err
		}

		owned, err := client.MyResources(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list resources: %w", err)
		}
		resource, err := findResource(owned, id)
		if err != nil {
			return err
		}

		ok, err := cfg.Prompter().Confirm(fmt.Sprintf("Delete resource %q?", resource.Name), resourceYes)
		if err != nil {
			return err
		}
		if !ok {
			pterm.Info.Println("Resource kept")
			return nil
		}
		if err := client.DeleteResource(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete resource %d: %w", id, err)
		}
		pterm.Success.Printf("Resource %d deleted\n", id)
		return nil
	},
}

// categoryResolver maps a category reference to its id.
type categoryResolver interface {
	ResolveCategory(ctx context.Context, ref sdk.CategoryRef) (int64, error)
}

// apply overlays the flags that were set onto base and validates the result.
func (o resourceFlags) apply(ctx context.Context, resolver categoryResolver, flags *pflag.FlagSet, base sdk.ResourceInput) (sdk.ResourceInput, error) {
	input := base
	if flags.Changed("name") || input.Name == "" {
		input.Name = o.name
	}
	if flags.Changed("description") {
		input.Description = o.description
	}
	if flags.Changed("location") {
		input.Location = o.location
	}
	if flags.Changed("capacity") {
		capacity := o.capacity
		input.Capacity = &capacity
	}
	if flags.Changed("available") {
		available := o.available
		input.IsAvailable = &available
	}

	switch {
	case flags.Changed("category-id"):
		input.CategoryID = o.categoryID
	case flags.Changed("category"):
		id, err := resolver.ResolveCategory(ctx, sdk.CategoryByName(o.categoryName))
		if err != nil {
			return input, err
		}
		input.CategoryID = id
	}

	if err := input.Validate(); err != nil {
		return input, err
	}
	return input, nil
}

func inputFrom(r sdk.Resource) sdk.ResourceInput {
	available := r.IsAvailable
	return sdk.ResourceInput{
		Name:        r.Name,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		Location:    r.Location,
		Capacity:    r.Capacity,
		IsAvailable: &available,
	}
}

func findResource(owned []sdk.Resource, id int64) (sdk.Resource, error) {
	for _, r := range owned {
		if r.ID == id {
			return r, nil
		}
	}
	return sdk.Resource{}, fmt.Errorf("resource %d not found among your resources", id)
}

func init() {
	for _, c := range []*cobra.Command{resourceCreateCmd, resourceUpdateCmd} {
		f := c.Flags()
		f.StringVar(&resourceOpts.name, "name", "", "Resource name")
		f.StringVar(&resourceOpts.description, "description", "", "Resource description")
		f.Int64Var(&resourceOpts.categoryID, "category-id", 0, "Owning category id")
		f.StringVar(&resourceOpts.categoryName, "category", "", "Owning category, by name")
		f.StringVar(&resourceOpts.location, "location", "", "Where the resource is")
		f.IntVar(&resourceOpts.capacity, "capacity", 0, "How many people it fits")
		f.BoolVar(&resourceOpts.available, "available", true, "Whether it can be booked")
		c.MarkFlagsMutuallyExclusive("category-id", "category")
	}
	resourceDeleteCmd.Flags().BoolVarP(&resourceYes, "yes", "y", false, "Delete without asking for confirmation")
}
