package bookings

import (
	"fmt"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/config"
	"github.com/Syam115/Resource-Management-System/pkg/nav"
	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

var listStatus string

var listCmd = &cobra.Command{
	Use:         "list",
	Short:       "List your bookings, newest first",
	Annotations: config.Route(nav.MyBookingsPath),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		client, err := cfg.Clients.SDKClient()
		if err != nil {
			return err
		}

		bookings, err := client.MyBookings(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list bookings: %w", err)
		}
		bookings = filterStatus(bookings, sdk.BookingStatus(listStatus))
		sortNewestFirst(bookings)

		if ok, err := cfg.Printer.Emit(bookings); ok {
			return err
		}
		if len(bookings) == 0 {
			pterm.Info.Println("No bookings yet; find a resource with 'rmsctl resources list'")
			return nil
		}
		return cfg.Printer.Table(Header(false), Rows(bookings, false))
	},
}

func filterStatus(bookings []sdk.Booking, status sdk.BookingStatus) []sdk.Booking {
	if status == "" {
		return bookings
	}
	filtered := make([]sdk.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == status {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

func sortNewestFirst(bookings []sdk.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].StartTime.After(bookings[j].StartTime.Time)
	})
}

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", "", "Only bookings in this status (PENDING, APPROVED, REJECTED, CANCELLED, COMPLETED)")
}
