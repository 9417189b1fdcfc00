package bookings

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/config"
	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/output"
	"github.com/Syam115/Resource-Management-System/pkg/nav"
	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

var cancelYes bool

var cancelCmd = &cobra.Command{
	Use:         "cancel <id>",
	Short:       "Cancel one of your pending or approved bookings",
	Args:        cobra.ExactArgs(1),
	Annotations: config.Route(nav.MyBookingsPath),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := ParseID("booking", args[0])
		if err != nil {
			return err
		}

		cfg := config.MustFromContext(cmd.Context())
		client, err := cfg.Clients.SDKClient()
		if err != nil {
			return err
		}

		mine, err := client.MyBookings(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list bookings: %w", err)
		}
		booking, err := cancellable(mine, id)
		if err != nil {
			return err
		}

		question := fmt.Sprintf("Cancel booking %d for %s, %s?", booking.ID, resourceLabel(booking),
			output.Span(booking.StartTime.Time, booking.EndTime.Time))
		ok, err := cfg.Prompter().Confirm(question, cancelYes)
		if err != nil {
			return err
		}
		if !ok {
			pterm.Info.Println("Booking kept")
			return nil
		}

		cancelled, err := client.CancelBooking(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to cancel booking %d: %w", id, err)
		}
		if ok, err := cfg.Printer.Emit(cancelled); ok {
			return err
		}
		pterm.Success.Printf("Booking %d cancelled\n", cancelled.ID)
		return nil
	},
}

// cancellable finds id among the user's bookings and checks it can still
// be cancelled.
func cancellable(bookings []sdk.Booking, id int64) (sdk.Booking, error) {
	for _, b := range bookings {
		if b.ID != id {
			continue
		}
		if !b.Status.Cancellable() {
			return b, fmt.Errorf("booking %d is %s and can no longer be cancelled", id, b.Status)
		}
		return b, nil
	}
	return sdk.Booking{}, fmt.Errorf("booking %d not found among your bookings", id)
}

func init() {
	cancelCmd.Flags().BoolVarP(&cancelYes, "yes", "y", false, "Cancel without asking for confirmation")
}
