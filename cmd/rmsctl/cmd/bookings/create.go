package bookings

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/config"
	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/output"
	"github.com/Syam115/Resource-Management-System/pkg/nav"
	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

var (
	createResourceID int64
	createStart      string
	createEnd        string
	createDuration   time.Duration
	createPurpose    string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Request a booking for a resource",
	Long: `Requests a resource for a time window. The request starts PENDING until
the resource's servicer approves or rejects it.

Times are local unless they carry an offset, for example
  rmsctl bookings create --resource-id 4 --start "2026-03-02 09:00" --duration 2h`,
	Annotations: config.Route(nav.BrowsePath),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		input, err := buildInput(time.Local)
		if err != nil {
			return err
		}
		if err := input.Validate(); err != nil {
			return err
		}

		client, err := cfg.Clients.SDKClient()
		if err != nil {
			return err
		}
		booking, err := client.CreateBooking(cmd.Context(), input)
		if err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		if ok, err := cfg.Printer.Emit(booking); ok {
			return err
		}
		pterm.Success.Printf("Booking %d requested for %s, %s\n",
			booking.ID, resourceLabel(*booking), output.Span(booking.StartTime.Time, booking.EndTime.Time))
		pterm.Info.Printf("Status: %s\n", booking.Status)
		return nil
	},
}

func buildInput(loc *time.Location) (sdk.BookingInput, error) {
	input := sdk.BookingInput{ResourceID: createResourceID, Purpose: createPurpose}

	start, err := sdk.ParseBookingTime(createStart, loc)
	if err != nil {
		return input, &sdk.ValidationError{Field: "start", Message: err.Error()}
	}
	input.StartTime = start

	switch {
	case createEnd != "":
		end, err := sdk.ParseBookingTime(createEnd, loc)
		if err != nil {
			return input, &sdk.ValidationError{Field: "end", Message: err.Error()}
		}
		input.EndTime = end
	case createDuration > 0:
		input.EndTime = start.Add(createDuration)
	default:
		return input, &sdk.ValidationError{Field: "end", Message: "pass --end or --duration"}
	}
	return input, nil
}

func init() {
	createCmd.Flags().Int64Var(&createResourceID, "resource-id", 0, "Resource to book")
	createCmd.Flags().StringVar(&createStart, "start", "", "Start time (YYYY-MM-DD HH:MM, local)")
	createCmd.Flags().StringVar(&createEnd, "end", "", "End time (YYYY-MM-DD HH:MM, local)")
	createCmd.Flags().DurationVar(&createDuration, "duration", 0, "Booking length, instead of --end (e.g. 90m)")
	createCmd.Flags().StringVar(&createPurpose, "purpose", "", "What the booking is for")
	createCmd.MarkFlagsMutuallyExclusive("end", "duration")
	_ = createCmd.MarkFlagRequired("resource-id")
	_ = createCmd.MarkFlagRequired("start")
}
