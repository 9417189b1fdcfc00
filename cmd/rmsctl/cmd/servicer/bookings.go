package servicer

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/cmd/bookings"
	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/config"
	"github.com/Syam115/Resource-Management-System/pkg/nav"
	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

var requestsPendingOnly bool

var requestListCmd = &cobra.Command{
	Use:         "list",
	Short:       "List booking requests for your resources",
	Annotations: config.Route(nav.BookingRequestsPath),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		client, err := cfg.Clients.SDKClient()
		if err != nil {
			return err
		}

		requests, err := client.BookingRequests(cmd.Context(), requestsPendingOnly)
		if err != nil {
			return fmt.Errorf("failed to list booking requests: %w", err)
		}
		if ok, err := cfg.Printer.Emit(requests); ok {
			return err
		}
		if len(requests) == 0 {
			pterm.Info.Println("No booking requests")
			return nil
		}
		return cfg.Printer.Table(bookings.Header(true), bookings.Rows(requests, true))
	},
}

var approveCmd = &cobra.Command{
	Use:         "approve <id>",
	Short:       "Approve a pending booking request",
	Args:        cobra.ExactArgs(1),
	Annotations: config.Route(nav.BookingRequestsPath),
	RunE: func(cmd *cobra.Command, args []string) error {
		return decide(cmd, args[0], "approve", (*sdk.Client).ApproveBooking)
	},
}

var rejectCmd = &cobra.Command{
	Use:         "reject <id>",
	Short:       "Reject a pending booking request",
	Args:        cobra.ExactArgs(1),
	Annotations: config.Route(nav.BookingRequestsPath),
	RunE: func(cmd *cobra.Command, args []string) error {
		return decide(cmd, args[0], "reject", (*sdk.Client).RejectBooking)
	},
}

type decision func(*sdk.Client, context.Context, int64) (*sdk.Booking, error)

func decide(cmd *cobra.Command, arg, verb string, act decision) error {
	id, err := bookings.ParseID("booking", arg)
	if err != nil {
		return err
	}
	cfg := config.MustFromContext(cmd.Context())
	client, err := cfg.Clients.SDKClient()
	if err != nil {
		return err
	}

	booking, err := act(client, cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to %s booking %d: %w", verb, id, err)
	}
	if ok, err := cfg.Printer.Emit(booking); ok {
		return err
	}
	pterm.Success.Printf("Booking %d is now %s\n", booking.ID, booking.Status)
	return nil
}

func init() {
	requestListCmd.Flags().BoolVar(&requestsPendingOnly, "pending", false, "Only requests awaiting a decision")
}
