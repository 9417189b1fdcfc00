package bookings

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/output"
	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

// BookingsCmd is the parent command for a user's own bookings
var BookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "Request, list and cancel your bookings",
	Long:  `Commands for USER accounts to request resources and manage their own bookings.`,
}

func init() {
	BookingsCmd.AddCommand(listCmd)
	BookingsCmd.AddCommand(createCmd)
	BookingsCmd.AddCommand(cancelCmd)
}

// ParseID reads a numeric id argument.
func ParseID(kind, value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, value)
	}
	return id, nil
}

// Header is the table header matching Rows.
func Header(withRequester bool) []string {
	header := []string{"ID", "RESOURCE", "WHEN", "STATUS", "PURPOSE"}
	if withRequester {
		header = append(header, "REQUESTED BY")
	}
	return header
}

// Rows renders bookings for the table view. withRequester adds the
// requesting user, which only servicers see.
func Rows(bookings []sdk.Booking, withRequester bool) [][]string {
	rows := make([][]string, 0, len(bookings))
	for _, b := range bookings {
		row := []string{
			strconv.FormatInt(b.ID, 10),
			resourceLabel(b),
			output.Span(b.StartTime.Time, b.EndTime.Time),
			string(b.Status),
			output.Dash(b.Purpose),
		}
		if withRequester {
			row = append(row, requester(b))
		}
		rows = append(rows, row)
	}
	return rows
}

func resourceLabel(b sdk.Booking) string {
	name := b.ResourceName
	if name == "" {
		name = "#" + strconv.FormatInt(b.ResourceID, 10)
	}
	if b.ResourceLocation != "" {
		return fmt.Sprintf("%s (%s)", name, b.ResourceLocation)
	}
	return name
}

func requester(b sdk.Booking) string {
	switch {
	case b.UserName != "" && b.UserEmail != "":
		return fmt.Sprintf("%s <%s>", b.UserName, b.UserEmail)
	case b.UserEmail != "":
		return b.UserEmail
	default:
		return output.Dash(b.UserName)
	}
}
