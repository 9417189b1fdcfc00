package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// MyBookings lists the signed-in user's own bookings.
func (c *Client) MyBookings(ctx context.Context) ([]Booking, error) {
	return call[[]Booking](ctx, c, request{method: http.MethodGet, path: "/bookings/my"})
}

// CreateBooking submits a booking request. Times are sent as UTC ISO-8601;
// availability and overlap checks happen on the backend.
func (c *Client) CreateBooking(ctx context.Context, input BookingInput) (*Booking, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	input.StartTime = input.StartTime.UTC().Truncate(time.Millisecond)
	input.EndTime = input.EndTime.UTC().Truncate(time.Millisecond)
	booking, err := call[Booking](ctx, c, request{method: http.MethodPost, path: "/bookings", body: input})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// CancelBooking cancels one of the user's own bookings.
func (c *Client) CancelBooking(ctx context.Context, id int64) (*Booking, error) {
	return c.bookingAction(ctx, fmt.Sprintf("/bookings/%d/cancel", id))
}

// BookingRequests lists bookings against the servicer's resources.
func (c *Client) BookingRequests(ctx context.Context, pendingOnly bool) ([]Booking, error) {
	query := url.Values{"pendingOnly": []string{strconv.FormatBool(pendingOnly)}}
	return call[[]Booking](ctx, c, request{method: http.MethodGet, path: "/servicer/bookings", query: query})
}

// ApproveBooking approves a pending booking request.
func (c *Client) ApproveBooking(ctx context.Context, id int64) (*Booking, error) {
	return c.bookingAction(ctx, servicerPath("bookings", id)+"/approve")
}

// RejectBooking rejects a pending booking request.
func (c *Client) RejectBooking(ctx context.Context, id int64) (*Booking, error) {
	return c.bookingAction(ctx, servicerPath("bookings", id)+"/reject")
}

func (c *Client) bookingAction(ctx context.Context, path string) (*Booking, error) {
	booking, err := call[Booking](ctx, c, request{method: http.MethodPut, path: path})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
