package sdk

import (
	"context"
	"fmt"
)

// Dashboard is a servicer's overview: what they own and what awaits a decision.
type Dashboard struct {
	Categories         int       `json:"categories"`
	Resources          int       `json:"resources"`
	AvailableResources int       `json:"availableResources"`
	Bookings           int       `json:"bookings"`
	Pending            int       `json:"pending"`
	Approved           int       `json:"approved"`
	PendingRequests    []Booking `json:"pendingRequests"`
}

// Summarize counts categories, resources and booking requests.
func Summarize(categories []Category, resources []Resource, requests []Booking) Dashboard {
	summary := Dashboard{
		Categories:      len(categories),
		Resources:       len(resources),
		Bookings:        len(requests),
		PendingRequests: []Booking{},
	}
	for _, r := range resources {
		if r.IsAvailable {
			summary.AvailableResources++
		}
	}
	for _, b := range requests {
		switch b.Status {
		case BookingPending:
			summary.Pending++
			summary.PendingRequests = append(summary.PendingRequests, b)
		case BookingApproved:
			summary.Approved++
		}
	}
	return summary
}

// Dashboard loads the signed-in servicer's categories, resources and
// booking requests and summarizes them.
func (c *Client) Dashboard(ctx context.Context) (*Dashboard, error) {
	categories, err := c.MyCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	resources, err := c.MyResources(ctx)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	requests, err := c.BookingRequests(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("list booking requests: %w", err)
	}
	summary := Summarize(categories, resources, requests)
	return &summary, nil
}
