package sdk_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

func TestClient_SendsBearerAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get(sdk.RequestIDHeader)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	t.Cleanup(srv.Close)

	client := sdk.NewClient(srv.URL+"/api", sdk.WithToken("abc"))
	_, err := client.MyBookings(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer abc", gotAuth)
	_, err = uuid.Parse(gotRequestID)
	assert.NoError(t, err)
	assert.True(t, client.Authenticated())
}

func TestClient_EnvelopeFailureBecomesAPIError(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
	}{
		{name: "backend message", status: http.StatusBadRequest, body: `{"success":false,"message":"Resource not found"}`, wantStatus: 400, wantMsg: "Resource not found"},
		{name: "success false with 200", status: http.StatusOK, body: `{"success":false,"message":"Access denied"}`, wantStatus: 200, wantMsg: "Access denied"},
		{name: "not an envelope", status: http.StatusBadGateway, body: `<html>bad gateway</html>`, wantStatus: 502, wantMsg: "The server encountered an error. Please try again later."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			_, err := sdk.NewClient(srv.URL).GetResource(context.Background(), 1)
			var apiErr *sdk.APIError
			require.True(t, errors.As(err, &apiErr), "got %T", err)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.wantMsg, sdk.UserMessage(err))
		})
	}
}

func TestClient_UnauthorizedClearsSession(t *testing.T) {
	f := newFixture(t)
	_, err := f.gateway.Login(context.Background(), "uma@example.com", testPassword)
	require.NoError(t, err)

	f.srv.RevokeTokens()

	var calls atomic.Int32
	token := f.store.Current().Token
	client := sdk.NewClient(f.srv.URL,
		sdk.WithToken(token),
		sdk.WithUnauthorizedHandler(func() {
			calls.Add(1)
			f.gateway.ExpireToken(token)
		}))

	_, err = client.MyBookings(context.Background())
	require.ErrorIs(t, err, sdk.ErrSessionExpired)
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, f.store.IsAuthenticated())
	assert.Equal(t, "Your session has expired. Please log in again.", sdk.UserMessage(err))
}

func TestClient_UnauthenticatedLoginFailureIsNotExpiry(t *testing.T) {
	f := newFixture(t)
	called := false
	client := sdk.NewClient(f.srv.URL, sdk.WithUnauthorizedHandler(func() { called = true }))

	_, err := client.Login(context.Background(), "uma@example.com", "wrong")
	require.Error(t, err)
	assert.NotErrorIs(t, err, sdk.ErrSessionExpired)
	assert.False(t, called)
}

func TestClient_TimeoutIsReported(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	client := sdk.NewClient(srv.URL, sdk.WithTimeout(50*time.Millisecond))
	_, err := client.ListCategories(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "The server took too long to respond. Please try again.", sdk.UserMessage(err))
}

func TestClient_ResourcesByCategoryReference(t *testing.T) {
	f := newFixture(t)
	rooms := f.srv.AddCategory(f.servicer.ID, "Meeting Rooms", "")
	gear := f.srv.AddCategory(f.servicer.ID, "Equipment", "")
	f.srv.AddResource(rooms.ID, "Room A", "Floor 1")
	f.srv.AddResource(rooms.ID, "Room B", "Floor 2")
	f.srv.AddResource(gear.ID, "Projector", "Storage")

	client := sdk.NewClient(f.srv.URL)

	tests := []struct {
		name      string
		filter    sdk.ResourceFilter
		wantNames []string
	}{
		{name: "all", filter: sdk.ResourceFilter{}, wantNames: []string{"Room A", "Room B", "Projector"}},
		{name: "by id", filter: sdk.ResourceFilter{Category: sdk.CategoryByID(gear.ID)}, wantNames: []string{"Projector"}},
		{name: "by name", filter: sdk.ResourceFilter{Category: sdk.CategoryByName("meeting rooms")}, wantNames: []string{"Room A", "Room B"}},
		{name: "search", filter: sdk.ResourceFilter{Search: "room b"}, wantNames: []string{"Room B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resources, err := client.ListResources(context.Background(), tt.filter)
			require.NoError(t, err)
			names := make([]string, 0, len(resources))
			for _, r := range resources {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}

	_, err := client.ListResources(context.Background(), sdk.ResourceFilter{Category: sdk.CategoryByName("Vehicles")})
	var validationErr *sdk.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, `no category named "Vehicles"`, validationErr.Message)
}

func TestClient_BookingLifecycle(t *testing.T) {
	f := newFixture(t)
	category := f.srv.AddCategory(f.servicer.ID, "Rooms", "")
	room := f.srv.AddResource(category.ID, "Room A", "Floor 1")

	userClient := f.clientFor(f.user)
	servicerClient := f.clientFor(f.servicer)
	ctx := context.Background()

	start := mustTime(t, "2030-03-01T09:00:00Z")
	booking, err := userClient.CreateBooking(ctx, sdk.BookingInput{
		ResourceID: room.ID,
		StartTime:  start,
		EndTime:    start.Add(2 * time.Hour),
		Purpose:    "standup",
	})
	require.NoError(t, err)
	assert.Equal(t, sdk.BookingPending, booking.Status)
	assert.True(t, booking.StartTime.Equal(start), "start %v", booking.StartTime)
	assert.Equal(t, "Room A", booking.ResourceName)

	_, err = userClient.CreateBooking(ctx, sdk.BookingInput{
		ResourceID: room.ID,
		StartTime:  start.Add(time.Hour),
		EndTime:    start.Add(3 * time.Hour),
	})
	assert.Equal(t, "Resource is already booked for the selected time slot", sdk.UserMessage(err))

	pending, err := servicerClient.BookingRequests(ctx, true)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "uma@example.com", pending[0].UserEmail)

	approved, err := servicerClient.ApproveBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, sdk.BookingApproved, approved.Status)

	_, err = servicerClient.RejectBooking(ctx, booking.ID)
	assert.Equal(t, "Can only reject pending bookings", sdk.UserMessage(err))

	cancelled, err := userClient.CancelBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, sdk.BookingCancelled, cancelled.Status)

	mine, err := userClient.MyBookings(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, sdk.BookingCancelled, mine[0].Status)
}

func TestClient_CreateBookingValidatesWindow(t *testing.T) {
	f := newFixture(t)
	start := mustTime(t, "2030-03-01T09:00:00Z")

	_, err := f.clientFor(f.user).CreateBooking(context.Background(), sdk.BookingInput{
		ResourceID: 1,
		StartTime:  start,
		EndTime:    start,
	})
	assert.Equal(t, "end time must be after start time", sdk.UserMessage(err))
	assert.Empty(t, f.srv.Requests())
}

func TestClient_ServicerCatalogue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := f.clientFor(f.servicer)

	category, err := client.CreateCategory(ctx, sdk.CategoryInput{Name: "Labs", Description: "Computer labs"})
	require.NoError(t, err)
	assert.Equal(t, "Sam Servicer", category.ServicerName)

	capacity := 30
	resource, err := client.CreateResource(ctx, sdk.ResourceInput{Name: "Lab 1", CategoryID: category.ID, Capacity: &capacity})
	require.NoError(t, err)
	assert.True(t, resource.IsAvailable)
	assert.Equal(t, "Labs", resource.CategoryName)

	unavailable := false
	resource, err = client.UpdateResource(ctx, resource.ID, sdk.ResourceInput{Name: "Lab 1", CategoryID: category.ID, IsAvailable: &unavailable})
	require.NoError(t, err)
	assert.False(t, resource.IsAvailable)

	updated, err := client.UpdateCategory(ctx, category.ID, sdk.CategoryInput{Name: "Labs & Studios"})
	require.NoError(t, err)
	assert.Equal(t, "Labs & Studios", updated.Name)
	assert.Equal(t, 1, updated.ResourceCount)

	mine, err := client.MyResources(ctx)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.NoError(t, client.DeleteResource(ctx, resource.ID))
	mine, err = client.MyResources(ctx)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestClient_DeleteCategoryWithResources(t *testing.T) {
	f := newFixture(t)
	category := f.srv.AddCategory(f.servicer.ID, "Rooms", "")
	f.srv.AddResource(category.ID, "Room A", "")

	err := f.clientFor(f.servicer).DeleteCategory(context.Background(), category.ID)
	require.NoError(t, err)
	assert.False(t, f.srv.HasCategory(category.ID))
}

func TestClient_ServicerEndpointsRejectUsers(t *testing.T) {
	f := newFixture(t)

	_, err := f.clientFor(f.user).MyCategories(context.Background())
	var apiErr *sdk.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "Access denied", apiErr.Message)
}

func TestClient_Dashboard(t *testing.T) {
	f := newFixture(t)
	rooms := f.srv.AddCategory(f.servicer.ID, "Rooms", "")
	f.srv.AddCategory(f.servicer.ID, "Vehicles", "")
	roomA := f.srv.AddResource(rooms.ID, "Room A", "Floor 1")
	f.srv.AddResource(rooms.ID, "Room B", "Floor 2")

	start := mustTime(t, "2030-03-01T09:00:00Z")
	f.srv.AddBooking(roomA.ID, f.user.ID, start, start.Add(time.Hour), "PENDING")
	f.srv.AddBooking(roomA.ID, f.user.ID, start.Add(2*time.Hour), start.Add(3*time.Hour), "APPROVED")

	// Another servicer's catalogue stays out of the counts.
	other := f.srv.AddUser("Olga", "olga@example.com", testPassword, "SERVICER")
	f.srv.AddCategory(other.ID, "Boats", "")

	summary, err := f.clientFor(f.servicer).Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Categories)
	assert.Equal(t, 2, summary.Resources)
	assert.Equal(t, 2, summary.AvailableResources)
	assert.Equal(t, 2, summary.Bookings)
	assert.Equal(t, 1, summary.Pending)
	assert.Equal(t, 1, summary.Approved)
	require.Len(t, summary.PendingRequests, 1)
	assert.Equal(t, "Room A", summary.PendingRequests[0].ResourceName)
}
