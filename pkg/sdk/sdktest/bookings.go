package sdktest

import (
	"net/http"
	"time"
)

type bookingView struct {
	ID               int64  `json:"id"`
	ResourceID       int64  `json:"resourceId"`
	ResourceName     string `json:"resourceName"`
	ResourceLocation string `json:"resourceLocation"`
	UserID           int64  `json:"userId"`
	UserName         string `json:"userName"`
	UserEmail        string `json:"userEmail"`
	StartTime        string `json:"startTime"`
	EndTime          string `json:"endTime"`
	Status           string `json:"status"`
	Purpose          string `json:"purpose,omitempty"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
}

func (s *Server) bookingViewLocked(b *Booking) bookingView {
	view := bookingView{
		ID:         b.ID,
		ResourceID: b.ResourceID,
		UserID:     b.UserID,
		StartTime:  formatLocal(b.StartTime),
		EndTime:    formatLocal(b.EndTime),
		Status:     b.Status,
		Purpose:    b.Purpose,
		CreatedAt:  formatLocal(b.CreatedAt),
		UpdatedAt:  formatLocal(b.UpdatedAt),
	}
	if res, ok := s.resources[b.ResourceID]; ok {
		view.ResourceName, view.ResourceLocation = res.Name, res.Location
	}
	if u, ok := s.users[b.UserID]; ok {
		view.UserName, view.UserEmail = u.Name, u.Email
	}
	return view
}

func (s *Server) handleMyBookings(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	views := []bookingView{}
	for _, id := range sortedIDs(s.bookings) {
		if b := s.bookings[id]; b.UserID == me.ID {
			views = append(views, s.bookingViewLocked(b))
		}
	}
	writeOK(w, http.StatusOK, views, "")
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ResourceID int64     `json:"resourceId"`
		StartTime  time.Time `json:"startTime"`
		EndTime    time.Time `json:"endTime"`
		Purpose    string    `json:"purpose"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeFail(w, http.StatusBadRequest, err.Error())
		return
	}
	me := currentUser(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.resources[body.ResourceID]
	switch {
	case !ok:
		writeFail(w, http.StatusBadRequest, "Resource not found")
		return
	case !res.IsAvailable:
		writeFail(w, http.StatusBadRequest, "Resource is not available for booking")
		return
	case body.StartTime.After(body.EndTime):
		writeFail(w, http.StatusBadRequest, "Start time must be before end time")
		return
	}
	for _, other := range s.bookings {
		if other.ResourceID != res.ID || (other.Status != "PENDING" && other.Status != "APPROVED") {
			continue
		}
		if other.StartTime.Before(body.EndTime) && body.StartTime.Before(other.EndTime) {
			writeFail(w, http.StatusBadRequest, "Resource is already booked for the selected time slot")
			return
		}
	}

	now := s.now()
	b := &Booking{
		ID:         s.id(),
		ResourceID: res.ID,
		UserID:     me.ID,
		StartTime:  body.StartTime,
		EndTime:    body.EndTime,
		Status:     "PENDING",
		Purpose:    body.Purpose,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.bookings[b.ID] = b
	writeOK(w, http.StatusCreated, s.bookingViewLocked(b), "Booking created successfully")
}

func (s *Server) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeFail(w, http.StatusBadRequest, err.Error())
		return
	}
	me := currentUser(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	switch {
	case !ok:
		writeFail(w, http.StatusBadRequest, "Booking not found")
		return
	case b.UserID != me.ID:
		writeFail(w, http.StatusBadRequest, "You can only cancel your own bookings")
		return
	case b.Status == "CANCELLED":
		writeFail(w, http.StatusBadRequest, "Booking is already cancelled")
		return
	}
	b.Status, b.UpdatedAt = "CANCELLED", s.now()
	writeOK(w, http.StatusOK, s.bookingViewLocked(b), "Booking cancelled successfully")
}

func (s *Server) handleBookingRequests(w http.ResponseWriter, r *http.Request) {
	pendingOnly := r.URL.Query().Get("pendingOnly") == "true"
	me := currentUser(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	views := []bookingView{}
	for _, id := range sortedIDs(s.bookings) {
		b := s.bookings[id]
		res, ok := s.resources[b.ResourceID]
		if !ok || s.resourceViewLocked(res).ServicerID != me.ID {
			continue
		}
		if pendingOnly && b.Status != "PENDING" {
			continue
		}
		views = append(views, s.bookingViewLocked(b))
	}
	writeOK(w, http.StatusOK, views, "")
}

func (s *Server) handleDecide(status, verb, done string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeFail(w, http.StatusBadRequest, err.Error())
			return
		}
		me := currentUser(r)
		s.mu.Lock()
		defer s.mu.Unlock()
		b, ok := s.bookings[id]
		if !ok {
			writeFail(w, http.StatusBadRequest, "Booking not found")
			return
		}
		res, ok := s.resources[b.ResourceID]
		if !ok || s.resourceViewLocked(res).ServicerID != me.ID {
			writeFail(w, http.StatusBadRequest, "You can only "+verb+" bookings for your own resources")
			return
		}
		if b.Status != "PENDING" {
			writeFail(w, http.StatusBadRequest, "Can only "+verb+" pending bookings")
			return
		}
		b.Status, b.UpdatedAt = status, s.now()
		writeOK(w, http.StatusOK, s.bookingViewLocked(b), "Booking "+done)
	}
}
