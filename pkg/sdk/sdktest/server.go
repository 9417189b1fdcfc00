// Package sdktest provides an in-memory fake of the booking backend's REST
// API for tests. It speaks the same {success, data, message} envelope and
// issues signed JWT bearer tokens.
package sdktest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the lifetime of tokens issued by the fake.
const DefaultTokenTTL = time.Hour

// User is an account known to the fake backend.
type User struct {
	ID       int64
	Name     string
	Email    string
	Password string
	Role     string
}

// Category is a stored category.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ServicerID  int64     `json:"servicerId"`
	CreatedAt   time.Time `json:"-"`
}

// Resource is a stored resource.
type Resource struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CategoryID  int64  `json:"categoryId"`
	Location    string `json:"location,omitempty"`
	Capacity    *int   `json:"capacity,omitempty"`
	IsAvailable bool   `json:"isAvailable"`
}

// Booking is a stored booking.
type Booking struct {
	ID         int64
	ResourceID int64
	UserID     int64
	StartTime  time.Time
	EndTime    time.Time
	Status     string
	Purpose    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Server is a running fake backend. URL is the API root to hand to
// sdk.NewClient.
type Server struct {
	*httptest.Server
	URL string

	mu         sync.Mutex
	signingKey []byte
	tokenTTL   time.Duration
	now        func() time.Time
	nextID     int64
	users      map[int64]*User
	categories map[int64]*Category
	resources  map[int64]*Resource
	bookings   map[int64]*Booking
	requests   []string
}

// NewServer starts a fake backend that is closed when t finishes.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		signingKey: []byte("sdktest-signing-key"),
		tokenTTL:   DefaultTokenTTL,
		now:        time.Now,
		users:      map[int64]*User{},
		categories: map[int64]*Category{},
		resources:  map[int64]*Resource{},
		bookings:   map[int64]*Booking{},
	}
	s.Server = httptest.NewServer(s.routes())
	s.URL = s.Server.URL + "/api"
	t.Cleanup(s.Close)
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.record)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/register", s.handleRegister)
		r.Get("/categories", s.handleListCategories)
		r.Get("/categories/{id}", s.handleGetCategory)
		r.Get("/resources", s.handleListResources)
		r.Get("/resources/{id}", s.handleGetResource)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Get("/bookings/my", s.handleMyBookings)
			r.Post("/bookings", s.handleCreateBooking)
			r.Put("/bookings/{id}/cancel", s.handleCancelBooking)

			r.Route("/servicer", func(r chi.Router) {
				r.Use(s.requireRole("SERVICER"))
				r.Get("/categories", s.handleMyCategories)
				r.Post("/categories", s.handleCreateCategory)
				r.Put("/categories/{id}", s.handleUpdateCategory)
				r.Delete("/categories/{id}", s.handleDeleteCategory)
				r.Get("/resources", s.handleMyResources)
				r.Post("/resources", s.handleCreateResource)
				r.Put("/resources/{id}", s.handleUpdateResource)
				r.Delete("/resources/{id}", s.handleDeleteResource)
				r.Get("/bookings", s.handleBookingRequests)
				r.Put("/bookings/{id}/approve", s.handleDecide("APPROVED", "approve", "approved"))
				r.Put("/bookings/{id}/reject", s.handleDecide("REJECTED", "reject", "rejected"))
			})
		})
	})
	return r
}

// SetClock overrides the clock used for token issue times and timestamps.
func (s *Server) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// SetTokenTTL changes the lifetime of tokens issued from now on. A negative
// value issues tokens that are already expired.
func (s *Server) SetTokenTTL(ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokenTTL = ttl
}

// RevokeTokens invalidates every token issued so far.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signingKey = append([]byte("rotated-"), s.signingKey...)
}

// Requests returns "METHOD /path" for every request served, in order.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// AddUser registers an account directly and returns it.
func (s *Server) AddUser(name, email, password, role string) User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &User{ID: s.id(), Name: name, Email: email, Password: password, Role: role}
	s.users[u.ID] = u
	return *u
}

// TokenFor issues a valid token for an existing account.
func (s *Server) TokenFor(user User) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, err := s.issueLocked(&user)
	if err != nil {
		panic(err)
	}
	return token
}

// AddCategory stores a category owned by servicerID.
func (s *Server) AddCategory(servicerID int64, name, description string) Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &Category{ID: s.id(), Name: name, Description: description, ServicerID: servicerID, CreatedAt: s.now()}
	s.categories[c.ID] = c
	return *c
}

// AddResource stores an available resource in categoryID.
func (s *Server) AddResource(categoryID int64, name, location string) Resource {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := &Resource{ID: s.id(), Name: name, CategoryID: categoryID, Location: location, IsAvailable: true}
	s.resources[r.ID] = r
	return *r
}

// AddBooking stores a booking with the given status.
func (s *Server) AddBooking(resourceID, userID int64, start, end time.Time, status string) Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := &Booking{ID: s.id(), ResourceID: resourceID, UserID: userID, StartTime: start, EndTime: end, Status: status, CreatedAt: s.now(), UpdatedAt: s.now()}
	s.bookings[b.ID] = b
	return *b
}

// BookingStatus returns the stored status of a booking, or "" when unknown.
func (s *Server) BookingStatus(id int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.bookings[id]; ok {
		return b.Status
	}
	return ""
}

// HasCategory reports whether a category id is still stored.
func (s *Server) HasCategory(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.categories[id]
	return ok
}

func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Method+" "+strings.TrimPrefix(r.URL.Path, "/api"))
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func writeOK(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, map[string]any{"success": true, "data": data, "message": message})
}

func writeFail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "message": message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

func sortedIDs[T any](m map[int64]T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// formatLocal renders t the way the backend serializes LocalDateTime: UTC
// wall time without a zone.
func formatLocal(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05")
}

var errUnauthorized = errors.New("unauthorized")

func parseToken(key []byte, raw string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, errUnauthorized
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, errUnauthorized
	}
	return id, nil
}
