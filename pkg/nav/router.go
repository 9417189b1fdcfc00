package nav

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

// MaxRedirects bounds how many redirects Resolve follows.
const MaxRedirects = 8

// ErrRedirectLoop is returned when resolving a path revisits a path or
// exceeds MaxRedirects.
var ErrRedirectLoop = errors.New("redirect loop")

// View names a screen.
type View string

const (
	ViewLanding         View = "landing"
	ViewLogin           View = "login"
	ViewRegister        View = "register"
	ViewBrowse          View = "browse"
	ViewMyBookings      View = "my-bookings"
	ViewDashboard       View = "dashboard"
	ViewCategories      View = "categories"
	ViewResources       View = "resources"
	ViewBookingRequests View = "booking-requests"
)

// Route binds a path to a view and its access requirement.
type Route struct {
	Path        string
	View        View
	Title       string
	Requirement Requirement
}

// DefaultRoutes is the application's route table. The order is the navbar
// order within each role.
var DefaultRoutes = []Route{
	{Path: RootPath, View: ViewLanding, Title: "Home", Requirement: Public},
	{Path: LoginPath, View: ViewLogin, Title: "Login", Requirement: Public},
	{Path: RegisterPath, View: ViewRegister, Title: "Register", Requirement: Public},
	{Path: BrowsePath, View: ViewBrowse, Title: "Browse", Requirement: RequireRole(sdk.RoleUser)},
	{Path: MyBookingsPath, View: ViewMyBookings, Title: "My Bookings", Requirement: RequireRole(sdk.RoleUser)},
	{Path: DashboardPath, View: ViewDashboard, Title: "Dashboard", Requirement: RequireRole(sdk.RoleServicer)},
	{Path: CategoriesPath, View: ViewCategories, Title: "Categories", Requirement: RequireRole(sdk.RoleServicer)},
	{Path: ResourcesPath, View: ViewResources, Title: "Resources", Requirement: RequireRole(sdk.RoleServicer)},
	{Path: BookingRequestsPath, View: ViewBookingRequests, Title: "Bookings", Requirement: RequireRole(sdk.RoleServicer)},
}

// Resolution is where a navigation ends up.
type Resolution struct {
	Route     Route
	Requested string
	// Redirects lists every path visited before Route, starting with the
	// requested one. Empty when the requested path rendered directly.
	Redirects []string
	// Reason is why the first redirect happened.
	Reason Reason
}

// Redirected reports whether the navigation landed somewhere else.
func (r Resolution) Redirected() bool {
	return len(r.Redirects) > 0
}

// Link is a navbar entry.
type Link struct {
	Title string
	Path  string
}

// Router maps paths to views through the guard.
type Router struct {
	guard   *Guard
	session sdk.SessionReader
	routes  []Route
	byPath  map[string]Route
}

// NewRouter builds a router over routes; nil means DefaultRoutes.
func NewRouter(session sdk.SessionReader, routes []Route) *Router {
	if routes == nil {
		routes = DefaultRoutes
	}
	byPath := make(map[string]Route, len(routes))
	for _, route := range routes {
		byPath[route.Path] = route
	}
	return &Router{
		guard:   NewGuard(session),
		session: session,
		routes:  routes,
		byPath:  byPath,
	}
}

// Guard returns the router's guard.
func (r *Router) Guard() *Guard {
	return r.guard
}

// Lookup finds the route for path after normalisation.
func (r *Router) Lookup(path string) (Route, bool) {
	route, ok := r.byPath[Clean(path)]
	return route, ok
}

// Decide evaluates a single navigation step for path.
func (r *Router) Decide(path string) Decision {
	route, ok := r.Lookup(path)
	if !ok {
		return redirect(RootPath, ReasonUnknownRoute)
	}
	if route.View == ViewLanding {
		if current := r.session.Current(); current != nil {
			return redirect(HomeFor(current.Identity.Role), ReasonSignedIn)
		}
	}
	return r.guard.Check(route.Requirement)
}

// Resolve follows redirects from path until a route renders.
func (r *Router) Resolve(path string) (Resolution, error) {
	res := Resolution{Requested: path}
	seen := map[string]bool{}
	current := Clean(path)

	for hops := 0; ; hops++ {
		if seen[current] || hops > MaxRedirects {
			return res, fmt.Errorf("%w: %s", ErrRedirectLoop, strings.Join(append(res.Redirects, current), " -> "))
		}
		seen[current] = true

		decision := r.Decide(current)
		if decision.Outcome == Render {
			route, _ := r.Lookup(current)
			res.Route = route
			return res, nil
		}
		if len(res.Redirects) == 0 {
			res.Reason = decision.Reason
		}
		res.Redirects = append(res.Redirects, current)
		current = Clean(decision.Target)
	}
}

// Links returns the navbar entries for the current session.
func (r *Router) Links() []Link {
	current := r.session.Current()
	var links []Link
	for _, route := range r.routes {
		if current == nil {
			if route.View == ViewLogin || route.View == ViewRegister {
				links = append(links, Link{Title: route.Title, Path: route.Path})
			}
			continue
		}
		if role, ok := route.Requirement.Role(); ok && role == current.Identity.Role {
			links = append(links, Link{Title: route.Title, Path: route.Path})
		}
	}
	return links
}

// Routes returns the route table.
func (r *Router) Routes() []Route {
	return append([]Route(nil), r.routes...)
}

// Clean normalises a user-typed path: leading slash, no trailing slash, no
// query or fragment.
func Clean(path string) string {
	path = strings.TrimSpace(path)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = "/" + strings.Trim(path, "/")
	return path
}
