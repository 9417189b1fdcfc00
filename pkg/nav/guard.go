// Package nav decides which view a session may see. Routes declare an access
// requirement; the Guard evaluates it against live session state and the
// Router applies the result, following redirects until a view renders.
package nav

import (
	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

// Well-known paths.
const (
	RootPath     = "/"
	LoginPath    = "/login"
	RegisterPath = "/register"

	BrowsePath          = "/user/browse"
	MyBookingsPath      = "/user/my-bookings"
	DashboardPath       = "/servicer/dashboard"
	CategoriesPath      = "/servicer/categories"
	ResourcesPath       = "/servicer/resources"
	BookingRequestsPath = "/servicer/bookings"
)

type requirementKind int

const (
	kindPublic requirementKind = iota
	kindAnyRole
	kindRole
)

// Requirement is the access rule attached to a route.
type Requirement struct {
	kind requirementKind
	role sdk.Role
}

var (
	// Public routes render for everyone.
	Public = Requirement{kind: kindPublic}
	// AnyRole routes render for any signed-in account.
	AnyRole = Requirement{kind: kindAnyRole}
)

// RequireRole builds a requirement satisfied only by role.
func RequireRole(role sdk.Role) Requirement {
	return Requirement{kind: kindRole, role: role}
}

// Role returns the required role, if the requirement names one.
func (r Requirement) Role() (sdk.Role, bool) {
	return r.role, r.kind == kindRole
}

// IsPublic reports whether the requirement admits signed-out visitors.
func (r Requirement) IsPublic() bool {
	return r.kind == kindPublic
}

func (r Requirement) String() string {
	switch r.kind {
	case kindPublic:
		return "public"
	case kindAnyRole:
		return "authenticated"
	default:
		return string(r.role)
	}
}

// HomeFor returns the landing path for role.
func HomeFor(role sdk.Role) string {
	switch role {
	case sdk.RoleServicer:
		return DashboardPath
	case sdk.RoleUser:
		return BrowsePath
	default:
		return RootPath
	}
}

// Outcome is what the router should do with a route.
type Outcome int

const (
	Render Outcome = iota
	Redirect
)

func (o Outcome) String() string {
	if o == Redirect {
		return "redirect"
	}
	return "render"
}

// Reason explains a redirect.
type Reason int

const (
	ReasonNone Reason = iota
	// ReasonUnauthenticated: the route needs a session and none is held.
	ReasonUnauthenticated
	// ReasonWrongRole: a session is held but its role does not match.
	ReasonWrongRole
	// ReasonUnknownRoute: the path is not in the route table.
	ReasonUnknownRoute
	// ReasonSignedIn: the path only makes sense signed out.
	ReasonSignedIn
)

// Decision is the result of evaluating a route.
type Decision struct {
	Outcome Outcome
	Target  string
	Reason  Reason
}

func render() Decision {
	return Decision{Outcome: Render}
}

func redirect(target string, reason Reason) Decision {
	return Decision{Outcome: Redirect, Target: target, Reason: reason}
}

// Guard evaluates requirements against the current session. It holds no
// state of its own, so every Check observes the latest login or logout.
type Guard struct {
	session sdk.SessionReader
}

// NewGuard returns a guard reading session.
func NewGuard(session sdk.SessionReader) *Guard {
	return &Guard{session: session}
}

// Check decides whether a route with requirement req renders. Signed-out
// visitors of protected routes go to the login page; the requested path is
// not remembered. Signed-in accounts with the wrong role go to their own
// home.
func (g *Guard) Check(req Requirement) Decision {
	if req.kind == kindPublic {
		return render()
	}
	if !g.session.IsAuthenticated() {
		return redirect(LoginPath, ReasonUnauthenticated)
	}
	if req.kind == kindRole && !g.session.HasRole(req.role) {
		current := g.session.Current()
		if current == nil {
			return redirect(LoginPath, ReasonUnauthenticated)
		}
		return redirect(HomeFor(current.Identity.Role), ReasonWrongRole)
	}
	return render()
}
