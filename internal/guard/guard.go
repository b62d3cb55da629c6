// package guard decides whether a navigation target is reachable with
// the current session, redirecting unauthenticated visits to the login
// view while remembering where they came from.
package guard

// Route names a navigable view.
type Route string

const (
	RouteList       Route = "/musics"
	RouteDeleted    Route = "/musics/deleted"
	RouteLogin      Route = "/login"
	RouteCreateUser Route = "/create-user"
)

// protected lists the routes that require an authenticated session.
var protected = map[Route]bool{
	RouteList:    true,
	RouteDeleted: true,
}

// AuthChecker reports whether a usable session is present.
type AuthChecker interface {
	IsAuthenticated() bool
}

// Decision is the outcome of resolving a navigation target. From is set
// only when the visit was redirected to login, and holds the route the
// user originally asked for.
type Decision struct {
	Route Route
	From  Route
}

// Redirected reports whether the target was replaced with the login view.
func (d Decision) Redirected() bool {
	return d.From != ""
}

// Guard resolves navigation targets against a session.
type Guard struct {
	session AuthChecker
}

func New(session AuthChecker) *Guard {
	return &Guard{session: session}
}

// Resolve normalizes the target and applies the protection rules. An
// empty or root target means the main listing. Unknown routes resolve
// to the main listing as well, which then goes through the same check.
func (g *Guard) Resolve(target Route) Decision {
	if target == "" || target == "/" {
		target = RouteList
	}
	if !protected[target] && target != RouteLogin && target != RouteCreateUser {
		target = RouteList
	}

	if protected[target] && !g.session.IsAuthenticated() {
		return Decision{Route: RouteLogin, From: target}
	}

	return Decision{Route: target}
}
