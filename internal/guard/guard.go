// Package guard decides what a caller sees on a protected route: nothing
// yet, the login page, an access-denied notice, or the content itself.
//
// Decide is shared by the server middleware and the draftctl commands so
// both surfaces gate routes the same way.
package guard

import id "festdraft/pkg/domain"

// Route paths of the landing surface.
const (
	PathLogin = "/login"
	PathAdmin = "/admin"
	PathTeam  = "/team"
)

// GateState is the part of the session gate a guard looks at.
type GateState struct {
	Loading       bool
	Authenticated bool
	Role          id.Role
}

// Requirement is what a route asks of its caller.
type Requirement struct {
	Admin bool
}

var (
	RequireSession = Requirement{}
	RequireAdmin   = Requirement{Admin: true}
)

// Kind is the guard's verdict.
type Kind int

const (
	// Placeholder renders nothing while the gate is still loading.
	Placeholder Kind = iota
	// Redirect sends the caller to Location, replacing the current history
	// entry when Replace is set.
	Redirect
	// Denied shows an access-denied notice; Location is the caller's
	// landing route.
	Denied
	// Render shows the protected content.
	Render
)

func (k Kind) String() string {
	switch k {
	case Placeholder:
		return "placeholder"
	case Redirect:
		return "redirect"
	case Denied:
		return "denied"
	case Render:
		return "render"
	default:
		return "unknown"
	}
}

// Outcome is a guard decision.
type Outcome struct {
	Kind     Kind
	Location string
	Replace  bool
}

// Decide applies req to state. A loading gate never redirects, so a
// rehydrating session is not bounced to the login page.
func Decide(state GateState, req Requirement) Outcome {
	switch {
	case state.Loading:
		return Outcome{Kind: Placeholder}
	case !state.Authenticated:
		return Outcome{Kind: Redirect, Location: PathLogin, Replace: true}
	case req.Admin && !state.Role.IsAdmin():
		return Outcome{Kind: Denied, Location: Landing(state.Role)}
	default:
		return Outcome{Kind: Render}
	}
}

// Landing is the home route for role.
func Landing(role id.Role) string {
	if role.IsAdmin() {
		return PathAdmin
	}
	return PathTeam
}
