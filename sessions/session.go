package sessions

import (
	"github.com/jrsteele09/go-finance-client/users"
)

// State is where the session is in its lifecycle.
// Initializing moves to Unauthenticated or Authenticated once; Authenticated returns to
// Unauthenticated on logout or when the session is forcibly cleared.
type State int

const (
	Initializing State = iota
	Unauthenticated
	Authenticated
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Unauthenticated:
		return "unauthenticated"
	case Authenticated:
		return "authenticated"
	}
	return "unknown"
}

// Snapshot is a point-in-time copy of the session, safe to hand to listeners
type Snapshot struct {
	State           State
	User            *users.User // nil when no user is known
	IsAuthenticated bool
	Loading         bool // true until the initial user fetch has resolved
}
