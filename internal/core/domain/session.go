package domain

// SessionStatus is the lifecycle state of an access session.
type SessionStatus string

const (
	SessionUninitialized SessionStatus = "uninitialized"
	SessionAnonymous     SessionStatus = "anonymous"
	SessionAuthenticated SessionStatus = "authenticated"
)

// sessionTransitions lists the allowed status changes. Nothing returns to
// uninitialized once a restore or login has completed.
var sessionTransitions = map[SessionStatus][]SessionStatus{
	SessionUninitialized: {SessionAnonymous, SessionAuthenticated},
	SessionAnonymous:     {SessionAnonymous, SessionAuthenticated},
	SessionAuthenticated: {SessionAnonymous, SessionAuthenticated},
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	for _, allowed := range sessionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
