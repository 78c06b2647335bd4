package domain

import "fmt"

// Screen is a named state of the dashboard's onboarding flow.
type Screen string

const (
	ScreenPasscode    Screen = "passcode"
	ScreenAccountType Screen = "account_type"
	ScreenLogin       Screen = "login"
	ScreenDashboard   Screen = "dashboard"
)

// InitialScreen is where every fresh client starts.
const InitialScreen = ScreenPasscode

var screens = []Screen{ScreenPasscode, ScreenAccountType, ScreenLogin, ScreenDashboard}

// screenTransitions is the complete flow. A screen absent from a list is
// unreachable from that state; there is no fallthrough default.
var screenTransitions = map[Screen][]Screen{
	ScreenPasscode:    {ScreenAccountType},
	ScreenAccountType: {ScreenLogin, ScreenPasscode},
	ScreenLogin:       {ScreenDashboard, ScreenAccountType},
	ScreenDashboard:   {ScreenPasscode},
}

// Screens returns every screen in flow order.
func Screens() []Screen {
	out := make([]Screen, len(screens))
	copy(out, screens)
	return out
}

// ParseScreen converts a raw name into a Screen.
func ParseScreen(s string) (Screen, error) {
	for _, known := range screens {
		if Screen(s) == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScreen, s)
}

// CanTransitionTo reports whether the flow allows moving from s to next.
func (s Screen) CanTransitionTo(next Screen) bool {
	for _, allowed := range screenTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transitions returns a copy of the flow table.
func Transitions() map[Screen][]Screen {
	out := make(map[Screen][]Screen, len(screenTransitions))
	for from, to := range screenTransitions {
		out[from] = append([]Screen(nil), to...)
	}
	return out
}

// NextScreen validates a move and returns the target, or ErrInvalidTransition.
func NextScreen(from, to Screen) (Screen, error) {
	if !from.CanTransitionTo(to) {
		return from, fmt.Errorf("%w (from %s to %s)", ErrInvalidTransition, from, to)
	}
	return to, nil
}
