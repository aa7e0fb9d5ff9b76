// Package app carries the process-wide UI state of the site: which view
// is active and whether the staff gate has been passed.
package app

import (
	"crypto/subtle"
	"sync"

	"github.com/ro-aviation/skyhub/internal/notify"
)

// View names one page of the site.
type View string

const (
	ViewHome           View = "home"
	ViewBooking        View = "booking"
	ViewCareers        View = "careers"
	ViewPhotoAlbum     View = "photoAlbum"
	ViewSupport        View = "support"
	ViewStaffLogin     View = "staffLogin"
	ViewStaffDashboard View = "staffDashboard"
)

var views = map[View]bool{
	ViewHome:           true,
	ViewBooking:        true,
	ViewCareers:        true,
	ViewPhotoAlbum:     true,
	ViewSupport:        true,
	ViewStaffLogin:     true,
	ViewStaffDashboard: true,
}

// ParseView resolves a view name; unknown names fall back to home.
func ParseView(name string) View {
	view := View(name)
	if views[view] {
		return view
	}
	return ViewHome
}

const wrongAccessCodeMessage = "Invalid password. Please try again."

// State is the view router plus the staff gate. The requested view and
// the rendered view can differ: asking for the staff dashboard without
// having passed the gate renders the login view in its place, and the
// dashboard appears as soon as the gate is passed, with no second
// navigation.
type State struct {
	mu            sync.Mutex
	current       View
	authenticated bool
	loginError    string
	accessCode    string
	notifier      *notify.Notifier
}

func NewState(accessCode string, notifier *notify.Notifier) *State {
	return &State{
		current:    ViewHome,
		accessCode: accessCode,
		notifier:   notifier,
	}
}

// Navigate switches the requested view and returns what will render.
func (state *State) Navigate(view View) View {
	state.mu.Lock()
	defer state.mu.Unlock()
	state.current = view
	if view != ViewStaffLogin {
		state.loginError = ""
	}
	return state.resolvedLocked()
}

// Requested is the view that was navigated to, gate or no gate.
func (state *State) Requested() View {
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.current
}

// Resolved is the view that actually renders.
func (state *State) Resolved() View {
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.resolvedLocked()
}

func (state *State) resolvedLocked() View {
	if state.current == ViewStaffDashboard && !state.authenticated {
		return ViewStaffLogin
	}
	return state.current
}

// AttemptLogin checks the submitted access code against the configured
// one. Success opens the gate and lands on the dashboard; failure
// records an inline error and raises an error notice.
func (state *State) AttemptLogin(code string) bool {
	state.mu.Lock()
	defer state.mu.Unlock()
	if subtle.ConstantTimeCompare([]byte(code), []byte(state.accessCode)) == 1 {
		state.authenticated = true
		state.loginError = ""
		state.current = ViewStaffDashboard
		return true
	}
	state.loginError = wrongAccessCodeMessage
	if state.notifier != nil {
		state.notifier.Error(wrongAccessCodeMessage)
	}
	return false
}

// Logout closes the gate and returns to the home view.
func (state *State) Logout() {
	state.mu.Lock()
	defer state.mu.Unlock()
	state.authenticated = false
	state.loginError = ""
	state.current = ViewHome
}

func (state *State) Authenticated() bool {
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.authenticated
}

// LoginError is the inline message shown under the login form.
func (state *State) LoginError() string {
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.loginError
}
