package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ro-aviation/skyhub/internal/notify"
)

func TestDashboardSubstitutesLoginWhileGateClosed(t *testing.T) {
	state := NewState("secret", nil)

	rendered := state.Navigate(ViewStaffDashboard)
	assert.Equal(t, ViewStaffLogin, rendered)
	assert.Equal(t, ViewStaffDashboard, state.Requested(), "substitution is not a redirect")
}

func TestLoginSuccessLandsOnDashboard(t *testing.T) {
	state := NewState("secret", nil)
	state.Navigate(ViewStaffDashboard)

	require.True(t, state.AttemptLogin("secret"))
	assert.True(t, state.Authenticated())
	assert.Equal(t, ViewStaffDashboard, state.Resolved())
	assert.Empty(t, state.LoginError())
}

func TestLoginFailureKeepsGateClosed(t *testing.T) {
	notifier := notify.NewNotifierWithDelay(time.Hour)
	state := NewState("secret", notifier)
	state.Navigate(ViewStaffDashboard)

	require.False(t, state.AttemptLogin("guess"))
	assert.False(t, state.Authenticated())
	assert.Equal(t, ViewStaffLogin, state.Resolved())
	assert.Equal(t, "Invalid password. Please try again.", state.LoginError())

	notice := notifier.Current()
	require.True(t, notice.Visible)
	assert.Equal(t, notify.LevelError, notice.Level)
}

func TestNavigatingAwayClearsLoginError(t *testing.T) {
	state := NewState("secret", nil)
	state.Navigate(ViewStaffDashboard)
	state.AttemptLogin("guess")
	require.NotEmpty(t, state.LoginError())

	state.Navigate(ViewHome)
	assert.Empty(t, state.LoginError())
}

func TestLogoutReturnsHome(t *testing.T) {
	state := NewState("secret", nil)
	state.Navigate(ViewStaffDashboard)
	require.True(t, state.AttemptLogin("secret"))

	state.Logout()
	assert.False(t, state.Authenticated())
	assert.Equal(t, ViewHome, state.Resolved())

	// The gate stays closed for the next dashboard request.
	assert.Equal(t, ViewStaffLogin, state.Navigate(ViewStaffDashboard))
}

func TestParseViewFallsBackToHome(t *testing.T) {
	assert.Equal(t, ViewPhotoAlbum, ParseView("photoAlbum"))
	assert.Equal(t, ViewHome, ParseView("adminPanel"))
}
