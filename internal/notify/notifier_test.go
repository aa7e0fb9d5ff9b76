package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowReplacesPreviousNotice(t *testing.T) {
	notifier := NewNotifierWithDelay(time.Hour)
	notifier.Success("first")
	notifier.Error("second")

	notice := notifier.Current()
	require.True(t, notice.Visible)
	assert.Equal(t, LevelError, notice.Level)
	assert.Equal(t, "second", notice.Text)
}

func TestNoticeHidesAfterDelay(t *testing.T) {
	notifier := NewNotifierWithDelay(20 * time.Millisecond)
	notifier.Success("saved")
	require.True(t, notifier.Current().Visible)

	assert.Eventually(t, func() bool {
		return !notifier.Current().Visible
	}, time.Second, 5*time.Millisecond)
}

func TestSecondShowRestartsHideTimer(t *testing.T) {
	notifier := NewNotifierWithDelay(60 * time.Millisecond)
	notifier.Success("first")
	time.Sleep(40 * time.Millisecond)
	notifier.Success("second")

	// The first timer would have fired by now if Show did not restart it.
	time.Sleep(40 * time.Millisecond)
	assert.True(t, notifier.Current().Visible)

	assert.Eventually(t, func() bool {
		return !notifier.Current().Visible
	}, time.Second, 5*time.Millisecond)
}

func TestStaleTimerCannotClearNewerNotice(t *testing.T) {
	// Shows landing right at the previous notice's expiry race against
	// the old hide timer, which may already have fired and be waiting
	// on the lock. The fresh notice must survive that stale hide.
	notifier := NewNotifierWithDelay(20 * time.Millisecond)
	for i := 0; i < 30; i++ {
		notifier.Success("notice")
		time.Sleep(5 * time.Millisecond)
		require.True(t, notifier.Current().Visible,
			"notice hidden before its own delay elapsed (iteration %d)", i)
		time.Sleep(16 * time.Millisecond)
	}
}

func TestHideIsIdempotent(t *testing.T) {
	notifier := NewNotifierWithDelay(time.Hour)
	notifier.Hide()
	notifier.Error("broken")
	notifier.Hide()
	notifier.Hide()
	assert.False(t, notifier.Current().Visible)
}
