// Package notify holds the single-slot transient notification used by the site.
package notify

import (
	"sync"
	"time"
)

// Level tags a notice as a success or an error banner.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// DefaultDelay is how long a notice stays visible before it hides itself.
const DefaultDelay = 4 * time.Second

// Notice is the current state of the notification slot.
type Notice struct {
	Visible bool   `json:"visible"`
	Level   Level  `json:"level,omitempty"`
	Text    string `json:"text,omitempty"`
}

// Notifier keeps at most one visible notice. Showing a new notice replaces
// the previous one and restarts the hide timer.
//
// Each notice carries a generation number. A hide timer that fired for an
// older generation may already be waiting on the mutex when a new Show
// lands; it must not clear the newer notice, so expiry checks the
// generation before touching the slot.
type Notifier struct {
	mu         sync.Mutex
	delay      time.Duration
	notice     Notice
	timer      *time.Timer
	generation uint64
}

func NewNotifier() *Notifier {
	return NewNotifierWithDelay(DefaultDelay)
}

// NewNotifierWithDelay exists so tests can run with a short hide delay.
func NewNotifierWithDelay(delay time.Duration) *Notifier {
	return &Notifier{delay: delay}
}

// Show replaces whatever notice is currently visible and schedules the hide.
func (notifier *Notifier) Show(level Level, text string) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if notifier.timer != nil {
		notifier.timer.Stop()
	}
	notifier.generation++
	generation := notifier.generation
	notifier.notice = Notice{Visible: true, Level: level, Text: text}
	notifier.timer = time.AfterFunc(notifier.delay, func() {
		notifier.expire(generation)
	})
}

// expire hides the notice its timer was armed for. A no-op when the
// slot has been replaced since.
func (notifier *Notifier) expire(generation uint64) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if generation != notifier.generation {
		return
	}
	notifier.clearLocked()
}

func (notifier *Notifier) Success(text string) { notifier.Show(LevelSuccess, text) }

func (notifier *Notifier) Error(text string) { notifier.Show(LevelError, text) }

// Hide clears the slot. Calling it on an already hidden notifier is harmless.
func (notifier *Notifier) Hide() {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.generation++
	notifier.clearLocked()
}

func (notifier *Notifier) clearLocked() {
	if notifier.timer != nil {
		notifier.timer.Stop()
		notifier.timer = nil
	}
	notifier.notice = Notice{}
}

// Current returns a copy of the notification slot.
func (notifier *Notifier) Current() Notice {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return notifier.notice
}
