// Package notify implements the transient-message state machine behind
// mutation feedback. A notifier is either idle or showing exactly one
// notification; showing a new one replaces the old and restarts the
// expiry timer.
package notify

import (
	"sync"
	"time"

	"peopledex/internal/models"
)

// DefaultTTL matches the reference auto-dismiss duration.
const DefaultTTL = 2 * time.Second

type Notifier struct {
	mu      sync.Mutex
	ttl     time.Duration
	current *models.Notification
	timer   *time.Timer
	gen     uint64
	closed  bool
}

// NewNotifier creates an idle notifier. A non-positive ttl falls back
// to DefaultTTL.
func NewNotifier(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Notifier{ttl: ttl}
}

// Show transitions to Showing with the given message. Any pending
// expiry timer is cancelled and restarted, so notifications never
// stack.
func (n *Notifier) Show(kind models.NotificationKind, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return
	}

	n.stopTimer()
	n.current = &models.Notification{Kind: kind, Message: message}

	// The generation guard keeps a timer that fired just before being
	// replaced from clearing the newer notification.
	n.gen++
	gen := n.gen
	n.timer = time.AfterFunc(n.ttl, func() {
		n.expire(gen)
	})
}

// Success is shorthand for Show with a success kind.
func (n *Notifier) Success(message string) {
	n.Show(models.NotificationSuccess, message)
}

// Error is shorthand for Show with an error kind.
func (n *Notifier) Error(message string) {
	n.Show(models.NotificationError, message)
}

// Current returns the showing notification, or nil when idle.
func (n *Notifier) Current() *models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Dismiss clears the notification before its timer expires.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopTimer()
	n.current = nil
	n.gen++
}

// Close tears the notifier down. The pending timer is cancelled so no
// callback fires into a dead owner, and further Show calls are no-ops.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopTimer()
	n.current = nil
	n.closed = true
	n.gen++
}

func (n *Notifier) expire(gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if gen != n.gen {
		return
	}
	n.current = nil
	n.timer = nil
}

// stopTimer cancels the pending expiry; callers hold the lock.
func (n *Notifier) stopTimer() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}
