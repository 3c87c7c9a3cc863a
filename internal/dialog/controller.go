// Package dialog implements the form lifecycle state machine behind
// the add/edit flows. A controller coordinates one open/close cycle:
// it validates the draft, runs the mutation, and routes the outcome to
// its notifier.
package dialog

import (
	"context"
	"errors"
	"sync"

	"peopledex/internal/notify"
	"peopledex/internal/validation"
	"peopledex/pkg/logger"
)

type Mode int

const (
	ModeAdd Mode = iota
	ModeEdit
)

type State int

const (
	StateClosed State = iota
	StateOpen
	StateSubmitting
)

var (
	// ErrSubmitInFlight rejects a second submit while one is running.
	ErrSubmitInFlight = errors.New("dialog: a submission is already in flight")

	// ErrNotOpen rejects a submit against a closed dialog.
	ErrNotOpen = errors.New("dialog: not open")

	// ErrInvalidDraft signals that validation failed; the field errors
	// stay attached to the open dialog.
	ErrInvalidDraft = errors.New("dialog: draft failed validation")
)

// Config wires a controller to its collaborators. Validate inspects a
// draft and returns field errors (nil when valid); Action performs the
// actual mutation.
type Config[F any, R any] struct {
	Validate       func(*F) validation.FieldErrors
	Action         func(context.Context, *F) (*R, error)
	SuccessMessage func(*R) string
	ErrorMessage   string
	Notifier       *notify.Notifier
}

type Controller[F any, R any] struct {
	cfg Config[F, R]

	mu          sync.Mutex
	state       State
	mode        Mode
	draft       *F
	fieldErrors validation.FieldErrors
}

func NewController[F any, R any](cfg Config[F, R]) *Controller[F, R] {
	return &Controller[F, R]{cfg: cfg}
}

// Open transitions to the open state. A non-nil initial value seeds an
// edit draft; nil opens an empty add form.
func (c *Controller[F, R]) Open(initial *F) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if initial != nil {
		c.mode = ModeEdit
		c.draft = initial
	} else {
		c.mode = ModeAdd
		c.draft = new(F)
	}
	c.state = StateOpen
	c.fieldErrors = nil
}

// Submit validates the draft and runs the action. On success the
// dialog closes and a success notification is raised; on failure it
// stays open with the draft intact so the user can retry. Only one
// submission may be in flight at a time.
func (c *Controller[F, R]) Submit(ctx context.Context, draft *F) (*R, error) {
	c.mu.Lock()
	switch c.state {
	case StateSubmitting:
		c.mu.Unlock()
		return nil, ErrSubmitInFlight
	case StateClosed:
		c.mu.Unlock()
		return nil, ErrNotOpen
	}
	c.state = StateSubmitting
	c.draft = draft
	c.fieldErrors = nil
	c.mu.Unlock()

	if fields := c.cfg.Validate(draft); fields != nil {
		c.mu.Lock()
		c.state = StateOpen
		c.fieldErrors = fields
		c.mu.Unlock()
		return nil, ErrInvalidDraft
	}

	result, err := c.cfg.Action(ctx, draft)
	if err != nil {
		// The cause is logged for diagnostics; the notification stays
		// generic.
		logger.WithError(err).Error("dialog action failed")
		c.cfg.Notifier.Error(c.cfg.ErrorMessage)
		c.mu.Lock()
		c.state = StateOpen
		c.mu.Unlock()
		return nil, err
	}

	c.cfg.Notifier.Success(c.cfg.SuccessMessage(result))
	c.mu.Lock()
	c.state = StateClosed
	c.draft = nil
	c.mu.Unlock()
	return result, nil
}

// Cancel discards the draft and closes the dialog without touching the
// store. An in-flight submission cannot be cancelled and must finish.
func (c *Controller[F, R]) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateOpen {
		return
	}
	c.state = StateClosed
	c.draft = nil
	c.fieldErrors = nil
	c.cfg.Notifier.Dismiss()
}

// Close tears the controller down, cancelling any pending notification
// expiry.
func (c *Controller[F, R]) Close() {
	c.mu.Lock()
	c.state = StateClosed
	c.draft = nil
	c.fieldErrors = nil
	c.mu.Unlock()
	c.cfg.Notifier.Close()
}

// State returns the current lifecycle state.
func (c *Controller[F, R]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Mode reports whether the dialog was opened for adding or editing.
func (c *Controller[F, R]) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Draft returns the current draft, or nil when the dialog is closed.
func (c *Controller[F, R]) Draft() *F {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// FieldErrors returns the errors from the last rejected submit.
func (c *Controller[F, R]) FieldErrors() validation.FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fieldErrors
}
