package audit

import (
	"context"
	"errors"
	"fmt"
	"os/user"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Event statuses.
const (
	StatusStarted = "started"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Event is one audit entry for an instrumented operation. Arguments and
// results of the operation are never recorded.
type Event struct {
	Kind      string    `json:"kind"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
	Action    string    `json:"action"`
	Status    string    `json:"status"`
	ErrorType string    `json:"error_type,omitempty"`
	Duration  string    `json:"duration,omitempty"`
}

// Hooks observe an operation. An error from Before stops the operation from
// running; errors from After and OnFailure are returned alongside its result.
type Hooks interface {
	Before(Event) error
	After(Event) error
	OnFailure(Event, error) error
}

// Operation runs functions under a fixed action name and notifies hooks.
type Operation struct {
	Action string
	hooks  []Hooks
	now    func() time.Time
	user   func() string
}

// Instrument returns an Operation for action that reports to hooks.
func Instrument(action string, hooks ...Hooks) *Operation {
	return &Operation{Action: action, hooks: hooks, now: time.Now, user: currentUser}
}

func currentUser() string {
	u, err := user.Current()
	if err != nil || u.Username == "" {
		return "unknown"
	}
	return u.Username
}

// Run calls fn, bracketed by hook notifications.
func (o *Operation) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	_, err := Do(ctx, o, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// Do is Run for functions that return a value.
func Do[T any](ctx context.Context, o *Operation, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	started := o.now()
	ev := Event{
		ID:        uuid.NewString(),
		Timestamp: started.UTC(),
		User:      o.user(),
		Action:    o.Action,
		Status:    StatusStarted,
	}
	for _, h := range o.hooks {
		if err := h.Before(ev); err != nil {
			return zero, fmt.Errorf("audit %s: %w", o.Action, err)
		}
	}

	out, runErr := fn(ctx)

	ended := o.now()
	ev.Timestamp = ended.UTC()
	ev.Duration = ended.Sub(started).String()
	var hookErrs []error
	if runErr != nil {
		ev.Status = StatusFailed
		ev.ErrorType = fmt.Sprintf("%T", runErr)
		for _, h := range o.hooks {
			hookErrs = append(hookErrs, h.OnFailure(ev, runErr))
		}
		return out, errors.Join(append([]error{runErr}, hookErrs...)...)
	}
	ev.Status = StatusSuccess
	for _, h := range o.hooks {
		hookErrs = append(hookErrs, h.After(ev))
	}
	if err := errors.Join(hookErrs...); err != nil {
		return out, fmt.Errorf("audit %s: %w", o.Action, err)
	}
	return out, nil
}

// LoggerHooks mirrors operation events onto a structured logger.
type LoggerHooks struct {
	Logger zerolog.Logger
}

func (h LoggerHooks) Before(ev Event) error {
	h.Logger.Info().Str("id", ev.ID).Str("user", ev.User).Str("action", ev.Action).Msg("operation started")
	return nil
}

func (h LoggerHooks) After(ev Event) error {
	h.Logger.Info().Str("id", ev.ID).Str("action", ev.Action).Str("duration", ev.Duration).Msg("operation succeeded")
	return nil
}

func (h LoggerHooks) OnFailure(ev Event, err error) error {
	h.Logger.Warn().Err(err).Str("id", ev.ID).Str("action", ev.Action).Str("error_type", ev.ErrorType).Msg("operation failed")
	return nil
}
