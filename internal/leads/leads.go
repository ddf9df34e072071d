// Package leads defines the event raised when a visitor submits one of the
// public forms, and fans it out to the components that react to it.
package leads

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Lead describes a freshly persisted form submission.
type Lead struct {
	Collection string    `json:"collection"`
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Summary    string    `json:"summary"`
	CreatedAt  time.Time `json:"created_at"`
}

// Notifier reacts to a new lead. Implementations must not block for long;
// the submitting request waits on them.
type Notifier interface {
	NotifyLead(ctx context.Context, lead Lead) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, lead Lead) error

// NotifyLead calls f.
func (f NotifierFunc) NotifyLead(ctx context.Context, lead Lead) error { return f(ctx, lead) }

// Fanout delivers a lead to several notifiers. Failures are logged and never
// reach the visitor: the lead is already stored.
type Fanout struct {
	notifiers []Notifier
	log       *zap.Logger
}

// NewFanout creates a Fanout. A nil logger is replaced with a no-op.
func NewFanout(log *zap.Logger, notifiers ...Notifier) *Fanout {
	if log == nil {
		log = zap.NewNop()
	}
	return &Fanout{notifiers: notifiers, log: log}
}

// Add registers another notifier.
func (f *Fanout) Add(n Notifier) {
	f.notifiers = append(f.notifiers, n)
}

// NotifyLead implements Notifier. It always returns nil.
func (f *Fanout) NotifyLead(ctx context.Context, lead Lead) error {
	for _, n := range f.notifiers {
		if err := n.NotifyLead(ctx, lead); err != nil {
			f.log.Warn("lead notification failed",
				zap.String("collection", lead.Collection),
				zap.String("id", lead.ID),
				zap.Error(err),
			)
		}
	}
	return nil
}

// Discard is a Notifier that does nothing.
var Discard Notifier = NotifierFunc(func(context.Context, Lead) error { return nil })
