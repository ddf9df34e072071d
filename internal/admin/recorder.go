// Package admin holds the back-office plumbing shared by every collection:
// audited status changes and deletes, and the dashboard counters.
package admin

import (
	"context"

	"go.uber.org/zap"

	"github.com/ziadkadry99/caravansite/internal/audit"
	"github.com/ziadkadry99/caravansite/internal/auth"
	"github.com/ziadkadry99/caravansite/internal/metrics"
)

// Recorder writes the audit trail for admin changes.
type Recorder struct {
	audit *audit.Store
	log   *zap.Logger
}

// NewRecorder creates a Recorder. A nil logger is replaced with a no-op.
func NewRecorder(store *audit.Store, log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{audit: store, log: log}
}

// Change describes a single admin mutation.
type Change struct {
	Action     audit.Action
	Collection string
	RecordID   string
	Summary    string
	Previous   string
	New        string
}

// Record audits c on behalf of the admin in ctx. The mutation has already
// happened, so failures are logged rather than returned.
func (r *Recorder) Record(ctx context.Context, c Change) {
	actor := auth.ActorFromContext(ctx)
	metrics.RecordMutation(c.Collection, string(c.Action))

	r.log.Info("admin change",
		zap.String("actor", actor),
		zap.String("action", string(c.Action)),
		zap.String("collection", c.Collection),
		zap.String("id", c.RecordID),
	)

	if r.audit == nil {
		return
	}
	err := r.audit.Log(ctx, audit.Entry{
		Actor:         actor,
		Action:        c.Action,
		Collection:    c.Collection,
		RecordID:      c.RecordID,
		Summary:       c.Summary,
		PreviousValue: c.Previous,
		NewValue:      c.New,
	})
	if err != nil {
		r.log.Error("writing audit entry", zap.String("collection", c.Collection), zap.Error(err))
	}
}
