// Package engine performs race-safe status transitions on items. The
// single mutation gate is a conditioned UPDATE on the status column:
// competing callers are totally ordered by the database, so at most one
// concurrent claim wins and nothing is lost silently.
package engine

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/erazemk/najdeno/internal/model"
	"github.com/erazemk/najdeno/internal/notify"
	"github.com/erazemk/najdeno/internal/store"
)

// transitions lists the legal edges of the item state machine.
// 'claimed' is terminal. The found->claimed edge is the finder
// recording an offline hand-over directly.
var transitions = map[string][]string{
	model.StatusFound:   {model.StatusPending, model.StatusClaimed},
	model.StatusPending: {model.StatusClaimed, model.StatusFound},
	model.StatusClaimed: {},
}

// Allowed reports whether the state machine permits from -> to.
func Allowed(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Claimant carries the claimant fields written alongside a transition.
// The zero value clears them, which is required when returning to
// 'found' and rejected otherwise.
type Claimant struct {
	Email string
	At    time.Time
}

// Engine executes single status transitions against the item store and
// publishes a change event for each committed write.
type Engine struct {
	DB       *sql.DB
	Notifier *notify.Notifier
}

// New creates an Engine. The notifier may be nil when no views need
// change signals (tests, batch tooling).
func New(db *sql.DB, notifier *notify.Notifier) *Engine {
	return &Engine{DB: db, Notifier: notifier}
}

// Transition moves an item from status 'from' to status 'to', applying
// the claimant fields atomically with the status write. The update only
// lands if the stored status still equals 'from'; otherwise it fails
// with model.ErrConcurrentModification wrapping the actual current
// status, and the caller decides whether to refresh and retry.
func (e *Engine) Transition(ctx context.Context, itemID, from, to string, claimant Claimant) (*model.Item, error) {
	if !model.ValidStatus(from) || !model.ValidStatus(to) {
		return nil, fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, from, to)
	}
	if !Allowed(from, to) {
		return nil, fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, from, to)
	}

	// The claimant pair must be present exactly when the item ends up
	// pending or claimed.
	if to == model.StatusFound && claimant.Email != "" {
		return nil, fmt.Errorf("%w: claimant must be cleared on return to found", model.ErrInvalidTransition)
	}
	if to != model.StatusFound && claimant.Email == "" {
		return nil, fmt.Errorf("%w: claimant required for %s", model.ErrInvalidTransition, to)
	}

	var claimedAt *time.Time
	if claimant.Email != "" {
		at := claimant.At.UTC()
		if claimant.At.IsZero() {
			at = time.Now().UTC()
		}
		claimedAt = &at
	}

	affected, err := store.UpdateItemStatus(ctx, e.DB, itemID, from, to, claimant.Email, claimedAt)
	if err != nil {
		return nil, err
	}

	if affected == 0 {
		// The condition did not hold: either the item is gone or someone
		// else transitioned it first. Re-read to tell the caller which.
		item, err := store.GetItem(ctx, e.DB, itemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, model.ErrNotFound
		}
		return nil, &model.StatusConflictError{Expected: from, Current: item.Status}
	}

	item, err := store.GetItem(ctx, e.DB, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, model.ErrNotFound
	}

	if e.Notifier != nil {
		e.Notifier.Publish(notify.Event{
			ItemID:      item.ID,
			FinderEmail: item.FinderEmail,
			OldStatus:   from,
			NewStatus:   to,
		})
	}

	return item, nil
}
