// Package claims orchestrates the claim workflow: each operation is one
// conditioned status transition followed by one status history append.
// The transition's compare-and-swap is the authoritative precondition
// check; any earlier read is advisory only.
package claims

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/erazemk/najdeno/internal/engine"
	"github.com/erazemk/najdeno/internal/model"
	"github.com/erazemk/najdeno/internal/store"
)

// Coordinator sequences transition engine calls and audit trail writes
// for the four claim workflow operations.
type Coordinator struct {
	DB     *sql.DB
	Engine *engine.Engine
}

// New creates a Coordinator backed by the given engine.
func New(db *sql.DB, eng *engine.Engine) *Coordinator {
	return &Coordinator{DB: db, Engine: eng}
}

// RequestClaim records a claimant's request on a 'found' item, moving
// it to 'pending'. If another claimant or the finder got there first,
// it fails with ErrClaimNoLongerAvailable (or ErrInvalidTransition when
// the item is already terminally claimed) and writes no history.
func (c *Coordinator) RequestClaim(ctx context.Context, itemID, claimantEmail, claimantName, message string) (*model.Item, error) {
	item, err := c.Engine.Transition(ctx, itemID, model.StatusFound, model.StatusPending,
		engine.Claimant{Email: claimantEmail, At: time.Now()})
	if err != nil {
		return nil, mapConflict(err, model.ErrClaimNoLongerAvailable)
	}

	note := fmt.Sprintf("Claim requested by %s (%s): %s", claimantName, claimantEmail, message)
	return c.appendHistory(ctx, item, model.StatusFound, claimantEmail, note)
}

// ApproveClaim confirms a pending claim, moving the item to its
// terminal 'claimed' status. The claimant fields stay as written by the
// claim request, with a fresh claim timestamp.
func (c *Coordinator) ApproveClaim(ctx context.Context, itemID, finderEmail string) (*model.Item, error) {
	// Advisory read for the claimant identity; the conditioned write
	// below still guards the actual precondition.
	current, err := store.GetItem(ctx, c.DB, itemID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, model.ErrNotFound
	}
	if current.Status != model.StatusPending {
		// Same taxonomy as a lost compare-and-swap below: a terminal item
		// is invalid to touch, anything else is a stale view of the claim.
		return nil, mapConflict(&model.StatusConflictError{Expected: model.StatusPending, Current: current.Status},
			model.ErrStaleClaimState)
	}

	item, err := c.Engine.Transition(ctx, itemID, model.StatusPending, model.StatusClaimed,
		engine.Claimant{Email: current.ClaimedBy, At: time.Now()})
	if err != nil {
		return nil, mapConflict(err, model.ErrStaleClaimState)
	}

	note := fmt.Sprintf("Claim confirmed by finder for %s", item.ClaimedBy)
	return c.appendHistory(ctx, item, model.StatusPending, finderEmail, note)
}

// RejectClaim turns down a pending claim, returning the item to 'found'
// and clearing the claimant fields so it can be claimed again.
func (c *Coordinator) RejectClaim(ctx context.Context, itemID, finderEmail string) (*model.Item, error) {
	item, err := c.Engine.Transition(ctx, itemID, model.StatusPending, model.StatusFound, engine.Claimant{})
	if err != nil {
		return nil, mapConflict(err, model.ErrStaleClaimState)
	}

	return c.appendHistory(ctx, item, model.StatusPending, finderEmail, "Claim rejected by finder")
}

// RecordHandover lets the finder mark a still-'found' item as claimed
// directly, recording an owner who showed up without an online claim
// request. It bypasses 'pending' but is guarded by the same
// compare-and-swap as every other transition.
func (c *Coordinator) RecordHandover(ctx context.Context, itemID, finderEmail, claimerName, claimerEmail, notes string) (*model.Item, error) {
	item, err := c.Engine.Transition(ctx, itemID, model.StatusFound, model.StatusClaimed,
		engine.Claimant{Email: claimerEmail, At: time.Now()})
	if err != nil {
		return nil, mapConflict(err, model.ErrClaimNoLongerAvailable)
	}

	note := fmt.Sprintf("Item claimed by original owner: %s (%s). Notes: %s", claimerName, claimerEmail, notes)
	return c.appendHistory(ctx, item, model.StatusFound, finderEmail, note)
}

// appendHistory writes the audit entry for a committed transition. A
// failed append does not undo the transition: the item is returned
// alongside an error wrapping model.ErrAuditWriteFailed.
func (c *Coordinator) appendHistory(ctx context.Context, item *model.Item, oldStatus, actor, note string) (*model.Item, error) {
	entry := &model.StatusHistory{
		ItemID:    item.ID,
		OldStatus: oldStatus,
		NewStatus: item.Status,
		ChangedBy: actor,
		Notes:     note,
	}
	if err := store.AppendHistory(ctx, c.DB, entry); err != nil {
		log.Printf("status history append failed for item %s (%s -> %s): %v",
			item.ID, oldStatus, item.Status, err)
		return item, fmt.Errorf("%w: %v", model.ErrAuditWriteFailed, err)
	}
	return item, nil
}

// mapConflict translates a lost compare-and-swap into the workflow
// outcome the caller should surface. An item already in its terminal
// state reports ErrInvalidTransition instead, since no retry can help.
func mapConflict(err error, outcome error) error {
	var conflict *model.StatusConflictError
	if !errors.As(err, &conflict) {
		return err
	}
	if conflict.Current == model.StatusClaimed {
		return fmt.Errorf("%w: item is already claimed", model.ErrInvalidTransition)
	}
	return fmt.Errorf("%w: status is %q", outcome, conflict.Current)
}
