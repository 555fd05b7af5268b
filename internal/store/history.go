package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/najdeno/internal/model"
)

// AppendHistory appends a status transition record. The trail is a pure
// log: nothing here knows about the state machine, and entries are
// never updated or deleted.
func AppendHistory(ctx context.Context, db *sql.DB, entry *model.StatusHistory) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO item_status_history (item_id, old_status, new_status, changed_by, notes)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.ItemID, entry.OldStatus, entry.NewStatus, entry.ChangedBy, entry.Notes,
	)
	if err != nil {
		return fmt.Errorf("appending status history: %w", err)
	}
	return nil
}

// ListItemHistory returns the transition history for an item, newest
// first. Ties on changed_at fall back to insertion order.
func ListItemHistory(ctx context.Context, db *sql.DB, itemID string) ([]model.StatusHistory, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, item_id, old_status, new_status, changed_by, notes, changed_at
		 FROM item_status_history
		 WHERE item_id = ?
		 ORDER BY changed_at DESC, id DESC`, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing status history: %w", err)
	}
	defer rows.Close()

	var entries []model.StatusHistory
	for rows.Next() {
		var e model.StatusHistory
		var notes sql.NullString
		if err := rows.Scan(&e.ID, &e.ItemID, &e.OldStatus, &e.NewStatus, &e.ChangedBy, &notes, &e.ChangedAt); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		e.Notes = notes.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
