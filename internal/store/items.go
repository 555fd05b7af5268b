package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/najdeno/internal/model"
)

const itemColumns = `id, title, description, location, category, image_url,
	finder_name, finder_email, finder_phone, status, claimed_by, claimed_at, created_at`

// CreateItem inserts a new item with status 'found' and an assigned id.
func CreateItem(ctx context.Context, db *sql.DB, item *model.Item) (*model.Item, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generating item id: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO items (id, title, description, location, category, image_url,
		                    finder_name, finder_email, finder_phone, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id.String(), item.Title, item.Description, item.Location, item.Category, item.ImageURL,
		item.FinderName, item.FinderEmail, item.FinderPhone, model.StatusFound,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	return GetItem(ctx, db, id.String())
}

// GetItem returns an item by ID, or nil if it does not exist.
func GetItem(ctx context.Context, db *sql.DB, id string) (*model.Item, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id,
	)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns items newest first, optionally filtered by status
// and/or finder email.
func ListItems(ctx context.Context, db *sql.DB, status, finderEmail string) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE 1=1`
	var args []any

	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	if finderEmail != "" {
		query += ` AND finder_email = ?`
		args = append(args, finderEmail)
	}

	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpdateItemStatus performs the conditioned status write: the row is
// updated only if its status still equals expected. Returns the number
// of rows affected (0 or 1); 0 means the condition did not hold.
// Claimant fields are set when claimedBy is non-empty and cleared
// otherwise, so a return to 'found' always erases them.
func UpdateItemStatus(ctx context.Context, db *sql.DB, id, expected, next, claimedBy string, claimedAt *time.Time) (int64, error) {
	var by, at any
	if claimedBy != "" {
		by = claimedBy
		at = claimedAt
	}

	result, err := db.ExecContext(ctx,
		`UPDATE items SET status = ?, claimed_by = ?, claimed_at = ?
		 WHERE id = ? AND status = ?`,
		next, by, at, id, expected,
	)
	if err != nil {
		return 0, fmt.Errorf("updating item status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading affected rows: %w", err)
	}
	return affected, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanItem(row scannable) (*model.Item, error) {
	item := &model.Item{}
	var description, imageURL, finderPhone, claimedBy sql.NullString
	var claimedAt sql.NullTime

	err := row.Scan(&item.ID, &item.Title, &description, &item.Location, &item.Category, &imageURL,
		&item.FinderName, &item.FinderEmail, &finderPhone, &item.Status, &claimedBy, &claimedAt, &item.CreatedAt)
	if err != nil {
		return nil, err
	}

	item.Description = description.String
	item.ImageURL = imageURL.String
	item.FinderPhone = finderPhone.String
	item.ClaimedBy = claimedBy.String
	if claimedAt.Valid {
		t := claimedAt.Time
		item.ClaimedAt = &t
	}
	return item, nil
}
