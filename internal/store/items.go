package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mkolar/najdeno/internal/model"
)

// ItemFilter describes the optional listing filters. Empty fields mean the
// filter is absent; all present filters are AND-combined.
type ItemFilter struct {
	// Status restricts to an exact status. When empty, only the open
	// statuses (Lost, Found) are listed; resolved items are hidden.
	Status string

	// Category restricts to an exact category.
	Category string

	// Search restricts to items whose title or description contains the
	// text as a case-insensitive substring.
	Search string
}

const itemColumns = `i.id, i.title, i.description, i.category, i.status, i.contact_info, i.image_path, i.user_id, i.date_posted, u.full_name`

const itemFrom = ` FROM items i JOIN users u ON u.id = i.user_id`

// ListItems returns postings matching the filter, newest first. The query
// is assembled clause by clause with positional placeholders; filter values
// are never interpolated into the SQL text.
func ListItems(ctx context.Context, db *sql.DB, f ItemFilter) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + itemFrom + ` WHERE 1=1`
	var args []any

	if f.Status != "" {
		query += ` AND i.status = ?`
		args = append(args, f.Status)
	} else {
		query += ` AND i.status IN (?, ?)`
		args = append(args, model.StatusLost, model.StatusFound)
	}

	if f.Category != "" {
		query += ` AND i.category = ?`
		args = append(args, f.Category)
	}

	if f.Search != "" {
		// SQLite LIKE is case-insensitive for ASCII.
		query += ` AND (i.title LIKE ? OR i.description LIKE ?)`
		pattern := "%" + f.Search + "%"
		args = append(args, pattern, pattern)
	}

	query += ` ORDER BY i.date_posted DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// CreateItem creates a new posting owned by userID. The status must be one
// of the open statuses; date_posted is set once, here.
func CreateItem(ctx context.Context, db *sql.DB, userID int64, title, description, category, status, contactInfo, imagePath string) (*model.Item, error) {
	if !model.OpenStatus(status) {
		return nil, ErrInvalidStatus
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO items (title, description, category, status, contact_info, image_path, user_id, date_posted)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		title, description, category, status, contactInfo, imagePath, userID, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns a posting by ID with the owner's display name joined in,
// or nil if no such posting exists.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	item := &model.Item{}
	var description, category, contactInfo sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+itemFrom+` WHERE i.id = ?`, id,
	).Scan(&item.ID, &item.Title, &description, &category, &item.Status, &contactInfo,
		&item.ImagePath, &item.UserID, &item.DatePosted, &item.OwnerName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	item.Description = description.String
	item.Category = category.String
	item.ContactInfo = contactInfo.String
	return item, nil
}

// ListUserItems returns every posting owned by userID, newest first,
// including resolved ones.
func ListUserItems(ctx context.Context, db *sql.DB, userID int64) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+itemFrom+` WHERE i.user_id = ? ORDER BY i.date_posted DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing user items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// UpdateItem updates a posting's editable fields. Status is deliberately
// not editable here; it only changes through ResolveItem. Returns
// ErrNotOwner if the posting does not exist or is owned by another user.
func UpdateItem(ctx context.Context, db *sql.DB, userID, id int64, title, description, category, contactInfo string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE items SET title = ?, description = ?, category = ?, contact_info = ?
		 WHERE id = ? AND user_id = ?`,
		title, description, category, contactInfo, id, userID,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}

	return requireOwned(result)
}

// DeleteItem permanently removes a posting. Returns ErrNotOwner if the
// posting does not exist or is owned by another user.
func DeleteItem(ctx context.Context, db *sql.DB, userID, id int64) error {
	result, err := db.ExecContext(ctx,
		`DELETE FROM items WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	return requireOwned(result)
}

// ResolveItem applies the status transition for a posting and returns the
// new status: Lost becomes Recovered, Found becomes Returned. Resolving an
// already-resolved posting returns ErrInvalidTransition. Returns ErrNotOwner
// if the posting does not exist or is owned by another user.
func ResolveItem(ctx context.Context, db *sql.DB, userID, id int64) (string, error) {
	var current string
	err := db.QueryRowContext(ctx,
		`SELECT status FROM items WHERE id = ? AND user_id = ?`,
		id, userID,
	).Scan(&current)
	if err == sql.ErrNoRows {
		return "", ErrNotOwner
	}
	if err != nil {
		return "", fmt.Errorf("getting item status: %w", err)
	}

	next := model.ResolvedStatus(current)
	if next == "" {
		return "", ErrInvalidTransition
	}

	_, err = db.ExecContext(ctx,
		`UPDATE items SET status = ? WHERE id = ? AND user_id = ?`,
		next, id, userID,
	)
	if err != nil {
		return "", fmt.Errorf("resolving item: %w", err)
	}

	return next, nil
}

// requireOwned translates a zero-row mutation into ErrNotOwner.
func requireOwned(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotOwner
	}
	return nil
}

func scanItems(rows *sql.Rows) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		var item model.Item
		var description, category, contactInfo sql.NullString
		if err := rows.Scan(&item.ID, &item.Title, &description, &category, &item.Status,
			&contactInfo, &item.ImagePath, &item.UserID, &item.DatePosted, &item.OwnerName); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		item.Description = description.String
		item.Category = category.String
		item.ContactInfo = contactInfo.String
		items = append(items, item)
	}
	return items, rows.Err()
}
