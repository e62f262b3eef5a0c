package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/hpungsan/stash/internal/errors"
	"github.com/hpungsan/stash/internal/item"
)

const itemColumns = `
	id, kind, raw_content, extracted_text, extracted_title, extracted_excerpt,
	source_url, filename, tags_json, created_at, updated_at, deleted_at
`

// ListFilter narrows List results. Zero value means all active items.
type ListFilter struct {
	Kind item.Kind
}

// Insert stores a new item in the database.
func Insert(ctx context.Context, db *sql.DB, it *item.Item) error {
	tagsJSON, err := toTagsJSON(it.Tags)
	if err != nil {
		return errors.NewInternal(err)
	}

	query := `
		INSERT INTO items (
			id, kind, raw_content, extracted_text, extracted_title, extracted_excerpt,
			source_url, filename, tags_json, created_at, updated_at, deleted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)
	`

	_, err = db.ExecContext(ctx, query,
		it.ID, string(it.Kind), it.RawContent,
		toNullString(it.ExtractedText), toNullString(it.ExtractedTitle), toNullString(it.ExtractedExcerpt),
		toNullString(it.SourceURL), toNullString(it.Filename),
		tagsJSON, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetByID retrieves an item by its ULID.
// If includeDeleted is false, soft-deleted items are excluded.
func GetByID(ctx context.Context, db *sql.DB, id string, includeDeleted bool) (*item.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ?`
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}

	it, err := scanItem(db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return it, nil
}

// List returns summaries of active items, newest first, plus the total
// number of items matching the filter.
func List(ctx context.Context, db *sql.DB, filter ListFilter, limit, offset int) ([]item.Summary, int, error) {
	where := " WHERE deleted_at IS NULL"
	var args []any
	if filter.Kind != "" {
		where += " AND kind = ?"
		args = append(args, string(filter.Kind))
	}

	var total int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`+where, args...).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	query := `SELECT ` + itemColumns + ` FROM items` + where +
		` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	rows, err := db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	summaries := []item.Summary{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		summaries = append(summaries, it.ToSummary())
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	return summaries, total, nil
}

// ListAll returns every active item with full content, newest first.
// This is the corpus the retrieval engine searches.
func ListAll(ctx context.Context, db *sql.DB) ([]item.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC, id DESC`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var items []item.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return items, nil
}

// UpdateTags replaces the tag list of an active item and bumps updated_at.
// Returns the new updated_at.
func UpdateTags(ctx context.Context, db *sql.DB, id string, tags []string) (int64, error) {
	tagsJSON, err := toTagsJSON(tags)
	if err != nil {
		return 0, errors.NewInternal(err)
	}

	now := time.Now().Unix()

	query := `
		UPDATE items
		SET tags_json = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := db.ExecContext(ctx, query, tagsJSON, now, id)
	if err != nil {
		return 0, errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return 0, errors.NewNotFound(id)
	}

	return now, nil
}

// SoftDelete marks an item as deleted by setting deleted_at.
func SoftDelete(ctx context.Context, db *sql.DB, id string) error {
	now := time.Now().Unix()

	query := `
		UPDATE items
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := db.ExecContext(ctx, query, now, id)
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(id)
	}

	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanItem scans a single row into an Item struct.
func scanItem(row rowScanner) (*item.Item, error) {
	var (
		it               item.Item
		kind             string
		extractedText    sql.NullString
		extractedTitle   sql.NullString
		extractedExcerpt sql.NullString
		sourceURL        sql.NullString
		filename         sql.NullString
		tagsJSON         sql.NullString
		deletedAt        sql.NullInt64
	)

	err := row.Scan(
		&it.ID, &kind, &it.RawContent,
		&extractedText, &extractedTitle, &extractedExcerpt,
		&sourceURL, &filename, &tagsJSON,
		&it.CreatedAt, &it.UpdatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}

	it.Kind = item.Kind(kind)
	it.ExtractedText = extractedText.String
	it.ExtractedTitle = extractedTitle.String
	it.ExtractedExcerpt = extractedExcerpt.String
	it.SourceURL = sourceURL.String
	it.Filename = filename.String

	if deletedAt.Valid {
		it.DeletedAt = &deletedAt.Int64
	}

	it.Tags = []string{}
	if tagsJSON.Valid && tagsJSON.String != "" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &it.Tags); err != nil {
			return nil, err
		}
	}

	return &it, nil
}

func toTagsJSON(tags []string) (sql.NullString, error) {
	if len(tags) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// toNullString stores empty strings as NULL.
func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
