package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/stash/internal/db"
	"github.com/hpungsan/stash/internal/item"
)

// FetchInput contains parameters for the Fetch operation.
type FetchInput struct {
	ID             string
	IncludeDeleted bool
}

// FetchOutput is the full item as returned to callers.
type FetchOutput struct {
	ID               string    `json:"id"`
	Kind             item.Kind `json:"kind"`
	RawContent       string    `json:"raw_content"`
	ExtractedText    string    `json:"extracted_text,omitempty"`
	ExtractedTitle   string    `json:"extracted_title,omitempty"`
	ExtractedExcerpt string    `json:"extracted_excerpt,omitempty"`
	SourceURL        string    `json:"source_url,omitempty"`
	Filename         string    `json:"filename,omitempty"`
	Tags             []string  `json:"tags"`
	CreatedAt        int64     `json:"created_at"`
	UpdatedAt        int64     `json:"updated_at"`
	DeletedAt        *int64    `json:"deleted_at,omitempty"`
}

// Fetch retrieves an item by ID.
func Fetch(ctx context.Context, database *sql.DB, input FetchInput) (*FetchOutput, error) {
	id, err := requireID(input.ID)
	if err != nil {
		return nil, err
	}

	it, err := db.GetByID(ctx, database, id, input.IncludeDeleted)
	if err != nil {
		return nil, err
	}

	return &FetchOutput{
		ID:               it.ID,
		Kind:             it.Kind,
		RawContent:       it.RawContent,
		ExtractedText:    it.ExtractedText,
		ExtractedTitle:   it.ExtractedTitle,
		ExtractedExcerpt: it.ExtractedExcerpt,
		SourceURL:        it.SourceURL,
		Filename:         it.Filename,
		Tags:             it.Tags,
		CreatedAt:        it.CreatedAt,
		UpdatedAt:        it.UpdatedAt,
		DeletedAt:        it.DeletedAt,
	}, nil
}
