package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/stash/internal/config"
	"github.com/hpungsan/stash/internal/db"
)

// SuggestTagsInput contains parameters for the SuggestTags operation.
type SuggestTagsInput struct {
	ID string

	// Limit caps the suggestions. nil means config.SuggestTagLimit, or
	// config.InlineSuggestLimit when Inline is set.
	Limit  *int
	Inline bool

	// Supplied carries fresh collaborator tags for image items.
	Supplied []string
}

// SuggestTagsOutput contains the result of the SuggestTags operation.
type SuggestTagsOutput struct {
	ID          string   `json:"id"`
	Existing    []string `json:"existing"`
	Suggestions []string `json:"suggestions"`
}

// SuggestTags runs the tag pipeline on a stored item and returns tags it
// does not already carry. Nothing is written.
func SuggestTags(ctx context.Context, database *sql.DB, cfg *config.Config, input SuggestTagsInput) (*SuggestTagsOutput, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	id, err := requireID(input.ID)
	if err != nil {
		return nil, err
	}

	fallback := cfg.SuggestTagLimit
	if input.Inline {
		fallback = cfg.InlineSuggestLimit
	}
	limit, err := tagLimit(input.Limit, fallback)
	if err != nil {
		return nil, err
	}

	it, err := db.GetByID(ctx, database, id, false)
	if err != nil {
		return nil, err
	}

	return &SuggestTagsOutput{
		ID:          it.ID,
		Existing:    it.Tags,
		Suggestions: defaultTagger.Tag(taggerInput(it, it.Tags, input.Supplied), limit),
	}, nil
}
