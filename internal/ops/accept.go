package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/hpungsan/stash/internal/db"
	"github.com/hpungsan/stash/internal/errors"
	"github.com/hpungsan/stash/internal/tagging"
)

// AcceptTagInput contains parameters for the AcceptTag operation.
type AcceptTagInput struct {
	ID  string
	Tag string
}

// AcceptTagOutput contains the result of the AcceptTag operation.
type AcceptTagOutput struct {
	ID        string   `json:"id"`
	Added     string   `json:"added"`
	Tags      []string `json:"tags"`
	UpdatedAt int64    `json:"updated_at"`
}

// AcceptTag appends a tag to an item. Tags are never removed here; a tag
// that matches an existing one (case-insensitive, glyph ignored) is rejected.
func AcceptTag(ctx context.Context, database *sql.DB, input AcceptTagInput) (*AcceptTagOutput, error) {
	id, err := requireID(input.ID)
	if err != nil {
		return nil, err
	}

	tag := strings.TrimSpace(input.Tag)
	if tagging.StripEmoji(tag) == "" {
		return nil, errors.NewInvalidField("tag", "must not be empty")
	}

	it, err := db.GetByID(ctx, database, id, false)
	if err != nil {
		return nil, err
	}

	for _, existing := range it.Tags {
		if tagging.SameTag(existing, tag) {
			return nil, errors.NewTagAlreadyExists(it.ID, existing)
		}
	}

	added := tagging.DecorateFor(string(it.Kind), tag)
	tags := append(append([]string{}, it.Tags...), added)

	updatedAt, err := db.UpdateTags(ctx, database, it.ID, tags)
	if err != nil {
		return nil, err
	}

	return &AcceptTagOutput{
		ID:        it.ID,
		Added:     added,
		Tags:      tags,
		UpdatedAt: updatedAt,
	}, nil
}
