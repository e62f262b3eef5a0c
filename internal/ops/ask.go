package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/hpungsan/stash/internal/db"
	"github.com/hpungsan/stash/internal/errors"
	"github.com/hpungsan/stash/internal/retrieval"
)

// AskInput contains parameters for the Ask operation.
type AskInput struct {
	Query string
}

// AskOutput is the referenced content for a question. Result is nil when
// nothing in the store qualifies.
type AskOutput struct {
	Found    bool              `json:"found"`
	Keywords []string          `json:"keywords"`
	Result   *retrieval.Result `json:"result,omitempty"`
}

// Ask finds the saved item that best answers query.
func Ask(ctx context.Context, database *sql.DB, retriever *retrieval.Retriever, input AskInput) (*AskOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, errors.NewInvalidField("query", "is required")
	}
	if retriever == nil {
		retriever = retrieval.New()
	}

	items, err := db.ListAll(ctx, database)
	if err != nil {
		return nil, err
	}

	res := retriever.FindBestMatch(ctx, query, items)
	return &AskOutput{
		Found:    res != nil,
		Keywords: retrieval.QueryKeywords(query),
		Result:   res,
	}, nil
}
