package ops

import (
	"strings"

	"github.com/hpungsan/stash/internal/errors"
)

// Pagination limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// MaxTagLimit bounds any caller-supplied tag limit.
const MaxTagLimit = 10

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// requireID trims id and rejects blanks.
func requireID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errors.NewInvalidField("id", "is required")
	}
	return id, nil
}

// tagLimit picks the caller's limit, else the configured default, and
// clamps the result to [0, MaxTagLimit].
func tagLimit(requested *int, fallback int) (int, error) {
	limit := fallback
	if requested != nil {
		if *requested < 0 {
			return 0, errors.NewInvalidField("limit", "must not be negative")
		}
		limit = *requested
	}
	return min(max(limit, 0), MaxTagLimit), nil
}
