package ops

import (
	"strings"

	"github.com/hpungsan/stash/internal/errors"
	"github.com/hpungsan/stash/internal/tagging"
)

// Emoji lookup modes.
const (
	EmojiModeLink  = "link"  // curated dictionary for structured link/file tags
	EmojiModeSmart = "smart" // freeform mapping, always yields a glyph
)

// EmojiInput contains parameters for the Emoji operation.
type EmojiInput struct {
	Tag  string
	Mode string // default: link
}

// EmojiOutput contains the result of the Emoji operation. Emoji is empty
// when link mode finds no glyph.
type EmojiOutput struct {
	Tag       string `json:"tag"`
	Mode      string `json:"mode"`
	Emoji     string `json:"emoji"`
	Decorated string `json:"decorated"`
}

// Emoji resolves the display glyph for a tag without touching the store.
func Emoji(input EmojiInput) (*EmojiOutput, error) {
	tag := strings.TrimSpace(input.Tag)
	if tag == "" {
		return nil, errors.NewInvalidField("tag", "is required")
	}

	mode := strings.ToLower(strings.TrimSpace(input.Mode))
	if mode == "" {
		mode = EmojiModeLink
	}

	if mode != EmojiModeLink && mode != EmojiModeSmart {
		return nil, errors.NewInvalidField("mode", "must be one of: link, smart")
	}

	out := &EmojiOutput{Tag: tag, Mode: mode, Decorated: tag}

	// Already decorated tags are shown as-is.
	if tagging.HasEmojiPrefix(tag) {
		return out, nil
	}

	if mode == EmojiModeSmart {
		out.Emoji = tagging.ResolveSmartEmoji(tag)
	} else {
		out.Emoji = tagging.ResolveEmoji(tag)
	}
	if out.Emoji != "" {
		out.Decorated = out.Emoji + " " + tag
	}
	return out, nil
}
