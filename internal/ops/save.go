package ops

import (
	"context"
	"crypto/rand"
	"database/sql"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/stash/internal/config"
	"github.com/hpungsan/stash/internal/db"
	"github.com/hpungsan/stash/internal/errors"
	"github.com/hpungsan/stash/internal/extract"
	"github.com/hpungsan/stash/internal/item"
	"github.com/hpungsan/stash/internal/preview"
	"github.com/hpungsan/stash/internal/tagging"
)

// SaveInput contains parameters for the Save operation.
type SaveInput struct {
	Kind       string `json:"kind" validate:"required,oneof=text image file link"`
	RawContent string `json:"raw_content" validate:"required"`

	// Extraction collaborator output. Text notes saved without any of these
	// are extracted locally from RawContent.
	ExtractedText    string `json:"extracted_text"`
	ExtractedTitle   string `json:"extracted_title" validate:"max=500"`
	ExtractedExcerpt string `json:"extracted_excerpt"`

	SourceURL string `json:"source_url" validate:"omitempty,url"`
	Filename  string `json:"filename" validate:"max=255"`

	// Tags are collaborator-generated image tags. Other kinds are tagged by
	// the engine and must not supply them.
	Tags []string `json:"tags" validate:"max=20,dive,max=64"`

	// Limit caps auto-tagging. nil means config.AutoTagLimit.
	Limit *int `json:"limit"`
}

// SaveOutput contains the result of the Save operation.
type SaveOutput struct {
	ID   string    `json:"id"`
	Kind item.Kind `json:"kind"`
	Tags []string  `json:"tags"`
}

var defaultTagger = tagging.NewTagger()

// Save validates, extracts, auto-tags and persists a new item.
func Save(ctx context.Context, database *sql.DB, cfg *config.Config, input SaveInput) (*SaveOutput, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	input.Kind = strings.ToLower(strings.TrimSpace(input.Kind))
	input.SourceURL = strings.TrimSpace(input.SourceURL)
	input.Filename = strings.TrimSpace(input.Filename)
	if strings.TrimSpace(input.RawContent) == "" {
		input.RawContent = ""
	}
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	kind := item.Kind(input.Kind)

	if kind != item.KindImage && len(input.Tags) > 0 {
		return nil, errors.NewInvalidField("tags", "are only accepted for image items")
	}

	limit, err := tagLimit(input.Limit, cfg.AutoTagLimit)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	it := &item.Item{
		ID:               id,
		Kind:             kind,
		RawContent:       input.RawContent,
		ExtractedText:    strings.TrimSpace(input.ExtractedText),
		ExtractedTitle:   strings.TrimSpace(input.ExtractedTitle),
		ExtractedExcerpt: strings.TrimSpace(input.ExtractedExcerpt),
		SourceURL:        input.SourceURL,
		Filename:         input.Filename,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	switch kind {
	case item.KindLink:
		if it.SourceURL == "" {
			urls := preview.DetectURLs(it.RawContent)
			if len(urls) == 0 {
				return nil, errors.NewInvalidField("raw_content", "must contain an http(s) URL for link items")
			}
			it.SourceURL = urls[0]
		}
		it.SourceURL = preview.NormalizeURL(it.SourceURL)
	case item.KindText:
		if !it.HasExtracted() && it.ExtractedExcerpt == "" {
			res := extract.Markdown(it.RawContent)
			it.ExtractedTitle = res.Title
			it.ExtractedText = res.Text
			it.ExtractedExcerpt = res.Excerpt
		}
	}

	it.Tags = defaultTagger.Tag(taggerInput(it, nil, input.Tags), limit)

	if err := db.Insert(ctx, database, it); err != nil {
		return nil, err
	}

	return &SaveOutput{
		ID:   it.ID,
		Kind: it.Kind,
		Tags: it.Tags,
	}, nil
}

// taggerInput builds what the tag pipeline reads about it. Files without an
// extracted title are described by their filename.
func taggerInput(it *item.Item, existing, supplied []string) tagging.Input {
	title := it.ExtractedTitle
	if title == "" && it.Filename != "" {
		title = strings.TrimSuffix(it.Filename, filepath.Ext(it.Filename))
	}
	text := it.ExtractedText
	if text == "" && it.Kind == item.KindText {
		text = it.RawContent
	}
	domain := ""
	if u := it.URL(); u != "" && it.Kind == item.KindLink {
		domain = preview.Domain(u)
	}
	return tagging.Input{
		Kind:     string(it.Kind),
		Title:    title,
		Text:     text,
		Domain:   domain,
		Existing: existing,
		Supplied: supplied,
	}
}

// generateULID creates a new ULID using crypto/rand for entropy.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
