package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/hpungsan/stash/internal/config"
	"github.com/hpungsan/stash/internal/errors"
	"github.com/hpungsan/stash/internal/logging"
	"github.com/hpungsan/stash/internal/ops"
	"github.com/hpungsan/stash/internal/retrieval"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db        *sql.DB
	cfg       *config.Config
	retriever *retrieval.Retriever
	logger    *zap.Logger
}

// NewHandlers creates a new Handlers instance. A nil retriever gets a
// placeholder-only one; a nil logger discards.
func NewHandlers(db *sql.DB, cfg *config.Config, retriever *retrieval.Retriever, logger *zap.Logger) *Handlers {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger = logging.OrNop(logger)
	if retriever == nil {
		retriever = retrieval.New(retrieval.WithLogger(logger))
	}
	return &Handlers{db: db, cfg: cfg, retriever: retriever, logger: logger}
}

// Request types for each tool

// SaveRequest represents the arguments for item_save.
type SaveRequest struct {
	Kind             string   `json:"kind"`
	RawContent       string   `json:"raw_content"`
	ExtractedText    string   `json:"extracted_text,omitempty"`
	ExtractedTitle   string   `json:"extracted_title,omitempty"`
	ExtractedExcerpt string   `json:"extracted_excerpt,omitempty"`
	SourceURL        string   `json:"source_url,omitempty"`
	Filename         string   `json:"filename,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	Limit            *int     `json:"limit,omitempty"`
}

// FetchRequest represents the arguments for item_fetch.
type FetchRequest struct {
	ID             string `json:"id"`
	IncludeDeleted bool   `json:"include_deleted,omitempty"`
}

// ListRequest represents the arguments for item_list.
type ListRequest struct {
	Kind   string `json:"kind,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// DeleteRequest represents the arguments for item_delete.
type DeleteRequest struct {
	ID string `json:"id"`
}

// SuggestRequest represents the arguments for item_suggest_tags.
type SuggestRequest struct {
	ID       string   `json:"id"`
	Limit    *int     `json:"limit,omitempty"`
	Inline   bool     `json:"inline,omitempty"`
	Supplied []string `json:"supplied,omitempty"`
}

// AcceptRequest represents the arguments for item_accept_tag.
type AcceptRequest struct {
	ID  string `json:"id"`
	Tag string `json:"tag"`
}

// AskRequest represents the arguments for item_ask.
type AskRequest struct {
	Query string `json:"query"`
}

// EmojiRequest represents the arguments for tag_emoji.
type EmojiRequest struct {
	Tag  string `json:"tag"`
	Mode string `json:"mode,omitempty"`
}

// Handler implementations

// HandleSave handles the item_save tool call.
func (h *Handlers) HandleSave(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SaveRequest](req)
	if err != nil {
		return h.errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Save(ctx, h.db, h.cfg, ops.SaveInput{
		Kind:             input.Kind,
		RawContent:       input.RawContent,
		ExtractedText:    input.ExtractedText,
		ExtractedTitle:   input.ExtractedTitle,
		ExtractedExcerpt: input.ExtractedExcerpt,
		SourceURL:        input.SourceURL,
		Filename:         input.Filename,
		Tags:             input.Tags,
		Limit:            input.Limit,
	})
	if err != nil {
		return h.errorResult(err), nil
	}

	return successResult(result)
}

// HandleFetch handles the item_fetch tool call.
func (h *Handlers) HandleFetch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FetchRequest](req)
	if err != nil {
		return h.errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Fetch(ctx, h.db, ops.FetchInput{
		ID:             input.ID,
		IncludeDeleted: input.IncludeDeleted,
	})
	if err != nil {
		return h.errorResult(err), nil
	}

	return successResult(result)
}

// HandleList handles the item_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return h.errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.List(ctx, h.db, ops.ListInput{
		Kind:   input.Kind,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return h.errorResult(err), nil
	}

	return successResult(result)
}

// HandleDelete handles the item_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return h.errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Delete(ctx, h.db, ops.DeleteInput{ID: input.ID})
	if err != nil {
		return h.errorResult(err), nil
	}

	return successResult(result)
}

// HandleSuggestTags handles the item_suggest_tags tool call.
func (h *Handlers) HandleSuggestTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SuggestRequest](req)
	if err != nil {
		return h.errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.SuggestTags(ctx, h.db, h.cfg, ops.SuggestTagsInput{
		ID:       input.ID,
		Limit:    input.Limit,
		Inline:   input.Inline,
		Supplied: input.Supplied,
	})
	if err != nil {
		return h.errorResult(err), nil
	}

	return successResult(result)
}

// HandleAcceptTag handles the item_accept_tag tool call.
func (h *Handlers) HandleAcceptTag(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AcceptRequest](req)
	if err != nil {
		return h.errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.AcceptTag(ctx, h.db, ops.AcceptTagInput{
		ID:  input.ID,
		Tag: input.Tag,
	})
	if err != nil {
		return h.errorResult(err), nil
	}

	return successResult(result)
}

// HandleAsk handles the item_ask tool call.
func (h *Handlers) HandleAsk(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AskRequest](req)
	if err != nil {
		return h.errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Ask(ctx, h.db, h.retriever, ops.AskInput{Query: input.Query})
	if err != nil {
		return h.errorResult(err), nil
	}

	return successResult(result)
}

// HandleEmoji handles the tag_emoji tool call.
func (h *Handlers) HandleEmoji(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[EmojiRequest](req)
	if err != nil {
		return h.errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Emoji(ops.EmojiInput{Tag: input.Tag, Mode: input.Mode})
	if err != nil {
		return h.errorResult(err), nil
	}

	return successResult(result)
}

// decode unmarshals MCP request arguments into a typed struct by
// round-tripping them through JSON.
func decode[T any](req mcp.CallToolRequest) (T, error) {
	var result T
	b, err := json.Marshal(req.GetArguments())
	if err != nil {
		return result, fmt.Errorf("marshal args: %w", err)
	}
	if err := json.Unmarshal(b, &result); err != nil {
		return result, fmt.Errorf("invalid arguments: %w", err)
	}
	return result, nil
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error details are logged, never returned.
func (h *Handlers) errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if sErr, ok := errors.As(err); ok && sErr.Code != errors.ErrInternal {
		msg := sErr.Message
		if err != error(sErr) {
			// Keep the wrapper's context.
			msg = err.Error()
		}
		errorObj := map[string]any{
			"code":    sErr.Code,
			"message": msg,
			"status":  sErr.Status,
		}
		if sErr.Details != nil {
			errorObj["details"] = sErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		h.logger.Error("tool call failed", zap.Error(err))
		payload = map[string]any{
			"error": map[string]any{
				"code":    errors.ErrInternal,
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
