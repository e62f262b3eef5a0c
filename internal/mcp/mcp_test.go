package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/stash/internal/config"
	"github.com/hpungsan/stash/internal/db"
	"github.com/hpungsan/stash/internal/errors"
	"github.com/hpungsan/stash/internal/retrieval"
)

// testSetup creates a temporary database and config for testing.
func testSetup(t *testing.T) (*sql.DB, *config.Config, func()) {
	t.Helper()

	tmpDir := t.TempDir()
	database, err := db.Init(tmpDir)
	if err != nil {
		t.Fatalf("failed to init db: %v", err)
	}

	cfg := config.DefaultConfig()

	cleanup := func() {
		database.Close()
	}

	return database, cfg, cleanup
}

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()
	database, cfg, cleanup := testSetup(t)
	t.Cleanup(cleanup)
	return NewHandlers(database, cfg, retrieval.New(), nil)
}

// saveItem stores an item through the tool and returns its ID.
func saveItem(t *testing.T, h *Handlers, args map[string]any) string {
	t.Helper()
	result, err := h.HandleSave(context.Background(), makeRequest(args))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	output := parseOutput(t, result)
	id, _ := output["id"].(string)
	if id == "" {
		t.Fatalf("save returned no id: %v", output)
	}
	return id
}

func TestHandleSave(t *testing.T) {
	h := newTestHandlers(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		args      map[string]any
		wantError bool
		errorCode string
		wantTags  []string
	}{
		{
			name: "save link",
			args: map[string]any{
				"kind":            "link",
				"raw_content":     "https://youtube.com/watch?v=1",
				"extracted_title": "Machine learning tutorial on YouTube",
			},
			wantTags: []string{"💻 Technology"},
		},
		{
			name: "save link with limit",
			args: map[string]any{
				"kind":            "link",
				"raw_content":     "https://youtube.com/watch?v=2",
				"extracted_title": "Machine learning tutorial on YouTube",
				"limit":           2,
			},
			wantTags: []string{"💻 Technology", "📚 Learning"},
		},
		{
			name: "save image with collaborator tags",
			args: map[string]any{
				"kind":        "image",
				"raw_content": "https://cdn.example.com/a.png",
				"tags":        []any{"🌊 Ocean"},
			},
			wantTags: []string{"🌊 Ocean"},
		},
		{
			name: "missing kind",
			args: map[string]any{
				"raw_content": "hello",
			},
			wantError: true,
			errorCode: "INVALID_REQUEST",
		},
		{
			name: "wrong argument type",
			args: map[string]any{
				"kind":        "text",
				"raw_content": 42,
			},
			wantError: true,
			errorCode: "INVALID_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.HandleSave(ctx, makeRequest(tt.args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}

			if tt.wantError {
				if !result.IsError {
					t.Errorf("expected error result, got success")
				}
				assertErrorCode(t, result, tt.errorCode)
				return
			}

			output := parseOutput(t, result)
			assertStrings(t, output["tags"], tt.wantTags)
		})
	}
}

func TestHandleFetchAndDelete(t *testing.T) {
	h := newTestHandlers(t)
	ctx := context.Background()

	id := saveItem(t, h, map[string]any{"kind": "text", "raw_content": "# Packing list\n\nPassport and charger"})

	result, err := h.HandleFetch(ctx, makeRequest(map[string]any{"id": id}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	output := parseOutput(t, result)
	if output["extracted_title"] != "Packing list" {
		t.Errorf("extracted_title = %v, want %q", output["extracted_title"], "Packing list")
	}

	result, _ = h.HandleDelete(ctx, makeRequest(map[string]any{"id": id}))
	output = parseOutput(t, result)
	if output["deleted"] != true {
		t.Errorf("deleted = %v, want true", output["deleted"])
	}

	result, _ = h.HandleFetch(ctx, makeRequest(map[string]any{"id": id}))
	assertErrorCode(t, result, "NOT_FOUND")

	result, _ = h.HandleFetch(ctx, makeRequest(map[string]any{"id": id, "include_deleted": true}))
	output = parseOutput(t, result)
	if output["deleted_at"] == nil {
		t.Error("deleted_at missing for deleted item")
	}

	result, _ = h.HandleDelete(ctx, makeRequest(map[string]any{}))
	assertErrorCode(t, result, "INVALID_REQUEST")
}

func TestHandleList(t *testing.T) {
	h := newTestHandlers(t)
	ctx := context.Background()

	saveItem(t, h, map[string]any{"kind": "text", "raw_content": "first note"})
	saveItem(t, h, map[string]any{"kind": "link", "raw_content": "https://go.dev/doc"})

	result, err := h.HandleList(ctx, makeRequest(map[string]any{"limit": 1}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	output := parseOutput(t, result)
	items := output["items"].([]any)
	if len(items) != 1 {
		t.Errorf("items = %d, want 1", len(items))
	}
	pagination := output["pagination"].(map[string]any)
	if pagination["total"] != float64(2) || pagination["has_more"] != true {
		t.Errorf("pagination = %v", pagination)
	}

	result, _ = h.HandleList(ctx, makeRequest(map[string]any{"kind": "link"}))
	output = parseOutput(t, result)
	items = output["items"].([]any)
	if len(items) != 1 || items[0].(map[string]any)["kind"] != "link" {
		t.Errorf("items = %v, want the link only", items)
	}

	result, _ = h.HandleList(ctx, makeRequest(map[string]any{"kind": "audio"}))
	assertErrorCode(t, result, "INVALID_REQUEST")
}

func TestHandleSuggestAndAccept(t *testing.T) {
	h := newTestHandlers(t)
	ctx := context.Background()

	id := saveItem(t, h, map[string]any{
		"kind":            "link",
		"raw_content":     "https://www.youtube.com/watch?v=ml",
		"extracted_title": "Machine learning tutorial on YouTube",
	})

	result, err := h.HandleSuggestTags(ctx, makeRequest(map[string]any{"id": id}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	output := parseOutput(t, result)
	assertStrings(t, output["suggestions"], []string{"📚 Learning", "🎓 Tutorial"})

	result, _ = h.HandleSuggestTags(ctx, makeRequest(map[string]any{"id": id, "inline": true}))
	output = parseOutput(t, result)
	assertStrings(t, output["suggestions"], []string{"📚 Learning"})

	result, _ = h.HandleAcceptTag(ctx, makeRequest(map[string]any{"id": id, "tag": "Learning"}))
	output = parseOutput(t, result)
	assertStrings(t, output["tags"], []string{"💻 Technology", "📚 Learning"})

	result, _ = h.HandleAcceptTag(ctx, makeRequest(map[string]any{"id": id, "tag": "LEARNING"}))
	assertErrorCode(t, result, "TAG_ALREADY_EXISTS")

	result, _ = h.HandleAcceptTag(ctx, makeRequest(map[string]any{"id": id, "tag": "  "}))
	assertErrorCode(t, result, "INVALID_REQUEST")

	result, _ = h.HandleSuggestTags(ctx, makeRequest(map[string]any{"id": "nope"}))
	assertErrorCode(t, result, "NOT_FOUND")
}

func TestHandleAsk(t *testing.T) {
	h := newTestHandlers(t)
	ctx := context.Background()

	result, err := h.HandleAsk(ctx, makeRequest(map[string]any{"query": "anything about japan"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	output := parseOutput(t, result)
	if output["found"] != false {
		t.Errorf("found = %v on empty store, want false", output["found"])
	}

	id := saveItem(t, h, map[string]any{
		"kind":            "link",
		"raw_content":     "https://www.japan-guide.com/e/e623.html",
		"extracted_title": "Japan Travel Guide",
	})
	saveItem(t, h, map[string]any{"kind": "text", "raw_content": "a guide to cooking"})

	result, _ = h.HandleAsk(ctx, makeRequest(map[string]any{"query": "What do I have saved about travel to Japan"}))
	output = parseOutput(t, result)
	if output["found"] != true {
		t.Fatalf("found = %v, want true", output["found"])
	}
	res := output["result"].(map[string]any)
	if res["item_id"] != id {
		t.Errorf("item_id = %v, want %s", res["item_id"], id)
	}
	if res["domain"] != "japan-guide.com" {
		t.Errorf("domain = %v, want japan-guide.com", res["domain"])
	}
	img, _ := res["image_url"].(string)
	if !strings.HasPrefix(img, "https://via.placeholder.com/400x300/") {
		t.Errorf("image_url = %q, want placeholder without a preview fetcher", img)
	}

	result, _ = h.HandleAsk(ctx, makeRequest(map[string]any{}))
	assertErrorCode(t, result, "INVALID_REQUEST")
}

func TestHandleEmoji(t *testing.T) {
	h := newTestHandlers(t)
	ctx := context.Background()

	tests := []struct {
		args      map[string]any
		emoji     string
		decorated string
	}{
		{map[string]any{"tag": "technology"}, "💻", "💻 technology"},
		{map[string]any{"tag": "xyzzy"}, "", "xyzzy"},
		{map[string]any{"tag": "xyzzy", "mode": "smart"}, "🏷️", "🏷️ xyzzy"},
		{map[string]any{"tag": "Weekend getaway", "mode": "smart"}, "🔖", "🔖 Weekend getaway"},
	}
	for _, tt := range tests {
		result, err := h.HandleEmoji(ctx, makeRequest(tt.args))
		if err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		output := parseOutput(t, result)
		if output["emoji"] != tt.emoji || output["decorated"] != tt.decorated {
			t.Errorf("emoji(%v) = %v / %v, want %q / %q", tt.args, output["emoji"], output["decorated"], tt.emoji, tt.decorated)
		}
	}

	result, _ := h.HandleEmoji(ctx, makeRequest(map[string]any{"tag": "x", "mode": "fancy"}))
	assertErrorCode(t, result, "INVALID_REQUEST")
}

func TestServerRegistration(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	s := NewServer(database, cfg, nil, nil, "test")
	tools := s.ListTools()
	if tools == nil {
		t.Fatal("expected tools to be registered, got nil")
	}

	expectedTools := []string{
		"item_save",
		"item_fetch",
		"item_list",
		"item_delete",
		"item_suggest_tags",
		"item_accept_tag",
		"item_ask",
		"tag_emoji",
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("registered tool count = %d, want %d", len(tools), len(expectedTools))
	}

	for _, name := range expectedTools {
		if _, ok := tools[name]; !ok {
			t.Errorf("missing registered tool: %s", name)
		}
	}
}

func TestServerRegistration_WithDisabledTools(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	cfg.DisabledTools = []string{"item_delete", "item_delete", "tag_emoji"}
	s := NewServer(database, cfg, nil, nil, "test")
	tools := s.ListTools()

	if len(tools) != 6 {
		t.Errorf("registered tool count = %d, want 6", len(tools))
	}
	for _, name := range []string{"item_delete", "tag_emoji"} {
		if _, ok := tools[name]; ok {
			t.Errorf("disabled tool %q should not be registered", name)
		}
	}
}

func TestServerRegistration_WithDisabledTypes(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	cfg.DisabledTypes = []string{"item"}
	s := NewServer(database, cfg, nil, nil, "test")
	tools := s.ListTools()

	if len(tools) != 1 {
		t.Errorf("registered tool count = %d, want 1", len(tools))
	}
	if _, ok := tools["tag_emoji"]; !ok {
		t.Error("tag_emoji should stay registered when only item tools are disabled")
	}
}

func TestServerRegistration_AllToolsDisabled(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	cfg.DisabledTools = AllToolNames()
	s := NewServer(database, cfg, nil, nil, "test")

	if tools := s.ListTools(); len(tools) != 0 {
		t.Errorf("registered tool count = %d, want 0 (all disabled)", len(tools))
	}
}

func TestValidateDisabledTools(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		wantLen int
	}{
		{"all valid", []string{"item_delete", "tag_emoji"}, 0},
		{"one unknown", []string{"item_delete", "note_store"}, 1},
		{"all unknown", []string{"foo", "bar", "baz"}, 3},
		{"empty list", []string{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unknown := ValidateDisabledTools(tt.input)
			if len(unknown) != tt.wantLen {
				t.Errorf("ValidateDisabledTools() returned %d unknown, want %d", len(unknown), tt.wantLen)
			}
		})
	}
}

func TestValidateDisabledTypes(t *testing.T) {
	if unknown := ValidateDisabledTypes([]string{"item", "tag"}); len(unknown) != 0 {
		t.Errorf("ValidateDisabledTypes() unknown = %v, want none", unknown)
	}
	if unknown := ValidateDisabledTypes([]string{"folder"}); len(unknown) != 1 {
		t.Errorf("ValidateDisabledTypes() unknown = %v, want [folder]", unknown)
	}
}

func TestGetTypeForTool(t *testing.T) {
	tests := map[string]string{
		"item_save":         "item",
		"item_suggest_tags": "item",
		"tag_emoji":         "tag",
		"noseparator":       "",
	}
	for name, want := range tests {
		if got := GetTypeForTool(name); got != want {
			t.Errorf("GetTypeForTool(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestExpandTypesToTools(t *testing.T) {
	if got := ExpandTypesToTools(nil); got != nil {
		t.Errorf("ExpandTypesToTools(nil) = %v, want nil", got)
	}
	if got := ExpandTypesToTools([]string{"tag"}); len(got) != 1 || got[0] != "tag_emoji" {
		t.Errorf("ExpandTypesToTools(tag) = %v, want [tag_emoji]", got)
	}
	if got := ExpandTypesToTools([]string{"item"}); len(got) != 7 {
		t.Errorf("ExpandTypesToTools(item) = %v, want 7 tools", got)
	}
}

func TestAllToolNames(t *testing.T) {
	names := AllToolNames()

	if len(names) != 8 {
		t.Errorf("AllToolNames() returned %d names, want 8", len(names))
	}

	unknown := ValidateDisabledTools(names)
	if len(unknown) != 0 {
		t.Errorf("AllToolNames() returned invalid names: %v", unknown)
	}
}

func TestErrorResult_InternalDoesNotExposeDetails(t *testing.T) {
	h := newTestHandlers(t)
	r := h.errorResult(errors.NewInternal(fmt.Errorf("sql error: open /tmp/secret.db: permission denied")))
	if !r.IsError {
		t.Fatal("expected IsError=true")
	}

	errObj := errorObject(t, r)
	if errObj["code"] != string(errors.ErrInternal) {
		t.Fatalf("code=%v, want %v", errObj["code"], errors.ErrInternal)
	}
	if _, ok := errObj["details"]; ok {
		t.Fatal("expected INTERNAL errors to omit details")
	}
	if strings.Contains(errObj["message"].(string), "secret.db") {
		t.Errorf("message leaks internals: %v", errObj["message"])
	}
}

func TestErrorResult_WrappedErrorPreservesContext(t *testing.T) {
	h := newTestHandlers(t)
	r := h.errorResult(fmt.Errorf("accept: %w", errors.NewTagAlreadyExists("01A", "📚 Learning")))

	errObj := errorObject(t, r)
	if errObj["code"] != string(errors.ErrTagAlreadyExists) {
		t.Errorf("code=%v, want %v", errObj["code"], errors.ErrTagAlreadyExists)
	}
	if msg := errObj["message"].(string); !strings.Contains(msg, "accept:") {
		t.Errorf("message should contain wrapper context, got: %s", msg)
	}
}

func TestErrorResult_NonInternalIncludesDetails(t *testing.T) {
	h := newTestHandlers(t)
	r := h.errorResult(errors.NewNotFound("abc"))

	errObj := errorObject(t, r)
	if errObj["code"] != string(errors.ErrNotFound) {
		t.Fatalf("code=%v, want %v", errObj["code"], errors.ErrNotFound)
	}
	if _, ok := errObj["details"]; !ok {
		t.Fatal("expected non-INTERNAL errors to include details when present")
	}
}

// Helper functions

// parseOutput extracts and unmarshals the JSON output from an MCP result.
func parseOutput(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()
	if result.IsError {
		t.Fatalf("expected success, got error: %v", extractErrorMessage(result))
	}
	var output map[string]any
	if err := json.Unmarshal([]byte(result.Content[0].(mcp.TextContent).Text), &output); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return output
}

func errorObject(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal([]byte(result.Content[0].(mcp.TextContent).Text), &payload); err != nil {
		t.Fatalf("failed to unmarshal error payload: %v", err)
	}
	errObj, ok := payload["error"].(map[string]any)
	if !ok {
		t.Fatalf("no error object in payload: %v", payload)
	}
	return errObj
}

func assertErrorCode(t *testing.T, result *mcp.CallToolResult, expectedCode string) {
	t.Helper()

	if !result.IsError {
		t.Errorf("expected error result %s, got success", expectedCode)
		return
	}
	code, _ := errorObject(t, result)["code"].(string)
	if code != expectedCode {
		t.Errorf("got error code %q, want %q", code, expectedCode)
	}
}

// assertStrings compares a decoded JSON array with want.
func assertStrings(t *testing.T, got any, want []string) {
	t.Helper()
	arr, ok := got.([]any)
	if !ok {
		t.Fatalf("value %v is not an array", got)
	}
	if len(arr) != len(want) {
		t.Fatalf("got %v, want %v", arr, want)
	}
	for i := range want {
		if arr[i] != want[i] {
			t.Errorf("[%d] = %v, want %q", i, arr[i], want[i])
		}
	}
}

func extractErrorMessage(result *mcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return "<no content>"
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		return "<not text content>"
	}

	return text.Text
}
