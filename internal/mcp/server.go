package mcp

import (
	"database/sql"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/hpungsan/stash/internal/config"
	"github.com/hpungsan/stash/internal/retrieval"
)

// KnownTypes lists the tool name prefixes accepted in disabled_types.
var KnownTypes = []string{"item", "tag"}

// toolEntry pairs a tool definition with the Handlers method serving it.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

var toolRegistry = map[string]toolEntry{
	"item_save":         {saveToolDef, func(h *Handlers) server.ToolHandlerFunc { return h.HandleSave }},
	"item_fetch":        {fetchToolDef, func(h *Handlers) server.ToolHandlerFunc { return h.HandleFetch }},
	"item_list":         {listToolDef, func(h *Handlers) server.ToolHandlerFunc { return h.HandleList }},
	"item_delete":       {deleteToolDef, func(h *Handlers) server.ToolHandlerFunc { return h.HandleDelete }},
	"item_suggest_tags": {suggestToolDef, func(h *Handlers) server.ToolHandlerFunc { return h.HandleSuggestTags }},
	"item_accept_tag":   {acceptToolDef, func(h *Handlers) server.ToolHandlerFunc { return h.HandleAcceptTag }},
	"item_ask":          {askToolDef, func(h *Handlers) server.ToolHandlerFunc { return h.HandleAsk }},
	"tag_emoji":         {emojiToolDef, func(h *Handlers) server.ToolHandlerFunc { return h.HandleEmoji }},
}

// AllToolNames returns every registered tool name, sorted.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateDisabledTools returns the entries of names that are not tools.
func ValidateDisabledTools(names []string) []string {
	return unknownNames(names, func(n string) bool {
		_, ok := toolRegistry[n]
		return ok
	})
}

// ValidateDisabledTypes returns the entries of names that are not in KnownTypes.
func ValidateDisabledTypes(names []string) []string {
	return unknownNames(names, func(n string) bool {
		for _, t := range KnownTypes {
			if t == n {
				return true
			}
		}
		return false
	})
}

func unknownNames(names []string, known func(string) bool) []string {
	unknown := make([]string, 0)
	for _, n := range names {
		if !known(n) {
			unknown = append(unknown, n)
		}
	}
	return unknown
}

// GetTypeForTool returns the prefix before the first underscore
// ("item_save" is type "item"), or "" when there is none.
func GetTypeForTool(toolName string) string {
	typ, _, found := strings.Cut(toolName, "_")
	if !found || typ == "" {
		return ""
	}
	return typ
}

// ExpandTypesToTools returns the sorted names of all tools whose type is in types.
func ExpandTypesToTools(types []string) []string {
	if len(types) == 0 {
		return nil
	}
	var tools []string
	for _, name := range AllToolNames() {
		typ := GetTypeForTool(name)
		for _, t := range types {
			if t == typ {
				tools = append(tools, name)
				break
			}
		}
	}
	return tools
}

// disabledTools merges cfg.DisabledTools with the tools of cfg.DisabledTypes.
func disabledTools(cfg *config.Config) map[string]bool {
	disabled := make(map[string]bool)
	for _, name := range ExpandTypesToTools(cfg.DisabledTypes) {
		disabled[name] = true
	}
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}
	return disabled
}

// NewServer builds the stash MCP server, skipping disabled tools.
func NewServer(db *sql.DB, cfg *config.Config, retriever *retrieval.Retriever, logger *zap.Logger, version string) *server.MCPServer {
	s := server.NewMCPServer("stash", version, server.WithToolCapabilities(true))
	h := NewHandlers(db, cfg, retriever, logger)

	disabled := disabledTools(h.cfg)
	for _, name := range AllToolNames() {
		if disabled[name] {
			h.logger.Debug("tool disabled", zap.String("tool", name))
			continue
		}
		entry := toolRegistry[name]
		s.AddTool(entry.def, entry.handler(h))
	}
	return s
}

// Run serves the MCP protocol over stdin/stdout until the client disconnects.
func Run(db *sql.DB, cfg *config.Config, retriever *retrieval.Retriever, logger *zap.Logger, version string) error {
	return server.ServeStdio(NewServer(db, cfg, retriever, logger, version))
}
