package mcp

import "github.com/mark3labs/mcp-go/mcp"

var saveToolDef = mcp.NewTool("item_save",
	mcp.WithDescription("Save content to the inbox. Text, link and file items are tagged automatically; "+
		"image items are tagged from the supplied collaborator tags. Returns the new id and its tags."),
	mcp.WithString("kind", mcp.Required(),
		mcp.Description("Item kind"),
		mcp.Enum("text", "image", "file", "link")),
	mcp.WithString("raw_content", mcp.Required(),
		mcp.Description("Note text, URL, or image/file location as dropped by the user")),
	mcp.WithString("extracted_text", mcp.Description("Text extracted from the content")),
	mcp.WithString("extracted_title", mcp.Description("Title extracted from the content")),
	mcp.WithString("extracted_excerpt", mcp.Description("Short excerpt for previews")),
	mcp.WithString("source_url", mcp.Description("Canonical URL of the content")),
	mcp.WithString("filename", mcp.Description("Original filename for file items")),
	mcp.WithArray("tags", mcp.WithStringItems(),
		mcp.Description("Image items only: tags produced by image analysis")),
	mcp.WithNumber("limit", mcp.Description("Maximum auto-generated tags (default from config, usually 1)")),
)

var fetchToolDef = mcp.NewTool("item_fetch",
	mcp.WithDescription("Fetch a saved item with all of its content and tags."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Item ID")),
	mcp.WithBoolean("include_deleted", mcp.Description("Also return soft-deleted items")),
)

var listToolDef = mcp.NewTool("item_list",
	mcp.WithDescription("List saved items newest first, without content."),
	mcp.WithString("kind", mcp.Description("Only list items of this kind"),
		mcp.Enum("text", "image", "file", "link")),
	mcp.WithNumber("limit", mcp.Description("Page size (default 20, max 100)")),
	mcp.WithNumber("offset", mcp.Description("Items to skip")),
)

var deleteToolDef = mcp.NewTool("item_delete",
	mcp.WithDescription("Soft-delete an item. Deleted items are never used to answer questions."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Item ID")),
)

var suggestToolDef = mcp.NewTool("item_suggest_tags",
	mcp.WithDescription("Suggest tags for an item that it does not already have. Nothing is saved."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Item ID")),
	mcp.WithNumber("limit", mcp.Description("Maximum suggestions (default from config, usually 2)")),
	mcp.WithBoolean("inline", mcp.Description("Use the inline single-suggestion default limit")),
	mcp.WithArray("supplied", mcp.WithStringItems(),
		mcp.Description("Image items only: fresh tags from image analysis")),
)

var acceptToolDef = mcp.NewTool("item_accept_tag",
	mcp.WithDescription("Add a tag to an item. Fails with TAG_ALREADY_EXISTS if the item has it (case-insensitive)."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Item ID")),
	mcp.WithString("tag", mcp.Required(), mcp.Description("Tag to add; a glyph is prefixed if missing")),
)

var askToolDef = mcp.NewTool("item_ask",
	mcp.WithDescription("Find the saved item that best answers a question. Returns found=false when nothing qualifies."),
	mcp.WithString("query", mcp.Required(), mcp.Description("The user's question")),
)

var emojiToolDef = mcp.NewTool("tag_emoji",
	mcp.WithDescription("Look up the display glyph for a tag."),
	mcp.WithString("tag", mcp.Required(), mcp.Description("Tag text")),
	mcp.WithString("mode", mcp.Description("link: curated dictionary (may return no glyph); smart: always returns a glyph"),
		mcp.Enum("link", "smart")),
)
