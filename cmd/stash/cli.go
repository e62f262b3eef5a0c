package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/stash/internal/config"
	"github.com/hpungsan/stash/internal/errors"
	"github.com/hpungsan/stash/internal/ops"
	"github.com/hpungsan/stash/internal/retrieval"
)

// MaxStdinBytes bounds content piped into save.
const MaxStdinBytes = 1 << 20

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config, retriever *retrieval.Retriever) *cli.App {
	app := &cli.App{
		Name:    "stash",
		Usage:   "Save links, notes, images and files; tag them automatically; ask about them later",
		Version: Version,
		Commands: []*cli.Command{
			saveCmd(db, cfg),
			fetchCmd(db),
			listCmd(db),
			deleteCmd(db),
			suggestCmd(db, cfg),
			acceptCmd(db),
			askCmd(db, retriever),
			emojiCmd(),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// saveCmd creates the save command.
func saveCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "save",
		Usage:     "Save an item (content from arguments, or piped via stdin)",
		ArgsUsage: "[content]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "kind", Aliases: []string{"k"}, Value: "text", Usage: "Item kind: text|image|file|link"},
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Extracted title"},
			&cli.StringFlag{Name: "text", Usage: "Extracted text"},
			&cli.StringFlag{Name: "excerpt", Usage: "Extracted excerpt"},
			&cli.StringFlag{Name: "url", Usage: "Source URL"},
			&cli.StringFlag{Name: "filename", Aliases: []string{"f"}, Usage: "Original filename"},
			&cli.StringFlag{Name: "tags", Usage: "Comma-separated image analysis tags (image items only)"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum auto-generated tags"},
		},
		Action: func(c *cli.Context) error {
			content := strings.Join(c.Args().Slice(), " ")
			if content == "" && stdinHasData() {
				var err error
				content, err = readStdin(MaxStdinBytes)
				if err != nil {
					return outputError(errors.NewInvalidRequest(err.Error()))
				}
			}

			input := ops.SaveInput{
				Kind:             c.String("kind"),
				RawContent:       content,
				ExtractedTitle:   c.String("title"),
				ExtractedText:    c.String("text"),
				ExtractedExcerpt: c.String("excerpt"),
				SourceURL:        c.String("url"),
				Filename:         c.String("filename"),
				Tags:             parseTags(c.String("tags")),
				Limit:            intFlag(c, "limit"),
			}

			output, err := ops.Save(c.Context, db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// fetchCmd creates the fetch command.
func fetchCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Fetch an item by ID",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "include-deleted", Usage: "Include soft-deleted items"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Fetch(c.Context, db, ops.FetchInput{
				ID:             c.Args().First(),
				IncludeDeleted: c.Bool("include-deleted"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List items, newest first",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "kind", Aliases: []string{"k"}, Usage: "Filter by kind"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Maximum items to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Usage: "Number of items to skip"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.List(c.Context, db, ops.ListInput{
				Kind:   c.String("kind"),
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Soft-delete an item",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			output, err := ops.Delete(c.Context, db, ops.DeleteInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// suggestCmd creates the suggest command.
func suggestCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "suggest",
		Usage:     "Suggest tags an item does not have yet",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum suggestions"},
			&cli.BoolFlag{Name: "inline", Usage: "Use the inline suggestion default"},
			&cli.StringFlag{Name: "supplied", Usage: "Comma-separated image analysis tags (image items only)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.SuggestTags(c.Context, db, cfg, ops.SuggestTagsInput{
				ID:       c.Args().First(),
				Limit:    intFlag(c, "limit"),
				Inline:   c.Bool("inline"),
				Supplied: parseTags(c.String("supplied")),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// acceptCmd creates the accept command.
func acceptCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "accept",
		Usage:     "Add a tag to an item",
		ArgsUsage: "<id> <tag>",
		Action: func(c *cli.Context) error {
			args := c.Args().Slice()
			input := ops.AcceptTagInput{}
			if len(args) > 0 {
				input.ID = args[0]
				input.Tag = strings.Join(args[1:], " ")
			}

			output, err := ops.AcceptTag(c.Context, db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// askCmd creates the ask command.
func askCmd(db *sql.DB, retriever *retrieval.Retriever) *cli.Command {
	return &cli.Command{
		Name:      "ask",
		Usage:     "Find the saved item that best answers a question",
		ArgsUsage: "<question>",
		Action: func(c *cli.Context) error {
			output, err := ops.Ask(c.Context, db, retriever, ops.AskInput{
				Query: strings.Join(c.Args().Slice(), " "),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// emojiCmd creates the emoji command. It needs no database.
func emojiCmd() *cli.Command {
	return &cli.Command{
		Name:      "emoji",
		Usage:     "Show the glyph for a tag",
		ArgsUsage: "<tag>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: ops.EmojiModeLink, Usage: "Mapping: link|smart"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Emoji(ops.EmojiInput{
				Tag:  strings.Join(c.Args().Slice(), " "),
				Mode: c.String("mode"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if sErr, ok := errors.As(err); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", sErr.Code, sErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// intFlag returns a pointer to the flag value, or nil when it was not given.
func intFlag(c *cli.Context, name string) *int {
	if !c.IsSet(name) {
		return nil
	}
	v := c.Int(name)
	return &v
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin, up to maxBytes.
func readStdin(maxBytes int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(os.Stdin, maxBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > maxBytes {
		return "", fmt.Errorf("stdin exceeds %d bytes", maxBytes)
	}
	return strings.TrimSpace(string(data)), nil
}

// parseTags splits a comma-separated string into a slice of tags.
func parseTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
