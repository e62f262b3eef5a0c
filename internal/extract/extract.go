// Package extract derives title, plain text and excerpt from content the
// user typed directly, standing in for the external extraction service.
package extract

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"

	"github.com/hpungsan/stash/internal/item"
)

// Limits on derived fields, in characters.
const (
	MaxTitleChars   = 50
	MaxExcerptChars = 150
)

// Result holds the fields extracted from a note.
type Result struct {
	Title   string
	Text    string
	Excerpt string
}

var md = goldmark.New()

// Markdown parses source as CommonMark. Title is the first heading, else the
// first line of text; Excerpt is the first paragraph. All fields are empty
// for blank input.
func Markdown(source string) Result {
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src))

	var (
		body    strings.Builder
		title   string
		excerpt string
	)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			s := inlineText(n, src)
			if title == "" {
				title = s
			}
			appendLine(&body, s)
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph, *ast.TextBlock:
			s := inlineText(n, src)
			if excerpt == "" && n.Kind() == ast.KindParagraph {
				excerpt = s
			}
			appendLine(&body, s)
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			appendLine(&body, blockLines(n, src))
			return ast.WalkSkipChildren, nil
		case *ast.HTMLBlock, *ast.ThematicBreak:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	plain := strings.TrimSpace(body.String())
	if title == "" {
		title = item.FirstLine(plain, MaxTitleChars)
	}
	if excerpt == "" {
		excerpt = plain
	}
	return Result{
		Title:   item.Truncate(title, MaxTitleChars),
		Text:    plain,
		Excerpt: item.Truncate(item.CollapseWhitespace(excerpt), MaxExcerptChars),
	}
}

// CleanDisplayTitle decodes HTML entities and collapses whitespace.
func CleanDisplayTitle(s string) string {
	return item.CollapseWhitespace(html.UnescapeString(s))
}

func appendLine(b *strings.Builder, s string) {
	if s == "" {
		return
	}
	if b.Len() > 0 {
		b.WriteByte('\n')
	}
	b.WriteString(s)
}

// inlineText flattens the inline children of a block into plain text.
func inlineText(block ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(block, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Text:
			b.Write(n.Segment.Value(src))
			if n.SoftLineBreak() || n.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(n.Value)
		case *ast.AutoLink:
			b.Write(n.Label(src))
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

func blockLines(n ast.Node, src []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return strings.TrimSpace(b.String())
}
