package tui

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/tessro/roundup/internal/bot"
	"github.com/tessro/roundup/internal/command"
)

var markdown = goldmark.New()

// renderCard draws a card as a bordered box no wider than width.
func renderCard(card *command.Card, width int) string {
	inner := width - 4 // border and padding
	if inner < 10 {
		inner = 10
	}

	var parts []string
	parts = append(parts, wrap(cardTitleStyle.Render(card.Title), inner))
	if card.Description != "" {
		parts = append(parts, wrap(renderMarkdown(card.Description), inner))
	}
	for _, f := range card.Fields {
		parts = append(parts,
			wrap(cardFieldNameStyle.Render(f.Name), inner)+"\n"+
				wrap(renderMarkdown(f.Value), inner))
	}
	if !card.Timestamp.IsZero() {
		parts = append(parts, cardFooterStyle.Render(card.Timestamp.Local().Format(bot.TimeFormat)))
	}

	return cardStyle.
		BorderForeground(cardColor(card.Color)).
		Width(inner + 2).
		Render(strings.Join(parts, "\n\n"))
}

// renderReply renders a bot reply for the transcript.
func renderReply(r command.Reply, width int) string {
	if r.Card != nil {
		return renderCard(r.Card, width)
	}
	return wrap(renderMarkdown(r.Text), width)
}

func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wordwrap.String(s, width)
}

// renderMarkdown renders chat-style Markdown (emphasis, strong, code spans,
// lists, code blocks) as styled terminal text. Raw HTML and anything else
// without a styled form is kept as written.
func renderMarkdown(src string) string {
	source := []byte(src)
	doc := markdown.Parser().Parse(text.NewReader(source))

	r := &mdRenderer{source: source}
	r.blocks(doc, "")
	return strings.TrimRight(r.b.String(), "\n")
}

type mdRenderer struct {
	source []byte
	b      strings.Builder
}

func (r *mdRenderer) blocks(n ast.Node, indent string) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.List:
			for item := c.FirstChild(); item != nil; item = item.NextSibling() {
				r.b.WriteString(indent + "• ")
				r.blocks(item, indent+"  ")
			}
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := c.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				r.b.WriteString(indent + codeStyle.Render(strings.TrimRight(string(seg.Value(r.source)), "\n")) + "\n")
			}
		case *ast.HTMLBlock:
			r.raw(c.Lines(), indent)
			if c.HasClosure() {
				r.b.WriteString(indent + strings.TrimRight(string(c.ClosureLine.Value(r.source)), "\n") + "\n")
			}
		case *ast.ThematicBreak:
			r.b.WriteString(indent + "---\n")
		case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
			r.b.WriteString(r.inline(c))
			r.b.WriteString("\n")
		default:
			r.blocks(c, indent)
		}
	}
}

// raw writes source lines unchanged.
func (r *mdRenderer) raw(lines *text.Segments, indent string) {
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		r.b.WriteString(indent + strings.TrimRight(string(seg.Value(r.source)), "\n") + "\n")
	}
}

// inline renders the inline children of n.
func (r *mdRenderer) inline(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(r.source))
			if c.SoftLineBreak() || c.HardLineBreak() {
				b.WriteString("\n")
			}
		case *ast.String:
			b.Write(c.Value)
		case *ast.Emphasis:
			inner := r.inline(c)
			if c.Level >= 2 {
				b.WriteString(strongStyle.Render(inner))
			} else {
				b.WriteString(emphasisStyle.Render(inner))
			}
		case *ast.CodeSpan:
			b.WriteString(codeStyle.Render(r.inline(c)))
		case *ast.AutoLink:
			b.Write(c.URL(r.source))
		case *ast.Link:
			b.WriteString(r.inline(c))
			if dest := string(c.Destination); dest != "" {
				b.WriteString(" (" + dest + ")")
			}
		case *ast.Image:
			b.WriteString(r.inline(c))
			if dest := string(c.Destination); dest != "" {
				b.WriteString(" (" + dest + ")")
			}
		case *ast.RawHTML:
			for i := 0; i < c.Segments.Len(); i++ {
				seg := c.Segments.At(i)
				b.Write(seg.Value(r.source))
			}
		default:
			b.WriteString(r.inline(c))
		}
	}
	return b.String()
}
