package htmltext

import (
	"strings"

	"github.com/rivo/uniseg"
)

// renderInlineRun flattens an inline sequence (the children of a paragraph,
// header, or list item) into a single string with markers applied and
// collapses adjacent whitespace that arises at element boundaries, but
// does not wrap it; wrapText does that separately once the available width
// at this nesting level is known.
func renderInlineRun(ctx *layoutCtx, children []*node) string {
	var b strings.Builder
	renderInlineChildren(ctx, children, &b)
	return strings.Trim(collapseSpaces(b.String()), " \n")
}

func renderInlineChildren(ctx *layoutCtx, children []*node, b *strings.Builder) {
	for _, c := range children {
		renderInline(ctx, c, b)
	}
}

func renderInline(ctx *layoutCtx, n *node, b *strings.Builder) {
	switch n.kind {
	case kindText:
		b.WriteString(n.text)

	case kindLineBreak:
		b.WriteString("\n")

	case kindInline:
		switch n.inline {
		case inlineEmphasis:
			prefix, suffix := ctx.decorator.DecorateEmphasis()
			b.WriteString(prefix)
			renderInlineChildren(ctx, n.children, b)
			b.WriteString(suffix)
		case inlineStrong:
			prefix, suffix := ctx.decorator.DecorateStrong()
			b.WriteString(prefix)
			renderInlineChildren(ctx, n.children, b)
			b.WriteString(suffix)
		case inlineLink:
			idx := ctx.internLink(n.target)
			b.WriteString(ctx.decorator.DecorateLinkStart(n.target, idx))
			renderInlineChildren(ctx, n.children, b)
			b.WriteString(ctx.decorator.DecorateLinkEnd(n.target, idx))
		case inlineImage:
			b.WriteString(ctx.decorator.DecorateImage(n.target))
		}

	default:
		// A block-shaped node nested in inline position (malformed input)
		// is rendered as its flattened inline content rather than dropped.
		renderInlineChildren(ctx, n.children, b)
	}
}

// collapseSpaces collapses runs of plain spaces (already whitespace-folded
// by the builder) introduced where two inline runs abut across an element
// boundary, while leaving explicit line breaks alone.
func collapseSpaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = collapseWhitespace(l)
	}
	return strings.Join(lines, "\n")
}

// wrapText greedily packs whitespace-separated words into lines no wider
// than width (display columns, not bytes/runes), breaking only at spaces
// except when a single word is itself wider than width, in which case it
// is split at a grapheme-cluster boundary so no line ever contains a
// partial character. Explicit line breaks (\n, from <br>) always start a
// new line regardless of available width.
func wrapText(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	var out []string
	for _, paragraphLine := range strings.Split(s, "\n") {
		out = append(out, wrapLine(paragraphLine, width)...)
	}
	return out
}

// splitOnASCIISpace breaks s at literal 0x20 space characters only, unlike
// strings.Fields, which also treats U+00A0 (the decoded form of &nbsp;) as a
// break point; &nbsp; is meant to glue its neighboring words together.
func splitOnASCIISpace(s string) []string {
	var words []string
	for _, w := range strings.Split(s, " ") {
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

func wrapLine(s string, width int) []string {
	words := splitOnASCIISpace(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	var cur strings.Builder
	curWidth := 0

	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		curWidth = 0
	}

	for _, w := range words {
		ww := displayWidth(w)
		if ww > width {
			if curWidth > 0 {
				flush()
			}
			pieces := breakAtGraphemes(w, width)
			for _, piece := range pieces[:len(pieces)-1] {
				lines = append(lines, piece)
			}
			last := pieces[len(pieces)-1]
			cur.WriteString(last)
			curWidth = displayWidth(last)
			continue
		}
		if curWidth == 0 {
			cur.WriteString(w)
			curWidth = ww
			continue
		}
		if curWidth+1+ww > width {
			flush()
			cur.WriteString(w)
			curWidth = ww
			continue
		}
		cur.WriteByte(' ')
		cur.WriteString(w)
		curWidth += 1 + ww
	}
	if curWidth > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}

// breakAtGraphemes splits an overlong atomic word into width-wide pieces,
// never cutting inside a grapheme cluster.
func breakAtGraphemes(word string, width int) []string {
	var pieces []string
	var cur strings.Builder
	curWidth := 0

	g := uniseg.NewGraphemes(word)
	for g.Next() {
		cluster := g.Str()
		cw := displayWidth(cluster)
		if curWidth > 0 && curWidth+cw > width {
			pieces = append(pieces, cur.String())
			cur.Reset()
			curWidth = 0
		}
		cur.WriteString(cluster)
		curWidth += cw
	}
	if cur.Len() > 0 {
		pieces = append(pieces, cur.String())
	}
	if len(pieces) == 0 {
		pieces = []string{""}
	}
	return pieces
}
