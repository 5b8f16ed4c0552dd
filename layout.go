package htmltext

import "strings"

// layoutCtx carries the per-document state threaded through the layout
// walk: the active width, the decorator, and the link-interning table
// (first-seen href gets the next 1-based index).
type layoutCtx struct {
	width     int
	decorator Decorator
	linkIndex map[string]int
	linkOrder []string
}

func newLayoutCtx(width int, d Decorator) *layoutCtx {
	if d == nil {
		d = DefaultDecorator{}
	}
	return &layoutCtx{width: width, decorator: d, linkIndex: map[string]int{}}
}

func (c *layoutCtx) internLink(target string) int {
	if idx, ok := c.linkIndex[target]; ok {
		return idx
	}
	idx := len(c.linkOrder) + 1
	c.linkIndex[target] = idx
	c.linkOrder = append(c.linkOrder, target)
	return idx
}

// blockRenderer accumulates output lines for the whole document, applying
// a prefix stack (indentation, bullets, blockquote markers) to every line
// it emits.
type blockRenderer struct {
	ctx    *layoutCtx
	lines  []string
	prefix []string // stack of per-level continuation prefixes (blockquote/list indent)

	// firstLinePrefixOverride holds, per open prefix frame, the text to
	// use in place of the continuation prefix the next time a line is
	// emitted (a bullet or blockquote marker differs from its own
	// continuation indent on the very first line it introduces).
	firstLinePrefixOverride []string
}

// layoutDocument renders the root fragment tree to plain text.
func layoutDocument(root *node, width int, d Decorator) string {
	ctx := newLayoutCtx(width, d)
	r := &blockRenderer{ctx: ctx}
	r.renderBlockChildren(root.children)
	footer := ctx.decorator.Finalize(ctx.linkOrder)
	if len(footer) > 0 {
		if len(r.lines) > 0 {
			r.lines = append(r.lines, "")
		}
		for _, f := range footer {
			r.lines = append(r.lines, wrapText(f, clampWidth(width, 0))...)
		}
	}
	if len(r.lines) == 0 {
		return ""
	}
	return strings.Join(r.lines, "\n") + "\n"
}

func (r *blockRenderer) currentIndent() int {
	n := 0
	for _, p := range r.prefix {
		n += displayWidth(p)
	}
	return n
}

func (r *blockRenderer) availableWidth() int {
	return clampWidth(r.ctx.width-r.currentIndent(), 0)
}

// renderBlockChildren walks a sequence of block-level siblings (the
// children of a fragment, div, blockquote, body, or list item), inserting
// a blank line between adjacent blocks that both produce visible output,
// except between two sibling divs, which are line-breaking but not
// paragraph-breaking.
func (r *blockRenderer) renderBlockChildren(children []*node) {
	var prev *node
	for _, c := range children {
		if c.isEmptyOfVisibleContent() && c.kind != kindTable {
			continue
		}
		before := len(r.lines)
		r.renderBlock(c)
		emitted := len(r.lines) > before
		if emitted && prev != nil && needsBlankLineBetween(prev, c) {
			r.lines = append(r.lines[:before], append([]string{""}, r.lines[before:]...)...)
		}
		if emitted {
			prev = c
		}
	}
}

// needsBlankLineBetween reports whether a blank separator line precedes
// current, given the previous emitting sibling prev. Every adjacent pair
// gets one blank line except two sibling divs, which are line-breaking but
// not paragraph-breaking.
func needsBlankLineBetween(prev, current *node) bool {
	if isDiv(prev) && isDiv(current) {
		return false
	}
	return true
}

func isDiv(n *node) bool {
	return n.kind == kindBlock && n.block == blockDiv
}

func (r *blockRenderer) renderBlock(n *node) {
	switch n.kind {
	case kindFragment:
		r.renderBlockChildren(n.children)

	case kindBlock:
		switch n.block {
		case blockPre:
			r.renderPre(n)
		case blockHeader:
			r.renderHeader(n)
		case blockBlockquote:
			r.pushPrefix("> ", "> ")
			r.renderBlockChildren(n.children)
			r.popPrefix()
		case blockListItem:
			r.renderParagraphLike(n.children)
		default: // paragraph, div
			r.renderParagraphLike(n.children)
		}

	case kindList:
		r.renderList(n)

	case kindTable:
		r.renderTable(n)

	default:
		r.renderParagraphLike([]*node{n})
	}
}

func (r *blockRenderer) pushPrefix(first, rest string) {
	r.prefix = append(r.prefix, rest)
	r.firstLinePrefixOverride = append(r.firstLinePrefixOverride, first)
}

func (r *blockRenderer) popPrefix() {
	r.prefix = r.prefix[:len(r.prefix)-1]
	r.firstLinePrefixOverride = r.firstLinePrefixOverride[:len(r.firstLinePrefixOverride)-1]
}

func (r *blockRenderer) renderHeader(n *node) {
	marker := strings.Repeat("#", clampInt(n.level, 1, 6)) + " "
	text := renderInlineRun(r.ctx, n.children)
	width := r.availableWidth()
	wrapped := wrapText(text, width)
	if len(wrapped) == 0 {
		wrapped = []string{""}
	}
	wrapped[0] = marker + wrapped[0]
	cont := strings.Repeat(" ", displayWidth(marker))
	for i := 1; i < len(wrapped); i++ {
		wrapped[i] = cont + wrapped[i]
	}
	r.emitLines(wrapped)
}

func (r *blockRenderer) renderParagraphLike(children []*node) {
	text := renderInlineRun(r.ctx, children)
	if text == "" {
		return
	}
	wrapped := wrapText(text, r.availableWidth())
	r.emitLines(wrapped)
}

func (r *blockRenderer) renderPre(n *node) {
	var raw strings.Builder
	collectPreText(n, &raw)
	text := expandTabs(raw.String())
	// Split without trimming trailing newlines: each one honored from the
	// source contributes its own (possibly blank) trailing line, rather
	// than being normalized away to a single terminator.
	for _, line := range strings.Split(text, "\n") {
		r.emitLines([]string{line})
	}
}

func collectPreText(n *node, b *strings.Builder) {
	switch n.kind {
	case kindText:
		b.WriteString(n.text)
	case kindLineBreak:
		b.WriteString("\n")
	default:
		for _, c := range n.children {
			collectPreText(c, b)
		}
	}
}

func expandTabs(s string) string {
	const tabWidth = 8
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			spaces := tabWidth - (col % tabWidth)
			b.WriteString(strings.Repeat(" ", spaces))
			col += spaces
			continue
		}
		if r == '\n' {
			b.WriteRune(r)
			col = 0
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

func (r *blockRenderer) renderList(n *node) {
	numberWidth := 0
	markerWidth := 2
	if n.list == listOrdered {
		last := n.start + len(n.children) - 1
		numberWidth = len(itoa(last))
		markerWidth = numberWidth + 2
	}
	for i, item := range n.children {
		var marker string
		if n.list == listOrdered {
			num := itoa(n.start + i)
			base := num + "."
			marker = base + strings.Repeat(" ", markerWidth-len(base))
		} else {
			marker = "* "
		}
		cont := strings.Repeat(" ", displayWidth(marker))
		r.pushPrefix(marker, cont)
		r.renderBlockChildren(flattenListItem(item))
		r.popPrefix()
	}
}

// flattenListItem returns the block children to render for a single <li>;
// a list item's own block wrapper (blockListItem) is transparent once the
// marker has been emitted via the prefix stack.
func flattenListItem(item *node) []*node {
	if item.kind == kindBlock && item.block == blockListItem {
		return item.children
	}
	return []*node{item}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var b [20]byte
	i := len(b)
	for n > 0 {
		i--
		b[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		b[i] = '-'
	}
	return string(b[i:])
}

// emitLines appends wrapped lines, applying the current prefix stack; the
// first emitted line in this call uses the "first" variant of any pending
// prefix frame (e.g. "> " vs a blockquote continuation, or a list marker
// vs its indent), all subsequent lines use the continuation variant.
func (r *blockRenderer) emitLines(lines []string) {
	for i, l := range lines {
		r.lines = append(r.lines, r.buildPrefix(i == 0)+l)
	}
	r.consumedFirstLine()
}

func (r *blockRenderer) buildPrefix(firstLine bool) string {
	var b strings.Builder
	for i, p := range r.prefix {
		if firstLine && r.firstLinePrefixOverride[i] != "" {
			b.WriteString(r.firstLinePrefixOverride[i])
		} else {
			b.WriteString(p)
		}
	}
	return b.String()
}

// consumedFirstLine marks every open prefix frame's first-line override as
// spent, so a second block rendered under the same list item/blockquote
// frame (e.g. a second paragraph inside one <li>) gets the continuation
// indent instead of repeating the marker.
func (r *blockRenderer) consumedFirstLine() {
	for i := range r.firstLinePrefixOverride {
		r.firstLinePrefixOverride[i] = ""
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
