package htmltext

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// maxBuildDepth bounds how deep the builder will descend into the DOM
// before giving up on structure and flattening the remainder to its text
// content. It exists so that a pathological document (1000 levels of
// unknown tags, or 1000 nested tables) cannot exhaust resources; Go's
// growable goroutine stacks would tolerate the recursion itself, but the
// spec calls for an explicit bound regardless of the host's stack limits.
const maxBuildDepth = 400

var whitespaceRun = regexp.MustCompile(`[ \t\r\n]+`)

// scriptStyleTags are dropped whole, including their text content.
var scriptStyleTags = map[atom.Atom]bool{
	atom.Script: true,
	atom.Style:  true,
	atom.Head:   true,
}

// buildCtx threads whitespace/pre state through the recursive descent.
// <html>/<body>/<thead>/<tbody>/<tfoot>/<span> and any unknown tag fall
// through buildElement's default case and render transparently.
type buildCtx struct {
	isPre bool
}

// buildTree walks root (typically the *html.Node returned by html.Parse)
// and produces the render-node tree the width solver and layout engine
// consume.
func buildTree(root *html.Node) *node {
	ctx := &buildCtx{}
	out := newFragment()
	buildChildren(ctx, root, out, 0)
	return out
}

func buildChildren(ctx *buildCtx, n *html.Node, into *node, depth int) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if child := buildNode(ctx, c, depth); child != nil {
			into.addChild(child)
		}
	}
}

// buildNode converts a single DOM node (and, recursively, its subtree) into
// a render node, or nil if it contributes nothing (comments, dropped
// subtrees).
func buildNode(ctx *buildCtx, n *html.Node, depth int) *node {
	switch n.Type {
	case html.CommentNode, html.DoctypeNode:
		return nil

	case html.TextNode:
		return buildText(ctx, n.Data)

	case html.ElementNode:
		if scriptStyleTags[n.DataAtom] {
			return nil
		}
		if depth >= maxBuildDepth {
			// Flatten: keep going, but as plain text content only, so a
			// pathologically deep chain of unknown tags still terminates
			// and renders deterministically instead of growing the tree
			// without bound.
			return buildText(ctx, flattenText(n))
		}
		return buildElement(ctx, n, depth)

	default:
		return nil
	}
}

// flattenText concatenates the text content of n and its descendants,
// ignoring all structure. Used once the builder gives up on depth.
func flattenText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func buildText(ctx *buildCtx, data string) *node {
	data = stripControlChars(data)
	if ctx.isPre {
		return &node{kind: kindText, text: data}
	}
	collapsed := collapseWhitespace(data)
	if collapsed == "" {
		return nil
	}
	return &node{kind: kindText, text: collapsed}
}

// collapseWhitespace turns runs of ASCII whitespace into a single space.
// Leading/trailing trimming at block boundaries is handled by the layout
// engine (which knows whether a given text node is first/last within its
// block), not here, since a single text node is built without sibling
// context.
func collapseWhitespace(s string) string {
	return whitespaceRun.ReplaceAllString(s, " ")
}

// stripControlChars drops C0/C1 control characters (tab/LF/CR are handled
// by collapseWhitespace or preserved verbatim in <pre>, so they are not
// touched here).
func stripControlChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\t' || r == '\n' || r == '\r' {
			b.WriteRune(r)
			continue
		}
		if r < 0x20 || (r >= 0x7f && r <= 0x9f) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func buildElement(ctx *buildCtx, n *html.Node, depth int) *node {
	switch n.DataAtom {
	case atom.Br:
		return &node{kind: kindLineBreak}

	case atom.P:
		return buildBlock(ctx, n, blockParagraph, depth)
	case atom.Div:
		return buildBlock(ctx, n, blockDiv, depth)
	case atom.Blockquote:
		return buildBlock(ctx, n, blockBlockquote, depth)
	case atom.Li:
		return buildBlock(ctx, n, blockListItem, depth)
	case atom.Pre:
		return buildPre(ctx, n, depth)

	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		b := buildBlock(ctx, n, blockHeader, depth)
		b.level = headerLevel(n.DataAtom)
		return b

	case atom.Ul:
		return buildList(ctx, n, listUnordered, 1, depth)
	case atom.Ol:
		start := 1
		if v, ok := attr(n, "start"); ok {
			if iv, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				start = iv
			}
		}
		return buildList(ctx, n, listOrdered, start, depth)

	case atom.Table:
		return buildTable(ctx, n, depth)

	case atom.Em, atom.I:
		return buildInline(ctx, n, inlineEmphasis, "", depth)
	case atom.Strong, atom.B:
		return buildInline(ctx, n, inlineStrong, "", depth)
	case atom.A:
		href, _ := attr(n, "href")
		return buildInline(ctx, n, inlineLink, href, depth)
	case atom.Img:
		alt, _ := attr(n, "alt")
		return &node{kind: kindInline, inline: inlineImage, target: alt}

	default:
		// Unknown tags (and structurally-transparent known tags such as
		// <html>/<body>/<thead>) render their children only.
		out := newFragment()
		buildChildren(ctx, n, out, depth+1)
		return out
	}
}

func headerLevel(a atom.Atom) int {
	switch a {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	default:
		return 6
	}
}

func buildBlock(ctx *buildCtx, n *html.Node, bk blockKind, depth int) *node {
	out := &node{kind: kindBlock, block: bk}
	buildChildren(ctx, n, out, depth+1)
	return out
}

func buildPre(ctx *buildCtx, n *html.Node, depth int) *node {
	out := &node{kind: kindBlock, block: blockPre}
	inner := *ctx
	inner.isPre = true
	buildChildren(&inner, n, out, depth+1)
	return out
}

func buildList(ctx *buildCtx, n *html.Node, lk listKind, start int, depth int) *node {
	out := &node{kind: kindList, list: lk, start: start}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.DataAtom != atom.Li {
			// Stray non-<li> content directly inside a list is dropped;
			// browsers would otherwise move it outside the list entirely.
			continue
		}
		item := buildNode(ctx, c, depth+1)
		if item == nil {
			continue
		}
		if item.isEmptyOfVisibleContent() {
			continue
		}
		out.addChild(item)
	}
	return out
}

func buildInline(ctx *buildCtx, n *html.Node, ik inlineKind, target string, depth int) *node {
	out := &node{kind: kindInline, inline: ik, target: target}
	buildChildren(ctx, n, out, depth+1)
	return out
}

func buildTable(ctx *buildCtx, n *html.Node, depth int) *node {
	tbl := &node{kind: kindTable}
	var rows []*node
	var walkRows func(*html.Node, int)
	walkRows = func(n *html.Node, d int) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.DataAtom {
			case atom.Tr:
				rows = append(rows, buildRow(ctx, c, d+1))
			case atom.Thead, atom.Tbody, atom.Tfoot:
				if d+1 < maxBuildDepth {
					walkRows(c, d+1)
				}
			}
		}
	}
	walkRows(n, depth)
	tbl.children = rows

	maxCols := 0
	for _, r := range rows {
		w := 0
		for _, cell := range r.children {
			w += cell.colspan
		}
		if w > maxCols {
			maxCols = w
		}
	}
	if maxCols == 0 {
		maxCols = 1
	}
	tbl.columns = maxCols
	normalizeTableRows(tbl)
	return tbl
}

func buildRow(ctx *buildCtx, n *html.Node, depth int) *node {
	row := &node{kind: kindTableRow}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.DataAtom != atom.Td && c.DataAtom != atom.Th {
			continue
		}
		colspan := 1
		if v, ok := attr(c, "colspan"); ok {
			if iv, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && iv > 0 {
				colspan = iv
			}
		}
		cell := &node{kind: kindTableCell, colspan: colspan}
		buildChildren(ctx, c, cell, depth+1)
		row.addChild(cell)
	}
	return row
}

// normalizeTableRows pads short rows with empty cells and truncates
// overflowing colspans so every row's cell colspans sum to exactly the
// table's column count, per the render-node invariant.
func normalizeTableRows(tbl *node) {
	for _, row := range tbl.children {
		total := 0
		var kept []*node
		for _, cell := range row.children {
			if total >= tbl.columns {
				break
			}
			if total+cell.colspan > tbl.columns {
				cell.colspan = tbl.columns - total
			}
			total += cell.colspan
			kept = append(kept, cell)
		}
		for total < tbl.columns {
			kept = append(kept, &node{kind: kindTableCell, colspan: 1})
			total++
		}
		row.children = kept
	}
}
