package htmltext

import "strings"

// kind identifies which variant a render node carries. The render tree is a
// tagged union rather than an interface hierarchy: every node played through
// the width solver and layout engine switches on kind, matching the way the
// rendered document model is dispatched throughout this package.
type kind int

const (
	kindText kind = iota
	kindLineBreak
	kindBlock
	kindList
	kindTable
	kindTableRow
	kindTableCell
	kindInline
	kindFragment
)

// blockKind distinguishes the Block variant's sub-kinds.
type blockKind int

const (
	blockParagraph blockKind = iota
	blockDiv
	blockBlockquote
	blockHeader
	blockListItem
	blockPre
)

// listKind distinguishes ordered from unordered lists.
type listKind int

const (
	listUnordered listKind = iota
	listOrdered
)

// inlineKind distinguishes the Inline variant's sub-kinds.
type inlineKind int

const (
	inlineEmphasis inlineKind = iota
	inlineStrong
	inlineLink
	inlineImage
)

// node is a single render-tree node. Only the fields relevant to its kind
// are populated; this mirrors a tagged union without requiring a separate
// Go type per variant, which keeps the builder, width solver, and layout
// engine working against one shape.
type node struct {
	kind kind

	// kindText
	text string

	// kindBlock
	block blockKind
	level int // header level 1-6

	// kindList
	list  listKind
	start int

	// kindTable
	columns int

	// kindTableCell
	colspan int

	// kindInline
	inline inlineKind
	target string // link target, or image alt text

	children []*node
}

func newFragment() *node {
	return &node{kind: kindFragment}
}

func (n *node) addChild(c *node) {
	if c == nil {
		return
	}
	n.children = append(n.children, c)
}

// isEmptyOfVisibleContent reports whether a node renders no visible output
// at all, used to suppress empty list items (spec: "An empty list item ...
// produces no visible output").
func (n *node) isEmptyOfVisibleContent() bool {
	if n.kind == kindBlock && n.block == blockPre {
		// Inside <pre> every character, spaces included, is output.
		var b strings.Builder
		collectPreText(n, &b)
		return b.Len() == 0
	}
	switch n.kind {
	case kindText:
		// Outside <pre> the builder has folded whitespace to single spaces,
		// which the layout engine trims at block edges.
		return strings.Trim(n.text, " ") == ""
	case kindLineBreak:
		return false
	case kindInline:
		if n.inline == inlineImage {
			return n.target == ""
		}
		for _, c := range n.children {
			if !c.isEmptyOfVisibleContent() {
				return false
			}
		}
		return true
	default:
		for _, c := range n.children {
			if !c.isEmptyOfVisibleContent() {
				return false
			}
		}
		return true
	}
}
