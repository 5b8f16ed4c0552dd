// Package htmltext renders an HTML document to word-wrapped plain text
// sized to a fixed terminal width, in the spirit of a text-mode browser:
// block structure becomes indentation and blank lines, tables become
// bordered grids, and links/emphasis become an inline marker plus an
// optional footer, per the active Decorator.
package htmltext

import (
	"bytes"

	"golang.org/x/net/html"
)

// minWidth is the narrowest width the renderer will ever lay out against,
// regardless of what the caller asks for.
const minWidth = 1

// Render converts HTML source to plain text wrapped to width columns,
// using DefaultDecorator for inline markers and the link footer.
func Render(source []byte, width int) (string, error) {
	return RenderWith(source, width, DefaultDecorator{})
}

// RenderWith is Render with an explicit Decorator, letting a caller
// suppress markers entirely (TrivialDecorator) or supply its own.
func RenderWith(source []byte, width int, decorator Decorator) (string, error) {
	doc, err := html.Parse(bytes.NewReader(source))
	if err != nil {
		return "", newError(KindMalformedInput, err.Error())
	}
	width = clampWidth(width, 0)
	tree := buildTree(doc)
	if err := validateTable(tree); err != nil {
		return "", err
	}
	return layoutDocument(tree, width, decorator), nil
}

// validateTable walks the tree checking the table normalization invariant
// build.go is supposed to uphold (every row's colspans sum to the table's
// column count); a violation means the builder has a bug rather than
// anything the input document could trigger; it is handed back as a
// KindInternalInvariant error rather than panicking, per the reference
// policy for this class of fault.
func validateTable(n *node) error {
	if n.kind == kindTable {
		for _, row := range n.children {
			total := 0
			for _, cell := range row.children {
				total += cell.colspan
			}
			if total != n.columns {
				return newError(KindInternalInvariant, "table row colspan sum does not match column count")
			}
		}
	}
	for _, c := range n.children {
		if err := validateTable(c); err != nil {
			return err
		}
	}
	return nil
}
