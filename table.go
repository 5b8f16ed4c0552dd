package htmltext

import "strings"

// renderTable lays out a table as a grid, drawing box rule characters
// above, between and below rows and between cells (no left or right outer
// border), handling colspan by merging the
// interior vertical rule across the spanned columns, and wrapping cell
// content to the solved column widths.
func (r *blockRenderer) renderTable(n *node) {
	width := r.availableWidth()
	cols := solveTableColumns(n, width)
	colWidths := make([]int, len(cols))
	for i, c := range cols {
		colWidths[i] = c.desired
	}

	grid := buildTableGrid(r.ctx, n, colWidths)

	var lines []string
	lines = append(lines, ruleLine(colWidths, nil, '┬'))
	for ri, row := range grid {
		lines = append(lines, row...)
		if ri < len(grid)-1 {
			lines = append(lines, ruleLine(colWidths, spanBoundary(n, ri), '┼'))
		}
	}
	lines = append(lines, ruleLine(colWidths, nil, '┴'))

	r.emitLines(lines)
}

// buildTableGrid renders every row's cells to their wrapped text and
// assembles the bordered lines for that row, one []string per row.
func buildTableGrid(ctx *layoutCtx, tbl *node, colWidths []int) [][]string {
	grid := make([][]string, len(tbl.children))
	for ri, row := range tbl.children {
		grid[ri] = renderTableRow(ctx, row, colWidths)
	}
	return grid
}

func renderTableRow(ctx *layoutCtx, row *node, colWidths []int) []string {
	type cellLines struct {
		lines []string
		width int
	}
	cells := make([]cellLines, len(row.children))
	height := 1
	col := 0
	for i, cell := range row.children {
		w := spanWidth(colWidths, col, cell.colspan)
		lines := renderCellContent(ctx, cell.children, w)
		if len(lines) == 0 {
			lines = []string{""}
		}
		cells[i] = cellLines{lines: lines, width: w}
		if len(lines) > height {
			height = len(lines)
		}
		col += cell.colspan
	}

	out := make([]string, height)
	for l := 0; l < height; l++ {
		var b strings.Builder
		for i, c := range cells {
			if i > 0 {
				b.WriteString("│")
			}
			var text string
			if l < len(c.lines) {
				text = c.lines[l]
			}
			b.WriteString(padRight(text, c.width))
		}
		out[l] = b.String()
	}
	return out
}

// renderCellContent lays out a cell's children at width w. A cell holding
// only inline-shaped content (the common case: text, emphasis, links) is
// rendered as a single wrapped inline run, matching the plain-text cells in
// spec.md §8's literal scenarios. A cell holding block-level content —
// most importantly a nested table — recurses into the full block layout
// engine so a table-in-a-table gets its own grid, rules included, rather
// than having its structure flattened to text. The nested grid is drawn
// inside the cell as it is: its rules are not merged with the parent's
// separators, and renderTable places the parent's junctions without regard
// to the nested table's column boundaries.
func renderCellContent(ctx *layoutCtx, children []*node, w int) []string {
	if !hasBlockLevelChild(children) {
		text := renderInlineRun(ctx, children)
		return wrapText(text, clampWidth(w, 0))
	}
	saved := ctx.width
	ctx.width = w
	cr := &blockRenderer{ctx: ctx}
	cr.renderBlockChildren(children)
	ctx.width = saved
	return cr.lines
}

func hasBlockLevelChild(children []*node) bool {
	for _, c := range children {
		if c.kind == kindBlock || c.kind == kindList || c.kind == kindTable {
			return true
		}
	}
	return false
}

func padRight(s string, width int) string {
	w := displayWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// spanWidth returns the rendered width available to a cell spanning
// `span` columns starting at `col`: the sum of those columns' widths plus
// the interior vertical rules it swallows.
func spanWidth(colWidths []int, col, span int) int {
	w := 0
	for i := 0; i < span && col+i < len(colWidths); i++ {
		w += colWidths[col+i]
	}
	if span > 1 {
		w += span - 1
	}
	return w
}

// ruleLine draws a horizontal rule across the table. It carries no outer
// border: a rule is just the column widths' worth of ─ joined by a
// junction character at each interior column boundary, matching the
// reference renderer's un-boxed table style (no leading/trailing glyph).
// skipJunction lists column-boundary indices, 1-based from the left, that
// should render as a plain ─ instead of a junction because a cell spans
// across them there.
func ruleLine(colWidths []int, skipJunction map[int]bool, junction rune) string {
	var b strings.Builder
	for i, w := range colWidths {
		b.WriteString(strings.Repeat("─", w))
		if i < len(colWidths)-1 {
			if skipJunction[i+1] {
				b.WriteRune('─')
			} else {
				b.WriteRune(junction)
			}
		}
	}
	return b.String()
}

// spanBoundary reports, for the rule between row ri and ri+1, which
// interior column boundaries should be drawn as a plain rule segment
// rather than a junction because a colspan cell on one of the two
// adjoining rows crosses that boundary without a cell edge there. This
// mirrors the "dropped │" effect the reference renderer produces when a
// nested table's own borders fall directly against an outer cell's
// border: a boundary only gets a junction when both rows actually break
// at that column.
func spanBoundary(tbl *node, ri int) map[int]bool {
	above := columnBreaks(tbl.children[ri])
	below := columnBreaks(tbl.children[ri+1])
	skip := map[int]bool{}
	for col := 1; col < tbl.columns; col++ {
		if !above[col] || !below[col] {
			skip[col] = true
		}
	}
	return skip
}

// columnBreaks returns the set of column-boundary indices (1-based) at
// which this row actually has a cell edge, i.e. is not in the interior of
// a colspan.
func columnBreaks(row *node) map[int]bool {
	breaks := map[int]bool{}
	col := 0
	for _, cell := range row.children {
		col += cell.colspan
		breaks[col] = true
	}
	return breaks
}
