package htmltext

import "github.com/mattn/go-runewidth"

// tableBorderWidth is the number of columns a vertical rule (│) occupies
// between adjacent cells. The reference renderer draws no outer border, so
// an n-column table spends rule width only on its n-1 interior separators.
const tableBorderWidth = 1

func interiorRuleWidth(numCols int) int {
	if numCols <= 1 {
		return 0
	}
	return tableBorderWidth * (numCols - 1)
}

// cellWidths carries the two numbers the table compositor needs per column:
// the narrowest width the column's content can be wrapped into (the widest
// atomic word or rule character) and the width it would occupy if never
// wrapped at all.
type cellWidths struct {
	min     int
	desired int
}

func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// measure computes the min/desired width of an arbitrary render node. For
// block containers this is the max over children; for inline runs and text
// it is governed by the longest unbreakable word.
func measure(n *node) cellWidths {
	switch n.kind {
	case kindText:
		return measureText(n.text)

	case kindLineBreak:
		return cellWidths{}

	case kindInline:
		switch n.inline {
		case inlineImage:
			return cellWidths{}
		default:
			prefix, suffix := inlineMarkerWidths(n)
			w := measureChildrenInline(n.children)
			w.min += prefix + suffix
			w.desired += prefix + suffix
			return w
		}

	case kindBlock:
		w := measureChildrenBlock(n.children)
		if n.block == blockListItem {
			w.min += listMarkerReserve
			w.desired += listMarkerReserve
		}
		return w

	case kindList:
		reserve := listMarkerReserve
		if n.list == listOrdered {
			reserve = orderedMarkerWidth(n) + 1
		}
		w := measureChildrenBlock(n.children)
		w.min += reserve
		w.desired += reserve
		return w

	case kindTable:
		cols := solveTableColumns(n, -1)
		rules := interiorRuleWidth(len(cols))
		var min, desired int
		for _, c := range cols {
			min += c.min
			desired += c.desired
		}
		return cellWidths{min: min + rules, desired: desired + rules}

	case kindTableRow, kindTableCell, kindFragment:
		return measureChildrenBlock(n.children)

	default:
		return cellWidths{}
	}
}

// inlineMarkerWidths returns the widths a DefaultDecorator-shaped inline
// marker contributes, used only to keep min-width estimates conservative;
// the layout engine consults the active Decorator for the literal text.
func inlineMarkerWidths(n *node) (int, int) {
	switch n.inline {
	case inlineEmphasis:
		return 1, 1
	case inlineStrong:
		return 2, 2
	case inlineLink:
		return 1, 4 // "[" ... "][N]", N assumed single digit for estimation
	default:
		return 0, 0
	}
}

// listMarkerReserve is the column budget reserved for an unordered bullet
// ("* ") and for each list item; an ordered list reserves its own marker
// width instead (orderedMarkerWidth plus one space).
const listMarkerReserve = 2

func orderedMarkerWidth(n *node) int {
	last := n.start + len(n.children) - 1
	if last < n.start {
		last = n.start
	}
	digits := 1
	for last >= 10 {
		last /= 10
		digits++
	}
	return digits + 1 // "N."
}

// measureText returns the min width as the widest single word (words never
// split except when individually wider than the whole available width, a
// case the layout engine handles by breaking at grapheme boundaries) and
// the desired width as the full line length.
func measureText(s string) cellWidths {
	max := 0
	cur := 0
	total := 0
	for _, r := range s {
		if r == ' ' {
			if cur > max {
				max = cur
			}
			cur = 0
			total++
			continue
		}
		w := runewidth.RuneWidth(r)
		cur += w
		total += w
	}
	if cur > max {
		max = cur
	}
	return cellWidths{min: max, desired: total}
}

func measureChildrenInline(children []*node) cellWidths {
	var min, desired int
	for _, c := range children {
		w := measure(c)
		if w.min > min {
			min = w.min
		}
		desired += w.desired
	}
	return cellWidths{min: min, desired: desired}
}

func measureChildrenBlock(children []*node) cellWidths {
	var min, desired int
	for _, c := range children {
		w := measure(c)
		if w.min > min {
			min = w.min
		}
		if w.desired > desired {
			desired = w.desired
		}
	}
	return cellWidths{min: min, desired: desired}
}

// solveTableColumns computes the rendered width of every column in a table.
// When available >= 0 it is the content width (excluding rule characters)
// the table must fit into; the three-tier policy from the spec is applied:
//
//  1. If the sum of desired widths fits, distribute the remaining slack
//     proportionally to each column's desired width, with any remainder
//     (from integer rounding) added to the rightmost columns.
//  2. Else if the sum of min widths fits, distribute the available surplus
//     over min width proportionally to (desired-min).
//  3. Else shrink every column to width 1 and let the layout engine wrap
//     every cell as hard as it can.
//
// available < 0 means "unconstrained": report each column's natural
// desired width.
func solveTableColumns(tbl *node, available int) []cellWidths {
	cols := make([]cellWidths, tbl.columns)
	for _, row := range tbl.children {
		col := 0
		for _, cell := range row.children {
			w := measure(cell)
			if cell.colspan == 1 {
				if w.min > cols[col].min {
					cols[col].min = w.min
				}
				if w.desired > cols[col].desired {
					cols[col].desired = w.desired
				}
			} else {
				// A spanning cell's width is distributed evenly across the
				// columns it covers; the solver never needs to be exact
				// here since the compositor re-measures spans directly.
				share := cellWidths{min: ceilDiv(w.min, cell.colspan), desired: ceilDiv(w.desired, cell.colspan)}
				for i := 0; i < cell.colspan; i++ {
					if share.min > cols[col+i].min {
						cols[col+i].min = share.min
					}
					if share.desired > cols[col+i].desired {
						cols[col+i].desired = share.desired
					}
				}
			}
			col += cell.colspan
		}
	}
	for i := range cols {
		if cols[i].min < 1 {
			cols[i].min = 1
		}
		if cols[i].desired < cols[i].min {
			cols[i].desired = cols[i].min
		}
	}
	if available < 0 {
		return cols
	}

	rules := interiorRuleWidth(len(cols))
	budget := available - rules
	if budget < len(cols) {
		for i := range cols {
			cols[i].desired = 1
		}
		return cols
	}

	sumDesired := 0
	sumMin := 0
	for _, c := range cols {
		sumDesired += c.desired
		sumMin += c.min
	}

	if sumDesired <= budget {
		slack := budget - sumDesired
		distributeProportional(cols, slack, func(c cellWidths) int { return c.desired }, true)
		return cols
	}

	if sumMin <= budget {
		surplus := budget - sumMin
		weight := make([]int, len(cols))
		for i, c := range cols {
			weight[i] = c.desired - c.min
		}
		out := make([]cellWidths, len(cols))
		for i, c := range cols {
			out[i] = cellWidths{min: c.min, desired: c.min}
		}
		distributeProportionalWeighted(out, surplus, weight, true)
		return out
	}

	for i := range cols {
		cols[i].min = 1
		cols[i].desired = 1
	}
	return cols
}

// distributeProportional adds `slack` columns of width spread across cols
// proportionally to weightFn(col), giving any leftover from integer
// rounding to the rightmost columns. When setDesired is true the result is
// written back into col.desired.
func distributeProportional(cols []cellWidths, slack int, weightFn func(cellWidths) int, setDesired bool) {
	total := 0
	for _, c := range cols {
		total += weightFn(c)
	}
	if total == 0 || slack <= 0 {
		return
	}
	given := 0
	shares := make([]int, len(cols))
	for i, c := range cols {
		shares[i] = slack * weightFn(c) / total
		given += shares[i]
	}
	remainder := slack - given
	for i := len(cols) - 1; i >= 0 && remainder > 0; i-- {
		shares[i]++
		remainder--
	}
	for i := range cols {
		if setDesired {
			cols[i].desired += shares[i]
		}
	}
}

func distributeProportionalWeighted(cols []cellWidths, slack int, weight []int, setDesired bool) {
	total := 0
	for _, w := range weight {
		total += w
	}
	if total == 0 || slack <= 0 {
		// No room to discriminate: split evenly, remainder to the right.
		if slack <= 0 {
			return
		}
		base := slack / len(cols)
		rem := slack - base*len(cols)
		for i := range cols {
			cols[i].desired += base
		}
		for i := len(cols) - 1; i >= 0 && rem > 0; i-- {
			cols[i].desired++
			rem--
		}
		return
	}
	given := 0
	shares := make([]int, len(cols))
	for i, w := range weight {
		shares[i] = slack * w / total
		given += shares[i]
	}
	remainder := slack - given
	for i := len(cols) - 1; i >= 0 && remainder > 0; i-- {
		shares[i]++
		remainder--
	}
	for i := range cols {
		if setDesired {
			cols[i].desired += shares[i]
		}
	}
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}

// clampWidth applies the reference policy for pathological width inputs:
// width <= 0 is clamped to 1, and a width narrower than some mandatory
// prefix (e.g. a blockquote/list nesting marker) is clamped up to fit it.
// Neither case is surfaced as an error.
func clampWidth(width, mandatoryPrefix int) int {
	if width < 1 {
		width = 1
	}
	if mandatoryPrefix > 0 && width < mandatoryPrefix+1 {
		width = mandatoryPrefix + 1
	}
	return width
}
