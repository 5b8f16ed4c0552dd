package htmltext

import "testing"

func TestMeasureTextMinIsWidestWord(t *testing.T) {
	w := measureText("a bb ccc")
	if w.min != 3 {
		t.Errorf("measureText min = %d, want 3", w.min)
	}
	if w.desired != 8 {
		t.Errorf("measureText desired = %d, want 8", w.desired)
	}
}

func TestMeasureTextSingleWord(t *testing.T) {
	w := measureText("hello")
	if w.min != 5 || w.desired != 5 {
		t.Errorf("measureText(%q) = %+v, want min=desired=5", "hello", w)
	}
}

func TestClampWidthFloor(t *testing.T) {
	if got := clampWidth(0, 0); got != 1 {
		t.Errorf("clampWidth(0, 0) = %d, want 1", got)
	}
	if got := clampWidth(-5, 0); got != 1 {
		t.Errorf("clampWidth(-5, 0) = %d, want 1", got)
	}
}

func TestClampWidthMandatoryPrefix(t *testing.T) {
	if got := clampWidth(2, 5); got != 6 {
		t.Errorf("clampWidth(2, 5) = %d, want 6", got)
	}
	if got := clampWidth(10, 5); got != 10 {
		t.Errorf("clampWidth(10, 5) = %d, want 10", got)
	}
}

func TestCeilDiv(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{10, 2, 5},
		{11, 2, 6},
		{0, 5, 0},
		{5, 0, 5},
	}
	for _, c := range cases {
		if got := ceilDiv(c.a, c.b); got != c.want {
			t.Errorf("ceilDiv(%d, %d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func twoColTable(left, right string) *node {
	cell := func(s string) *node {
		return &node{kind: kindTableCell, colspan: 1, children: []*node{{kind: kindText, text: s}}}
	}
	row := &node{kind: kindTableRow, children: []*node{cell(left), cell(right)}}
	return &node{kind: kindTable, columns: 2, children: []*node{row}}
}

func TestSolveTableColumnsFitsDesired(t *testing.T) {
	tbl := twoColTable("short", "alsoshort")
	cols := solveTableColumns(tbl, 80)
	sum := cols[0].desired + cols[1].desired + interiorRuleWidth(2)
	if sum > 80 {
		t.Errorf("solveTableColumns: total width %d exceeds budget 80", sum)
	}
	// Plenty of room: both columns should get their full desired width plus slack.
	if cols[0].desired < displayWidth("short") {
		t.Errorf("solveTableColumns: left column shrunk below its content, got %+v", cols[0])
	}
}

func TestSolveTableColumnsFitsMinNotDesired(t *testing.T) {
	left := "a very long column of text that will not fit"
	right := "another quite long column of text here too"
	tbl := twoColTable(left, right)
	available := 30 // narrower than both desired widths combined, wide enough for both mins
	cols := solveTableColumns(tbl, available)
	rules := interiorRuleWidth(2)
	total := cols[0].desired + cols[1].desired + rules
	if total > available {
		t.Errorf("solveTableColumns: total %d exceeds available %d", total, available)
	}
	for i, c := range cols {
		if c.desired < c.min {
			t.Errorf("solveTableColumns: column %d desired %d below min %d", i, c.desired, c.min)
		}
	}
}

func TestSolveTableColumnsShrinksToOneWhenHopeless(t *testing.T) {
	tbl := twoColTable("alpha", "beta")
	cols := solveTableColumns(tbl, 3) // rules alone eat most of a width this small
	for i, c := range cols {
		if c.desired != 1 {
			t.Errorf("solveTableColumns: column %d desired = %d, want 1 under hopeless budget", i, c.desired)
		}
	}
}

func TestSolveTableColumnsUnconstrainedReturnsNatural(t *testing.T) {
	tbl := twoColTable("short", "longerword")
	cols := solveTableColumns(tbl, -1)
	if cols[1].desired < displayWidth("longerword") {
		t.Errorf("solveTableColumns(-1): expected natural width, got %+v", cols[1])
	}
}

func TestDistributeProportionalGivesRemainderToRight(t *testing.T) {
	cols := []cellWidths{{min: 1, desired: 1}, {min: 1, desired: 1}, {min: 1, desired: 1}}
	distributeProportional(cols, 10, func(c cellWidths) int { return c.desired }, true)
	total := cols[0].desired + cols[1].desired + cols[2].desired
	if total != 13 {
		t.Errorf("distributeProportional: total = %d, want 13", total)
	}
	if cols[2].desired < cols[0].desired {
		t.Errorf("distributeProportional: expected remainder to favor rightmost column, got %+v", cols)
	}
}

func TestOrderedMarkerWidthGrowsWithItemCount(t *testing.T) {
	n := &node{kind: kindList, list: listOrdered, start: 1, children: make([]*node, 10)}
	if w := orderedMarkerWidth(n); w != 3 {
		t.Errorf("orderedMarkerWidth(10 items) = %d, want 3 (\"10.\")", w)
	}
	n.children = make([]*node, 5)
	if w := orderedMarkerWidth(n); w != 2 {
		t.Errorf("orderedMarkerWidth(5 items) = %d, want 2 (\"5.\")", w)
	}
}
