package htmltext

import (
	"fmt"
	"strings"
	"testing"
)

func TestRenderHeadings(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"H1", "<h1>Hello World</h1>", "Hello World"},
		{"H2", "<h2>Section Two</h2>", "Section Two"},
		{"H3", "<h3>Section Three</h3>", "Section Three"},
		{"H6", "<h6>Section Six</h6>", "Section Six"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render([]byte(tt.html), 80)
			if err != nil {
				t.Fatalf("Render(%q) error: %v", tt.html, err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Render(%q) = %q, want it to contain %q", tt.html, got, tt.want)
			}
		})
	}
}

func TestRenderHeadingMarkerHashCount(t *testing.T) {
	got, err := Render([]byte("<h3>Title</h3>"), 80)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(strings.TrimSpace(got), "### Title") {
		t.Errorf("Render h3: got %q, want prefix %q", got, "### Title")
	}
}

func TestRenderParagraph(t *testing.T) {
	got, err := Render([]byte("<p>This is a paragraph of text.</p>"), 80)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "This is a paragraph of text.") {
		t.Errorf("Render paragraph: got %q", got)
	}
}

func TestRenderParagraphsSeparatedByBlankLine(t *testing.T) {
	got, err := Render([]byte("<p>First</p><p>Second</p>"), 80)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "First\n\nSecond") {
		t.Errorf("Render paragraphs: expected blank line between blocks, got %q", got)
	}
}

func TestRenderSiblingDivsHaveNoBlankLineBetween(t *testing.T) {
	got, err := Render([]byte("<div>First</div><div>Second</div>"), 80)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "First\nSecond") {
		t.Errorf("Render sibling divs: expected no blank line between them, got %q", got)
	}
	if strings.Contains(got, "First\n\nSecond") {
		t.Errorf("Render sibling divs: divs are not paragraph-breaking, got %q", got)
	}
}

func TestRenderDivThenParagraphGetsBlankLine(t *testing.T) {
	got, err := Render([]byte("<div>First</div><p>Second</p>"), 80)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "First\n\nSecond") {
		t.Errorf("Render div then paragraph: expected blank line, got %q", got)
	}
}

func TestRenderPreformattedPreservesWhitespace(t *testing.T) {
	src := "<pre>func main() {\n    fmt.Println(\"hi\")\n}</pre>"
	got, err := Render([]byte(src), 80)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "    fmt.Println(\"hi\")") {
		t.Errorf("Render pre: indentation not preserved, got %q", got)
	}
}

func TestRenderPreExpandsTabs(t *testing.T) {
	src := "<pre>a\tb</pre>"
	got, err := Render([]byte(src), 80)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "a       b") {
		t.Errorf("Render pre tab expansion: got %q", got)
	}
}

func TestRenderBlockquote(t *testing.T) {
	got, err := Render([]byte("<blockquote>This is a quote</blockquote>"), 80)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "> This is a quote") {
		t.Errorf("Render blockquote: got %q", got)
	}
}

func TestRenderNestedBlockquote(t *testing.T) {
	src := "<blockquote>outer<blockquote>inner</blockquote></blockquote>"
	got, err := Render([]byte(src), 80)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "> > inner") {
		t.Errorf("Render nested blockquote: got %q", got)
	}
}

func TestRenderUnorderedList(t *testing.T) {
	src := "<ul><li>alpha</li><li>beta</li><li>gamma</li></ul>"
	got, err := Render([]byte(src), 80)
	if err != nil {
		t.Fatal(err)
	}
	for _, item := range []string{"alpha", "beta", "gamma"} {
		if !strings.Contains(got, item) {
			t.Errorf("Render unordered list: missing %q in %q", item, got)
		}
	}
	if !strings.Contains(got, "* alpha") {
		t.Errorf("Render unordered list: missing bullet marker in %q", got)
	}
}

func TestRenderOrderedList(t *testing.T) {
	src := "<ol><li>first</li><li>second</li><li>third</li></ol>"
	got, err := Render([]byte(src), 80)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"1. first", "2. second", "3. third"} {
		if !strings.Contains(got, want) {
			t.Errorf("Render ordered list: missing %q in %q", want, got)
		}
	}
}

func TestRenderOrderedListStartAttribute(t *testing.T) {
	src := `<ol start="5"><li>five</li><li>six</li></ol>`
	got, err := Render([]byte(src), 80)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "5. five") || !strings.Contains(got, "6. six") {
		t.Errorf("Render ordered list start: got %q", got)
	}
}

func TestRenderOrderedListMarkerAlignment(t *testing.T) {
	// 10 items: markers should share a column, padded after the period
	// (e.g. "1.  " vs "10. "), so continuation text lines up.
	var b strings.Builder
	b.WriteString("<ol>")
	for i := 0; i < 10; i++ {
		b.WriteString("<li>item</li>")
	}
	b.WriteString("</ol>")
	got, err := Render([]byte(b.String()), 80)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "1.  item") {
		t.Errorf("Render ordered list alignment: expected padded single digit marker, got %q", got)
	}
	if !strings.Contains(got, "10. item") {
		t.Errorf("Render ordered list alignment: expected two digit marker, got %q", got)
	}
}

func TestRenderNestedList(t *testing.T) {
	src := "<ul><li>outer<ul><li>inner</li></ul></li></ul>"
	got, err := Render([]byte(src), 80)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "outer") || !strings.Contains(got, "inner") {
		t.Errorf("Render nested list: got %q", got)
	}
}

func TestRenderEmptyListItemProducesNoOutput(t *testing.T) {
	src := "<ul><li>first</li><li>   </li><li>last</li></ul>"
	got, err := Render([]byte(src), 80)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(got, "*") != 2 {
		t.Errorf("Render empty list item: expected exactly 2 bullets, got %q", got)
	}
}

func TestRenderTable(t *testing.T) {
	src := "<table><tr><th>Name</th><th>Age</th></tr><tr><td>Alice</td><td>30</td></tr></table>"
	got, err := Render([]byte(src), 80)
	if err != nil {
		t.Fatal(err)
	}
	for _, cell := range []string{"Name", "Age", "Alice", "30"} {
		if !strings.Contains(got, cell) {
			t.Errorf("Render table: missing %q in %q", cell, got)
		}
	}
	if !strings.Contains(got, "│") {
		t.Errorf("Render table: missing vertical rule in %q", got)
	}
	if !strings.Contains(got, "┬") || !strings.Contains(got, "┴") {
		t.Errorf("Render table: missing border rules in %q", got)
	}
}

func TestRenderTableColspan(t *testing.T) {
	src := `<table><tr><td colspan="2">wide</td></tr><tr><td>a</td><td>b</td></tr></table>`
	got, err := Render([]byte(src), 80)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "wide") || !strings.Contains(got, "a") || !strings.Contains(got, "b") {
		t.Errorf("Render table colspan: got %q", got)
	}
}

func TestRenderInlineElements(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"emphasis", "<p>This is <em>italic</em> text</p>", "*italic*"},
		{"strong", "<p>This is <strong>bold</strong> text</p>", "**bold**"},
		{"link", `<p><a href="https://go.dev">Go</a></p>`, "Go"},
		{"link target", `<p><a href="https://go.dev">Go</a></p>`, "https://go.dev"},
		{"image alt", `<p><img src="x.png" alt="a photo"></p>`, "[a photo]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render([]byte(tt.html), 80)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Render(%q) = %q, want it to contain %q", tt.html, got, tt.want)
			}
		})
	}
}

func TestRenderLinkFootnoteIndexing(t *testing.T) {
	src := `<p><a href="https://a.example">A</a> and <a href="https://b.example">B</a> and <a href="https://a.example">A again</a></p>`
	got, err := Render([]byte(src), 80)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "[A][1]") {
		t.Errorf("Render link indexing: first link should be index 1, got %q", got)
	}
	if !strings.Contains(got, "[B][2]") {
		t.Errorf("Render link indexing: second distinct link should be index 2, got %q", got)
	}
	if !strings.Contains(got, "[A again][1]") {
		t.Errorf("Render link indexing: repeated href should reuse index 1, got %q", got)
	}
	if !strings.Contains(got, "[1] https://a.example") || !strings.Contains(got, "[2] https://b.example") {
		t.Errorf("Render link indexing: footer missing entries, got %q", got)
	}
}

func TestRenderLinkDecoratesEvenWhenLabelEqualsTarget(t *testing.T) {
	src := `<p><a href="http://www.example.com/">http://www.example.com/</a></p>`
	got, err := Render([]byte(src), 80)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "[http://www.example.com/][1]") {
		t.Errorf("Render link with label equal to target: expected decoration kept, got %q", got)
	}
}

func TestRenderImageEmptyAltYieldsNothing(t *testing.T) {
	got, err := Render([]byte(`<p>before<img src="x.png">after</p>`), 80)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "beforeafter") && !strings.Contains(got, "before after") {
		t.Errorf("Render image empty alt: expected no marker inserted, got %q", got)
	}
}

func TestRenderUnknownTagTransparent(t *testing.T) {
	got, err := Render([]byte("<article><p>Content</p></article>"), 80)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "Content") {
		t.Errorf("Render unknown tag: children should still render, got %q", got)
	}
}

func TestRenderScriptAndStyleDropped(t *testing.T) {
	src := "<style>body{color:red}</style><script>alert(1)</script><p>Visible</p>"
	got, err := Render([]byte(src), 80)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "color:red") || strings.Contains(got, "alert") {
		t.Errorf("Render script/style: should be dropped entirely, got %q", got)
	}
	if !strings.Contains(got, "Visible") {
		t.Errorf("Render script/style: visible content missing, got %q", got)
	}
}

func TestRenderNBSPDoesNotCollapseOrBreak(t *testing.T) {
	got, err := Render([]byte("<p>10&nbsp;km</p>"), 80)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "10 km") {
		t.Errorf("Render nbsp: expected literal non-breaking space preserved, got %q", got)
	}
}

func TestRenderWhitespaceCollapses(t *testing.T) {
	got, err := Render([]byte("<p>a    b\n\tc</p>"), 80)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "a b c") {
		t.Errorf("Render whitespace collapse: got %q", got)
	}
}

func TestRenderEmptyInput(t *testing.T) {
	got, err := Render([]byte(""), 80)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(got) != "" {
		t.Errorf("Render empty: expected empty output, got %q", got)
	}
}

func TestRenderMalformedInputStillProducesText(t *testing.T) {
	// golang.org/x/net/html recovers from most malformed markup rather than
	// failing, so this exercises the non-error path rather than the error one.
	got, err := Render([]byte("<p>unterminated"), 80)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "unterminated") {
		t.Errorf("Render malformed input: got %q", got)
	}
}

func TestRenderWidthNeverExceededExceptSingleOverlongWord(t *testing.T) {
	src := "<p>" + strings.Repeat("word ", 40) + "</p>"
	got, err := Render([]byte(src), 20)
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range strings.Split(got, "\n") {
		if displayWidth(line) > 20 {
			t.Errorf("Render width: line %q exceeds width 20", line)
		}
	}
}

func TestRenderWidthClampedToMinimum(t *testing.T) {
	got, err := Render([]byte("<p>hi</p>"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != "h\ni\n" {
		t.Errorf("Render width=0: expected render clamped to width 1, got %q, want %q", got, "h\ni\n")
	}
}

func TestRenderWithTrivialDecoratorOmitsMarkersAndFooter(t *testing.T) {
	src := `<p><em>x</em> <a href="https://a.example">A</a></p>`
	got, err := RenderWith([]byte(src), 80, TrivialDecorator{})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "*") || strings.Contains(got, "[") {
		t.Errorf("RenderWith TrivialDecorator: expected no markers, got %q", got)
	}
	if strings.Contains(got, "https://a.example") {
		t.Errorf("RenderWith TrivialDecorator: expected no footer, got %q", got)
	}
}

func TestRenderDeeplyNestedDocumentDoesNotHang(t *testing.T) {
	var b strings.Builder
	for i := 0; i < maxBuildDepth+50; i++ {
		b.WriteString("<div>")
	}
	b.WriteString("deep")
	for i := 0; i < maxBuildDepth+50; i++ {
		b.WriteString("</div>")
	}
	got, err := Render([]byte(b.String()), 80)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "deep") {
		t.Errorf("Render deep nesting: content lost, got %q", got)
	}
}

func TestRenderStripsControlCharacters(t *testing.T) {
	src := "<p>a\x00b\x01c</p>"
	got, err := Render([]byte(src), 80)
	if err != nil {
		t.Fatal(err)
	}
	if strings.ContainsAny(got, "\x00\x01") {
		t.Errorf("Render control chars: expected stripped, got %q", got)
	}
	if !strings.Contains(got, "abc") {
		t.Errorf("Render control chars: expected remaining text joined, got %q", got)
	}
}

// These pin the literal end-to-end scenarios listed as reference behavior.
func TestRenderLiteralScenarios(t *testing.T) {
	t.Run("simple paragraph", func(t *testing.T) {
		got, err := Render([]byte("<p>Hello</p>"), 10)
		if err != nil {
			t.Fatal(err)
		}
		if got != "Hello\n" {
			t.Errorf("got %q, want %q", got, "Hello\n")
		}
	})

	t.Run("three column table", func(t *testing.T) {
		src := "<table><tr><td>1</td><td>2</td><td>3</td></tr></table>"
		got, err := Render([]byte(src), 12)
		if err != nil {
			t.Fatal(err)
		}
		want := "───┬───┬────\n1  │2  │3   \n───┴───┴────\n"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("ordered list start", func(t *testing.T) {
		src := `<ol start="9"><li>Item nine</li><li>Item ten</li></ol>`
		got, err := Render([]byte(src), 20)
		if err != nil {
			t.Fatal(err)
		}
		want := "9.  Item nine\n10. Item ten\n"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("link with footer", func(t *testing.T) {
		src := `<p>Hello, <a href="http://www.example.com/">world</a></p>`
		got, err := Render([]byte(src), 80)
		if err != nil {
			t.Fatal(err)
		}
		want := "Hello, [world][1]\n\n[1] http://www.example.com/\n"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("preformatted tab expansion", func(t *testing.T) {
		got, err := Render([]byte("<pre>Hel\tworld</pre>"), 40)
		if err != nil {
			t.Fatal(err)
		}
		want := "Hel     world\n"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("colspan boundary drop", func(t *testing.T) {
		src := `<table>
			<tr><td>1</td><td>2</td></tr>
			<tr><td colspan="2">12</td></tr>
		</table>`
		got, err := Render([]byte(src), 20)
		if err != nil {
			t.Fatal(err)
		}
		lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
		if len(lines) != 5 {
			t.Fatalf("colspan render: want 5 lines, got %d: %q", len(lines), got)
		}
		// Top and bottom rules carry the full-width junction; the interior
		// rule between the two rows drops it because the second row's
		// colspan cell crosses that boundary without a cell edge.
		if !strings.Contains(lines[1], "│") {
			t.Errorf("colspan render: row 1 should keep its column separator, got %q", lines[1])
		}
		if strings.Contains(lines[2], "┼") {
			t.Errorf("colspan render: interior rule should drop the junction across the colspan, got %q", lines[2])
		}
		if strings.Contains(lines[3], "│") {
			t.Errorf("colspan render: spanning row should have no interior separator, got %q", lines[3])
		}
	})
}

// TestWhitespaceCollapseIsIdempotent pins spec.md §8: rendering
// "<p>  A  B  </p>" equals rendering "<p>A B</p>".
func TestWhitespaceCollapseIsIdempotent(t *testing.T) {
	collapsed, err := Render([]byte("<p>A B</p>"), 80)
	if err != nil {
		t.Fatal(err)
	}
	padded, err := Render([]byte("<p>  A  B  </p>"), 80)
	if err != nil {
		t.Fatal(err)
	}
	if collapsed != padded {
		t.Errorf("whitespace collapse not idempotent: %q vs %q", collapsed, padded)
	}
}

// TestUnknownElementWrappingWholeDocumentIsTransparent pins spec.md §8:
// wrapping any document in <foo>...</foo> yields identical output.
func TestUnknownElementWrappingWholeDocumentIsTransparent(t *testing.T) {
	src := "<h1>Title</h1><p>Body text here.</p><ul><li>one</li><li>two</li></ul>"
	bare, err := Render([]byte(src), 40)
	if err != nil {
		t.Fatal(err)
	}
	wrapped, err := Render([]byte("<foo>"+src+"</foo>"), 40)
	if err != nil {
		t.Fatal(err)
	}
	if bare != wrapped {
		t.Errorf("unknown-element wrapping not transparent: %q vs %q", bare, wrapped)
	}
}

// TestPreformattedRoundTripsPrintableASCII pins spec.md §8: for any string s
// containing only printable ASCII and \n, rendering <pre>s</pre> at a width
// at least as wide as s's longest line yields s followed by a trailing \n.
func TestPreformattedRoundTripsPrintableASCII(t *testing.T) {
	cases := []string{
		"plain line",
		"line one\nline two\nline three",
		"  leading spaces kept",
		"trailing spaces kept  ",
		"symbols: !@#$%^&*()_+-=[]{}|;:,.<>?/",
		"trailing newline honored\n",
		"two trailing newlines\n\n",
	}
	for _, s := range cases {
		longest := 0
		for _, line := range strings.Split(s, "\n") {
			if len(line) > longest {
				longest = len(line)
			}
		}
		// HTML-escape the three markup-significant characters on the way in;
		// the renderer decodes them back to their literal form, so the
		// expected output is still the unescaped source string.
		escaped := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
		got, err := Render([]byte("<pre>"+escaped+"</pre>"), longest)
		if err != nil {
			t.Fatal(err)
		}
		want := s + "\n"
		if got != want {
			t.Errorf("pre round-trip: source %q: got %q, want %q", s, got, want)
		}
	}
}

// TestTableRulesShareColumnBoundaryPositions pins spec.md §8: for every
// table render, the top, interior, and bottom rules contain the same set of
// column-boundary positions (ignoring the specific junction glyph drawn at
// each, which can differ for colspan boundaries).
func TestTableRulesShareColumnBoundaryPositions(t *testing.T) {
	src := "<table><tr><td>aa</td><td>bb</td><td>cc</td></tr><tr><td>1</td><td>2</td><td>3</td></tr></table>"
	got, err := Render([]byte(src), 40)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) < 4 {
		t.Fatalf("table rules: expected at least 4 lines, got %d: %q", len(lines), got)
	}
	boundaryPositions := func(line string) []int {
		var positions []int
		for i, r := range []rune(line) {
			if r == '┬' || r == '┼' || r == '┴' {
				positions = append(positions, i)
			}
		}
		return positions
	}
	top := boundaryPositions(lines[0])
	interior := boundaryPositions(lines[2])
	bottom := boundaryPositions(lines[len(lines)-1])
	if len(top) == 0 {
		t.Fatalf("table rules: top rule has no column boundaries: %q", lines[0])
	}
	if fmt.Sprint(top) != fmt.Sprint(interior) || fmt.Sprint(top) != fmt.Sprint(bottom) {
		t.Errorf("table rules: boundary positions differ: top=%v interior=%v bottom=%v", top, interior, bottom)
	}
}
