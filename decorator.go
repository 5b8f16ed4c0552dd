package htmltext

import "fmt"

// Decorator chooses the concrete inline markers and end-of-document footer
// emitted by the layout engine. It is consulted during layout but owns no
// state the layout engine depends on beyond what it returns. Link targets
// are interned by the layout engine, which passes each link's 1-based index
// to the link hooks and the full target list to Finalize.
type Decorator interface {
	// DecorateEmphasis returns the prefix/suffix wrapped around emphasised
	// inline content.
	DecorateEmphasis() (prefix, suffix string)
	// DecorateStrong returns the prefix/suffix wrapped around strong inline
	// content.
	DecorateStrong() (prefix, suffix string)
	// DecorateLinkStart returns the prefix to emit before a link's label.
	// targetIndex is the 1-based index of target in document order.
	DecorateLinkStart(target string, targetIndex int) string
	// DecorateLinkEnd returns the suffix to emit after a link's label.
	DecorateLinkEnd(target string, targetIndex int) string
	// DecorateImage returns the literal text substituted for an image with
	// the given alt text. An empty alt should yield an empty string.
	DecorateImage(alt string) string
	// Finalize returns any deferred footer lines (e.g. the link-reference
	// table), emitted once at the end of the document.
	Finalize(targets []string) []string
}

// DefaultDecorator produces `*em*`, `**strong**`, `[label][N]` links with a
// numbered footer listing each interned target in index order.
type DefaultDecorator struct{}

func (DefaultDecorator) DecorateEmphasis() (string, string) { return "*", "*" }
func (DefaultDecorator) DecorateStrong() (string, string)   { return "**", "**" }

func (DefaultDecorator) DecorateLinkStart(target string, index int) string {
	return "["
}

func (DefaultDecorator) DecorateLinkEnd(target string, index int) string {
	return fmt.Sprintf("][%d]", index)
}

func (DefaultDecorator) DecorateImage(alt string) string {
	if alt == "" {
		return ""
	}
	return "[" + alt + "]"
}

func (DefaultDecorator) Finalize(targets []string) []string {
	if len(targets) == 0 {
		return nil
	}
	lines := make([]string, len(targets))
	for i, t := range targets {
		lines[i] = fmt.Sprintf("[%d] %s", i+1, t)
	}
	return lines
}

// TrivialDecorator omits all inline markers and emits no footer; link text
// renders unadorned, as if the document had no hyperlinks at all.
type TrivialDecorator struct{}

func (TrivialDecorator) DecorateEmphasis() (string, string)              { return "", "" }
func (TrivialDecorator) DecorateStrong() (string, string)                { return "", "" }
func (TrivialDecorator) DecorateLinkStart(string, int) string            { return "" }
func (TrivialDecorator) DecorateLinkEnd(string, int) string              { return "" }
func (TrivialDecorator) DecorateImage(alt string) string                 { return alt }
func (TrivialDecorator) Finalize(targets []string) []string              { return nil }
