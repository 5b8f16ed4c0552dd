package htmltext

// Kind identifies the class of error a render operation can surface.
type Kind int

const (
	// KindMalformedInput means the DOM adapter reported a fatal parse
	// error; it is surfaced unchanged.
	KindMalformedInput Kind = iota
	// KindTreeTooDeep means the render tree exceeded the implementation's
	// nesting bound. Render and RenderWith never return it: the builder
	// renders a subtree beyond maxBuildDepth as its text content only.
	KindTreeTooDeep
	// KindInternalInvariant means a table's cells could not be reconciled
	// with its column count after normalization.
	KindInternalInvariant
)

func (k Kind) String() string {
	switch k {
	case KindMalformedInput:
		return "malformed input"
	case KindTreeTooDeep:
		return "tree too deep"
	case KindInternalInvariant:
		return "internal invariant violated"
	default:
		return "unknown error"
	}
}

// Error is the error type returned by Render/RenderWith. WidthTooSmall is
// deliberately absent from Kind: per the reference policy it is clamped
// silently rather than surfaced (see clampWidth).
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

func newError(k Kind, msg string) *Error {
	return &Error{Kind: k, Msg: msg}
}
