// Package text is styled text with a self-delimiting wire form.
package text

import (
	"errors"
	"fmt"
)

var (
	ErrNullText    = errors.New("text: null text")
	ErrUnknownKind = errors.New("text: unknown encoding kind")
	ErrSpanBounds  = errors.New("text: span out of bounds")
	ErrSpanKind    = errors.New("text: unknown span kind")
)

// SpanKind identifies a styling run.
type SpanKind int32

const (
	SpanBold      SpanKind = 1
	SpanItalic    SpanKind = 2
	SpanUnderline SpanKind = 3
	// SpanURL carries the link target in Span.Arg.
	SpanURL SpanKind = 4
)

func (k SpanKind) valid() bool {
	return k >= SpanBold && k <= SpanURL
}

// Span styles the byte range [Start, End) of the text.
type Span struct {
	Kind  SpanKind
	Start int
	End   int
	Arg   string
}

// Text is immutable; spans are copied in and out.
type Text struct {
	s     string
	spans []Span
}

// Plain returns unstyled text.
func Plain(s string) *Text {
	return &Text{s: s}
}

// Styled returns s with spans applied in order.
func Styled(s string, spans ...Span) (*Text, error) {
	for _, sp := range spans {
		if err := checkSpan(sp, len(s)); err != nil {
			return nil, err
		}
	}
	t := &Text{s: s}
	if len(spans) > 0 {
		t.spans = append([]Span(nil), spans...)
	}
	return t, nil
}

func checkSpan(sp Span, n int) error {
	if !sp.Kind.valid() {
		return fmt.Errorf("%w: %d", ErrSpanKind, int32(sp.Kind))
	}
	if sp.Start < 0 || sp.End < sp.Start || sp.End > n {
		return fmt.Errorf("%w: [%d,%d) of %d", ErrSpanBounds, sp.Start, sp.End, n)
	}
	return nil
}

// String returns the unstyled characters.
func (t *Text) String() string {
	return t.s
}

func (t *Text) Spans() []Span {
	return append([]Span(nil), t.spans...)
}

func (t *Text) IsStyled() bool {
	return len(t.spans) > 0
}

// Equal compares characters and styling.
func (t *Text) Equal(other *Text) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.s != other.s || len(t.spans) != len(other.spans) {
		return false
	}
	for i := range t.spans {
		if t.spans[i] != other.spans[i] {
			return false
		}
	}
	return true
}
