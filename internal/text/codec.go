package text

import (
	"fmt"

	"github.com/danmuck/actionwire/internal/parcel"
)

const (
	kindSpanned int32 = 0
	kindPlain   int32 = 1
	spanEnd     int32 = 0
)

// Encode writes t. FlagPlainText drops the spans.
func (t *Text) Encode(w *parcel.Writer, flags parcel.Flags) error {
	if !t.IsStyled() || flags.Has(parcel.FlagPlainText) {
		w.WriteInt32(kindPlain)
		return w.WriteString(t.s)
	}
	w.WriteInt32(kindSpanned)
	if err := w.WriteString(t.s); err != nil {
		return err
	}
	for _, sp := range t.spans {
		w.WriteInt32(int32(sp.Kind))
		w.WriteInt32(int32(sp.Start))
		w.WriteInt32(int32(sp.End))
		if err := w.WriteString(sp.Arg); err != nil {
			return err
		}
	}
	w.WriteInt32(spanEnd)
	return nil
}

// Decode reads one text value. A null string is an error.
func Decode(r *parcel.Reader) (*Text, error) {
	kind, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	if kind != kindPlain && kind != kindSpanned {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}
	s, ok, err := r.ReadNullString()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNullText
	}
	if kind == kindPlain {
		return Plain(s), nil
	}

	spans := make([]Span, 0, 2)
	for {
		k, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		if k == spanEnd {
			break
		}
		var sp Span
		sp.Kind = SpanKind(k)
		start, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		end, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		sp.Start, sp.End = int(start), int(end)
		if sp.Arg, err = r.ReadString(); err != nil {
			return nil, err
		}
		spans = append(spans, sp)
	}
	return Styled(s, spans...)
}
