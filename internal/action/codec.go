package action

import (
	"fmt"

	"github.com/danmuck/actionwire/internal/callback"
	"github.com/danmuck/actionwire/internal/icon"
	"github.com/danmuck/actionwire/internal/parcel"
	"github.com/danmuck/actionwire/internal/text"
)

// CreatorName is the registry key for decoding an Action.
const CreatorName = "actionwire.Action"

func init() {
	parcel.Default.MustRegister(CreatorName, func(r *parcel.Reader) (any, error) {
		return Decode(r)
	})
}

// Encode appends a to w as icon, title, description, callback.
// The icon ignores flags; the other three honor them. On error w is left
// as it was.
func (a *Action) Encode(w *parcel.Writer, flags parcel.Flags) error {
	if err := flags.Validate(); err != nil {
		return err
	}
	start := w.Len()
	if err := a.encode(w, flags); err != nil {
		w.Truncate(start)
		return err
	}
	return nil
}

func (a *Action) encode(w *parcel.Writer, flags parcel.Flags) error {
	if err := a.icon.Encode(w); err != nil {
		return fmt.Errorf("action: encode %s: %w", FieldIcon, err)
	}
	if err := a.title.Encode(w, flags); err != nil {
		return fmt.Errorf("action: encode %s: %w", FieldTitle, err)
	}
	if err := a.description.Encode(w, flags); err != nil {
		return fmt.Errorf("action: encode %s: %w", FieldDescription, err)
	}
	if err := a.callback.Encode(w, flags); err != nil {
		return fmt.Errorf("action: encode %s: %w", FieldCallback, err)
	}
	return nil
}

// Decode reads one Action from r in the order Encode writes it.
func Decode(r *parcel.Reader) (*Action, error) {
	ic, err := icon.Decode(r)
	if err != nil {
		return nil, malformed(FieldIcon, err)
	}
	title, err := text.Decode(r)
	if err != nil {
		return nil, malformed(FieldTitle, err)
	}
	description, err := text.Decode(r)
	if err != nil {
		return nil, malformed(FieldDescription, err)
	}
	cb, err := callback.Decode(r)
	if err != nil {
		return nil, malformed(FieldCallback, err)
	}
	return &Action{icon: ic, title: title, description: description, callback: cb}, nil
}

// Marshal returns the encoding of a alone.
func Marshal(a *Action, flags parcel.Flags) ([]byte, error) {
	w := parcel.NewWriter()
	if err := a.Encode(w, flags); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Unmarshal decodes exactly one Action from b.
func Unmarshal(b []byte) (*Action, error) {
	r := parcel.NewReader(b)
	a, err := Decode(r)
	if err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrMalformedEncoding, r.Remaining())
	}
	return a, nil
}

// EncodeList writes a count then each action. A nil list is written as -1.
// On error w is left as it was.
func EncodeList(w *parcel.Writer, list []*Action, flags parcel.Flags) error {
	start := w.Len()
	if err := encodeList(w, list, flags); err != nil {
		w.Truncate(start)
		return err
	}
	return nil
}

func encodeList(w *parcel.Writer, list []*Action, flags parcel.Flags) error {
	if list == nil {
		w.WriteInt32(-1)
		return nil
	}
	w.WriteInt32(int32(len(list)))
	for i, a := range list {
		if a == nil {
			return fmt.Errorf("%w: list[%d] is nil", ErrInvalidArgument, i)
		}
		if err := a.Encode(w, flags); err != nil {
			return fmt.Errorf("list[%d]: %w", i, err)
		}
	}
	return nil
}

// DecodeList reads a list written by EncodeList.
func DecodeList(r *parcel.Reader) ([]*Action, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return nil, malformed("list", err)
	}
	if n == -1 {
		return nil, nil
	}
	if n < 0 || int(n) > r.Remaining() {
		return nil, fmt.Errorf("%w: list count %d", ErrMalformedEncoding, n)
	}
	out := make([]*Action, 0, n)
	for i := int32(0); i < n; i++ {
		a, err := Decode(r)
		if err != nil {
			return nil, fmt.Errorf("list[%d]: %w", i, err)
		}
		out = append(out, a)
	}
	return out, nil
}
