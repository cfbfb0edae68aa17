package icon

import (
	"fmt"

	"github.com/danmuck/actionwire/internal/parcel"
)

// Encode writes the icon as kind, kind payload, then the optional tint.
func (ic *Icon) Encode(w *parcel.Writer) error {
	if err := ic.Validate(); err != nil {
		return err
	}
	w.WriteInt32(int32(ic.kind))
	switch ic.kind {
	case KindResource:
		if err := w.WriteString(ic.pkg); err != nil {
			return err
		}
		w.WriteInt32(ic.resID)
	case KindData:
		if err := w.WriteBytes(ic.data); err != nil {
			return err
		}
	case KindURI:
		if err := w.WriteString(ic.uri); err != nil {
			return err
		}
	}
	w.WriteBool(ic.hasTint)
	if ic.hasTint {
		w.WriteUint32(ic.tint)
	}
	return nil
}

// Decode reads one icon written by Encode.
func Decode(r *parcel.Reader) (*Icon, error) {
	k, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	var ic *Icon
	switch Kind(k) {
	case KindResource:
		pkg, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		id, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		ic, err = Resource(pkg, id)
		if err != nil {
			return nil, err
		}
	case KindData:
		data, err := r.ReadBytes()
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			return nil, ErrEmptyIcon
		}
		ic = &Icon{kind: KindData, data: data}
	case KindURI:
		uri, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		ic, err = URI(uri)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, k)
	}

	hasTint, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	if hasTint {
		tint, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		ic.tint = tint
		ic.hasTint = true
	}
	return ic, nil
}
