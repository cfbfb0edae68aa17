// Package icon is the visual resource attached to a remote action.
package icon

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownKind = errors.New("icon: unknown kind")
	ErrEmptyIcon   = errors.New("icon: empty payload")
)

// Kind selects how the icon image is located.
type Kind int32

const (
	KindResource Kind = 1
	KindData     Kind = 2
	KindURI      Kind = 3
)

func (k Kind) String() string {
	switch k {
	case KindResource:
		return "RESOURCE"
	case KindData:
		return "DATA"
	case KindURI:
		return "URI"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int32(k))
	}
}

// Icon is immutable once built. Use the constructors.
type Icon struct {
	kind    Kind
	pkg     string
	resID   int32
	data    []byte
	uri     string
	tint    uint32
	hasTint bool
}

// Resource references drawable id inside package pkg.
func Resource(pkg string, id int32) (*Icon, error) {
	if strings.TrimSpace(pkg) == "" || id == 0 {
		return nil, fmt.Errorf("%w: resource requires package and id", ErrEmptyIcon)
	}
	return &Icon{kind: KindResource, pkg: pkg, resID: id}, nil
}

// Data wraps encoded image bytes. The bytes are copied.
func Data(b []byte) (*Icon, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: data icon requires bytes", ErrEmptyIcon)
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return &Icon{kind: KindData, data: cp}, nil
}

// URI references an image by location.
func URI(uri string) (*Icon, error) {
	if strings.TrimSpace(uri) == "" {
		return nil, fmt.Errorf("%w: uri icon requires uri", ErrEmptyIcon)
	}
	return &Icon{kind: KindURI, uri: uri}, nil
}

// WithTint returns a copy of ic tinted with the ARGB color.
func (ic *Icon) WithTint(argb uint32) *Icon {
	cp := *ic
	cp.tint = argb
	cp.hasTint = true
	return &cp
}

func (ic *Icon) Kind() Kind {
	return ic.kind
}

func (ic *Icon) Package() string {
	return ic.pkg
}

func (ic *Icon) ResID() int32 {
	return ic.resID
}

func (ic *Icon) URI() string {
	return ic.uri
}

// Data returns a copy of the image bytes for data icons.
func (ic *Icon) Data() []byte {
	if ic.data == nil {
		return nil
	}
	cp := make([]byte, len(ic.data))
	copy(cp, ic.data)
	return cp
}

func (ic *Icon) Tint() (uint32, bool) {
	return ic.tint, ic.hasTint
}

// Validate reports whether ic can be encoded and decoded back.
func (ic *Icon) Validate() error {
	switch ic.kind {
	case KindResource:
		if strings.TrimSpace(ic.pkg) == "" || ic.resID == 0 {
			return fmt.Errorf("%w: resource requires package and id", ErrEmptyIcon)
		}
	case KindData:
		if len(ic.data) == 0 {
			return fmt.Errorf("%w: data icon requires bytes", ErrEmptyIcon)
		}
	case KindURI:
		if strings.TrimSpace(ic.uri) == "" {
			return fmt.Errorf("%w: uri icon requires uri", ErrEmptyIcon)
		}
	default:
		return fmt.Errorf("%w: %d", ErrUnknownKind, int32(ic.kind))
	}
	return nil
}

func (ic *Icon) Equal(other *Icon) bool {
	if ic == nil || other == nil {
		return ic == other
	}
	return ic.kind == other.kind &&
		ic.pkg == other.pkg &&
		ic.resID == other.resID &&
		bytes.Equal(ic.data, other.data) &&
		ic.uri == other.uri &&
		ic.hasTint == other.hasTint &&
		ic.tint == other.tint
}

func (ic *Icon) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Icon(typ=%s", ic.kind)
	switch ic.kind {
	case KindResource:
		fmt.Fprintf(&b, " pkg=%s id=0x%08x", ic.pkg, uint32(ic.resID))
	case KindData:
		fmt.Fprintf(&b, " len=%d", len(ic.data))
	case KindURI:
		fmt.Fprintf(&b, " uri=%s", ic.uri)
	}
	if ic.hasTint {
		fmt.Fprintf(&b, " tint=0x%08x", ic.tint)
	}
	b.WriteString(")")
	return b.String()
}
