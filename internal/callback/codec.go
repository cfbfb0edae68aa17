package callback

import (
	"fmt"

	"github.com/danmuck/actionwire/internal/parcel"
)

// Encode writes the token then the target intent.
func (c *Callback) Encode(w *parcel.Writer, flags parcel.Flags) error {
	if err := flags.Validate(); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	w.WriteUUID(c.token)
	for _, s := range []string{c.target.Action, c.target.Package, c.target.Component, c.target.Data} {
		if err := w.WriteString(s); err != nil {
			return err
		}
	}
	keys := c.target.extraKeys()
	w.WriteInt32(int32(len(keys)))
	for _, k := range keys {
		if err := w.WriteString(k); err != nil {
			return err
		}
		if err := w.WriteString(c.target.Extras[k]); err != nil {
			return err
		}
	}
	if flags.Has(parcel.FlagWriteReturnValue) {
		if fn := observer.Load(); fn != nil {
			(*fn)(c.token, c.Target())
		}
	}
	return nil
}

// Decode reads one callback. The nil token is a null reference.
func Decode(r *parcel.Reader) (*Callback, error) {
	token, err := r.ReadUUID()
	if err != nil {
		return nil, err
	}
	var in Intent
	for _, dst := range []*string{&in.Action, &in.Package, &in.Component, &in.Data} {
		if *dst, err = r.ReadString(); err != nil {
			return nil, err
		}
	}
	n, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	if n < 0 || int(n) > r.Remaining()/8 {
		return nil, fmt.Errorf("%w: extras count %d", parcel.ErrInvalidLength, n)
	}
	if n > 0 {
		in.Extras = make(map[string]string, n)
	}
	for i := int32(0); i < n; i++ {
		k, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		v, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		in.Extras[k] = v
	}
	return FromToken(token, in)
}
