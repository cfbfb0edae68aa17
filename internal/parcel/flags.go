package parcel

import "fmt"

// Flags alter how a value is written. Decoders never need them.
type Flags uint32

const (
	// FlagWriteReturnValue marks a value written as the result of a call.
	FlagWriteReturnValue Flags = 1 << 0
	// FlagPlainText drops styling from rich text.
	FlagPlainText Flags = 1 << 1

	knownFlags = FlagWriteReturnValue | FlagPlainText
)

func (f Flags) Has(flag Flags) bool {
	return f&flag != 0
}

// Validate rejects bits no encoder understands.
func (f Flags) Validate() error {
	if unknown := f &^ knownFlags; unknown != 0 {
		return fmt.Errorf("%w: %#x", ErrUnknownFlags, uint32(unknown))
	}
	return nil
}
