package parcel

import "errors"

var (
	ErrTruncated        = errors.New("parcel: truncated data")
	ErrInvalidLength    = errors.New("parcel: invalid length")
	ErrInvalidBool      = errors.New("parcel: invalid bool value")
	ErrUnknownFlags     = errors.New("parcel: unknown flags")
	ErrDuplicateCreator = errors.New("parcel: creator already registered")
	ErrUnknownCreator   = errors.New("parcel: unknown creator")
)
