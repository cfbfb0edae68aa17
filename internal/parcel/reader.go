package parcel

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// Reader consumes values from a buffer in the order they were written.
type Reader struct {
	buf []byte
	off int
}

func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Remaining reports how many bytes have not been consumed.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

func (r *Reader) next(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, ErrTruncated
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *Reader) ReadInt32() (int32, error) {
	b, err := r.next(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.next(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *Reader) ReadInt64() (int64, error) {
	b, err := r.next(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

func (r *Reader) ReadBool() (bool, error) {
	b, err := r.next(1)
	if err != nil {
		return false, err
	}
	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, ErrInvalidBool
	}
}

// readLength returns the next length prefix; ok is false for the null marker.
func (r *Reader) readLength() (int, bool, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return 0, false, err
	}
	if n == nullLength {
		return 0, false, nil
	}
	if n < 0 || n > MaxLength {
		return 0, false, ErrInvalidLength
	}
	return int(n), true, nil
}

// ReadNullString returns the next string; ok is false when null was written.
func (r *Reader) ReadNullString() (s string, ok bool, err error) {
	n, ok, err := r.readLength()
	if err != nil || !ok {
		return "", false, err
	}
	b, err := r.next(n)
	if err != nil {
		return "", false, err
	}
	return string(b), true, nil
}

// ReadString returns the next string, treating null as the empty string.
func (r *Reader) ReadString() (string, error) {
	s, _, err := r.ReadNullString()
	return s, err
}

// ReadBytes returns a copy of the next byte run, or nil when null was written.
func (r *Reader) ReadBytes() ([]byte, error) {
	n, ok, err := r.readLength()
	if err != nil || !ok {
		return nil, err
	}
	b, err := r.next(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

func (r *Reader) ReadUUID() (uuid.UUID, error) {
	b, err := r.next(16)
	if err != nil {
		return uuid.Nil, err
	}
	var id uuid.UUID
	copy(id[:], b)
	return id, nil
}
