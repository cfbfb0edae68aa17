package parcel

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// MaxLength bounds any single string or byte run.
const MaxLength = 16 * 1024 * 1024

// nullLength is the length prefix written for a nil string or byte slice.
const nullLength int32 = -1

// Writer appends encoded values to an in-memory buffer.
type Writer struct {
	buf []byte
}

func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 64)}
}

// Bytes returns the encoded data. The slice aliases the writer's buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) Len() int {
	return len(w.buf)
}

// Truncate discards everything written after the first n bytes.
func (w *Writer) Truncate(n int) {
	if n < 0 || n > len(w.buf) {
		panic("parcel: truncate out of range")
	}
	w.buf = w.buf[:n]
}

func (w *Writer) WriteInt32(v int32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, uint32(v))
}

func (w *Writer) WriteUint32(v uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

func (w *Writer) WriteInt64(v int64) {
	w.buf = binary.BigEndian.AppendUint64(w.buf, uint64(v))
}

func (w *Writer) WriteBool(v bool) {
	b := byte(0)
	if v {
		b = 1
	}
	w.buf = append(w.buf, b)
}

// WriteString writes a non-null string.
func (w *Writer) WriteString(s string) error {
	if len(s) > MaxLength {
		return ErrInvalidLength
	}
	w.WriteInt32(int32(len(s)))
	w.buf = append(w.buf, s...)
	return nil
}

// WriteNullString writes the null marker in place of a string.
func (w *Writer) WriteNullString() {
	w.WriteInt32(nullLength)
}

// WriteBytes writes b with a length prefix. A nil slice is written as null.
func (w *Writer) WriteBytes(b []byte) error {
	if b == nil {
		w.WriteInt32(nullLength)
		return nil
	}
	if len(b) > MaxLength {
		return ErrInvalidLength
	}
	w.WriteInt32(int32(len(b)))
	w.buf = append(w.buf, b...)
	return nil
}

func (w *Writer) WriteUUID(id uuid.UUID) {
	w.buf = append(w.buf, id[:]...)
}
