package transport

import (
	"encoding/binary"
	"errors"
	"io"
)

const (
	Magic     uint32 = 0x52414354 // "RACT"
	Version   uint16 = 1
	HeaderLen        = 16

	FlagHasAuth uint32 = 0x01
)

// MessageType identifies the frame payload.
type MessageType uint16

const (
	MsgListRequest  MessageType = 1
	MsgListResponse MessageType = 2
	MsgError        MessageType = 3
)

var (
	ErrShortHeader        = errors.New("transport: short frame header")
	ErrBadMagic           = errors.New("transport: bad magic")
	ErrUnsupportedVersion = errors.New("transport: unsupported version")
	ErrPayloadTooLarge    = errors.New("transport: payload too large")
	ErrAuthTooLarge       = errors.New("transport: auth too large")
	ErrTruncated          = errors.New("transport: truncated frame")
)

// Header is the fixed frame header.
type Header struct {
	Magic      uint32
	Version    uint16
	Type       MessageType
	Flags      uint32
	PayloadLen uint32
}

// Frame is one complete wire message.
type Frame struct {
	Header  Header
	Auth    []byte
	Payload []byte
}

// Limits constrains frame decode/encode memory use.
type Limits struct {
	MaxAuthBytes    int
	MaxPayloadBytes int
}

func DefaultLimits() Limits {
	return Limits{
		MaxAuthBytes:    1024,
		MaxPayloadBytes: 8 * 1024 * 1024,
	}
}

func ReadFrame(r io.Reader, limits Limits) (Frame, error) {
	var fixed [HeaderLen]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return Frame{}, ErrShortHeader
		}
		return Frame{}, err
	}

	h := DecodeHeader(fixed)
	if h.Magic != Magic {
		return Frame{}, ErrBadMagic
	}
	if h.Version != Version {
		return Frame{}, ErrUnsupportedVersion
	}
	if uint64(h.PayloadLen) > uint64(limits.MaxPayloadBytes) {
		return Frame{}, ErrPayloadTooLarge
	}

	f := Frame{Header: h}
	if h.Flags&FlagHasAuth != 0 {
		var lenBuf [2]byte
		if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
			return Frame{}, ErrTruncated
		}
		authLen := int(binary.BigEndian.Uint16(lenBuf[:]))
		if authLen > limits.MaxAuthBytes {
			return Frame{}, ErrAuthTooLarge
		}
		f.Auth = make([]byte, authLen)
		if _, err := io.ReadFull(r, f.Auth); err != nil {
			return Frame{}, ErrTruncated
		}
	}

	f.Payload = make([]byte, h.PayloadLen)
	if h.PayloadLen > 0 {
		if _, err := io.ReadFull(r, f.Payload); err != nil {
			return Frame{}, ErrTruncated
		}
	}
	return f, nil
}

func WriteFrame(w io.Writer, f Frame, limits Limits) error {
	if len(f.Auth) > limits.MaxAuthBytes || len(f.Auth) > int(^uint16(0)) {
		return ErrAuthTooLarge
	}
	if len(f.Payload) > limits.MaxPayloadBytes || uint64(len(f.Payload)) > uint64(^uint32(0)) {
		return ErrPayloadTooLarge
	}

	h := f.Header
	h.Magic = Magic
	h.Version = Version
	h.PayloadLen = uint32(len(f.Payload))
	if len(f.Auth) > 0 {
		h.Flags |= FlagHasAuth
	} else {
		h.Flags &^= FlagHasAuth
	}

	buf := make([]byte, 0, HeaderLen+2+len(f.Auth)+len(f.Payload))
	buf = append(buf, EncodeHeader(h)...)
	if len(f.Auth) > 0 {
		buf = binary.BigEndian.AppendUint16(buf, uint16(len(f.Auth)))
		buf = append(buf, f.Auth...)
	}
	buf = append(buf, f.Payload...)
	_, err := w.Write(buf)
	return err
}

func EncodeHeader(h Header) []byte {
	buf := make([]byte, HeaderLen)
	binary.BigEndian.PutUint32(buf[0:4], h.Magic)
	binary.BigEndian.PutUint16(buf[4:6], h.Version)
	binary.BigEndian.PutUint16(buf[6:8], uint16(h.Type))
	binary.BigEndian.PutUint32(buf[8:12], h.Flags)
	binary.BigEndian.PutUint32(buf[12:16], h.PayloadLen)
	return buf
}

func DecodeHeader(b [HeaderLen]byte) Header {
	return Header{
		Magic:      binary.BigEndian.Uint32(b[0:4]),
		Version:    binary.BigEndian.Uint16(b[4:6]),
		Type:       MessageType(binary.BigEndian.Uint16(b[6:8])),
		Flags:      binary.BigEndian.Uint32(b[8:12]),
		PayloadLen: binary.BigEndian.Uint32(b[12:16]),
	}
}
