package transport

import (
	"bytes"
	"errors"
	"testing"
)

func TestFrameRoundTripWithAuth(t *testing.T) {
	in := Frame{
		Header:  Header{Type: MsgListRequest},
		Auth:    []byte{0xaa, 0xbb},
		Payload: []byte("payload"),
	}
	var buf bytes.Buffer
	if err := WriteFrame(&buf, in, DefaultLimits()); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := ReadFrame(&buf, DefaultLimits())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if out.Header.Type != MsgListRequest || out.Header.Flags&FlagHasAuth == 0 {
		t.Fatalf("unexpected header: %+v", out.Header)
	}
	if !bytes.Equal(out.Auth, in.Auth) || !bytes.Equal(out.Payload, in.Payload) {
		t.Fatalf("frame body mismatch: %+v", out)
	}
}

func TestWriteFrameClearsStaleAuthFlag(t *testing.T) {
	var buf bytes.Buffer
	in := Frame{Header: Header{Type: MsgError, Flags: FlagHasAuth}}
	if err := WriteFrame(&buf, in, DefaultLimits()); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.Len() != HeaderLen {
		t.Fatalf("expected header only, got %d bytes", buf.Len())
	}
	out, err := ReadFrame(&buf, DefaultLimits())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if out.Header.Flags&FlagHasAuth != 0 || len(out.Payload) != 0 {
		t.Fatalf("unexpected frame %+v", out)
	}
}

func TestReadFrameErrors(t *testing.T) {
	if _, err := ReadFrame(bytes.NewReader([]byte{1, 2, 3}), DefaultLimits()); !errors.Is(err, ErrShortHeader) {
		t.Fatalf("expected ErrShortHeader, got %v", err)
	}

	bad := EncodeHeader(Header{Magic: 0xdeadbeef, Version: Version})
	if _, err := ReadFrame(bytes.NewReader(bad), DefaultLimits()); !errors.Is(err, ErrBadMagic) {
		t.Fatalf("expected ErrBadMagic, got %v", err)
	}

	future := EncodeHeader(Header{Magic: Magic, Version: Version + 1})
	if _, err := ReadFrame(bytes.NewReader(future), DefaultLimits()); !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}

	huge := EncodeHeader(Header{Magic: Magic, Version: Version, PayloadLen: 1 << 30})
	if _, err := ReadFrame(bytes.NewReader(huge), DefaultLimits()); !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}

	var buf bytes.Buffer
	if err := WriteFrame(&buf, Frame{Payload: []byte("abcdef")}, DefaultLimits()); err != nil {
		t.Fatalf("write: %v", err)
	}
	b := buf.Bytes()
	if _, err := ReadFrame(bytes.NewReader(b[:len(b)-2]), DefaultLimits()); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestWriteFrameLimits(t *testing.T) {
	limits := Limits{MaxAuthBytes: 1, MaxPayloadBytes: 2}
	if err := WriteFrame(&bytes.Buffer{}, Frame{Auth: []byte{1, 2}}, limits); !errors.Is(err, ErrAuthTooLarge) {
		t.Fatalf("expected ErrAuthTooLarge, got %v", err)
	}
	if err := WriteFrame(&bytes.Buffer{}, Frame{Payload: []byte{1, 2, 3}}, limits); !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}
}
