package action

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/danmuck/actionwire/internal/callback"
	"github.com/danmuck/actionwire/internal/icon"
	"github.com/danmuck/actionwire/internal/parcel"
	"github.com/danmuck/actionwire/internal/testutil/testlog"
	"github.com/danmuck/actionwire/internal/text"
)

var testToken = uuid.MustParse("3b241101-e2bb-4255-8caf-4136c566a962")

func testIcon(t *testing.T) *icon.Icon {
	t.Helper()
	ic, err := icon.Resource("com.example.player", 0x7f020001)
	if err != nil {
		t.Fatalf("icon: %v", err)
	}
	return ic
}

func testCallback(t *testing.T) *callback.Callback {
	t.Helper()
	cb, err := callback.FromToken(testToken, callback.Intent{
		Action:  "com.example.player.OPEN",
		Package: "com.example.player",
	})
	if err != nil {
		t.Fatalf("callback: %v", err)
	}
	return cb
}

func newTestAction(t *testing.T) *Action {
	t.Helper()
	a, err := New(testIcon(t), text.Plain("Open"), text.Plain("Opens the app"), testCallback(t))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return a
}

func TestOpenActionScenario(t *testing.T) {
	testlog.Start(t)
	a := newTestAction(t)
	if a.Title().String() != "Open" {
		t.Fatalf("unexpected title %q", a.Title())
	}

	w := parcel.NewWriter()
	if err := a.Encode(w, 0); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(parcel.NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Description().String() != "Opens the app" {
		t.Fatalf("unexpected description %q", got.Description())
	}
	if !got.Callback().Target().Equal(a.Callback().Target()) {
		t.Fatalf("callback target mismatch: %s", got.Callback().Target())
	}
}

func TestRoundTripAcrossFlags(t *testing.T) {
	testlog.Start(t)
	data, err := icon.Data([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a})
	if err != nil {
		t.Fatalf("icon: %v", err)
	}
	title, err := text.Styled("Pause", text.Span{Kind: text.SpanBold, Start: 0, End: 5})
	if err != nil {
		t.Fatalf("title: %v", err)
	}
	cb, err := callback.New(callback.Intent{
		Action: "pause",
		Data:   "media://session/1",
		Extras: map[string]string{"source": "pip"},
	})
	if err != nil {
		t.Fatalf("callback: %v", err)
	}
	styled, err := New(data.WithTint(0xffffffff), title, text.Plain(""), cb)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	cases := []struct {
		name  string
		in    *Action
		flags parcel.Flags
	}{
		{name: "plain", in: newTestAction(t), flags: 0},
		{name: "styled", in: styled, flags: 0},
		{name: "return value", in: styled, flags: parcel.FlagWriteReturnValue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := Marshal(tc.in, tc.flags)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			got, err := Unmarshal(b)
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !got.Equal(tc.in) {
				t.Fatalf("round-trip mismatch:\n got %s\nwant %s", got, tc.in)
			}
		})
	}

	b, err := Marshal(styled, parcel.FlagPlainText)
	if err != nil {
		t.Fatalf("marshal plain: %v", err)
	}
	got, err := Unmarshal(b)
	if err != nil {
		t.Fatalf("unmarshal plain: %v", err)
	}
	if got.Title().String() != "Pause" || got.Title().IsStyled() {
		t.Fatalf("plain text flag not honored: %+v", got.Title().Spans())
	}
	if !got.Icon().Equal(styled.Icon()) || !got.Callback().Equal(styled.Callback()) {
		t.Fatalf("plain text flag changed non-text fields")
	}
}

func TestNewRejectsMissingField(t *testing.T) {
	ic, cb := testIcon(t), testCallback(t)
	title, desc := text.Plain("Open"), text.Plain("Opens the app")

	cases := []struct {
		field string
		build func() (*Action, error)
	}{
		{FieldIcon, func() (*Action, error) { return New(nil, title, desc, cb) }},
		{FieldTitle, func() (*Action, error) { return New(ic, nil, desc, cb) }},
		{FieldDescription, func() (*Action, error) { return New(ic, title, nil, cb) }},
		{FieldCallback, func() (*Action, error) { return New(ic, title, desc, nil) }},
		{FieldIcon, func() (*Action, error) { return New(&icon.Icon{}, title, desc, cb) }},
		{FieldCallback, func() (*Action, error) { return New(ic, title, desc, &callback.Callback{}) }},
		{FieldIcon, func() (*Action, error) { return newTestAction(t).WithIcon(&icon.Icon{}) }},
		{FieldCallback, func() (*Action, error) { return newTestAction(t).WithCallback(&callback.Callback{}) }},
	}
	for _, tc := range cases {
		a, err := tc.build()
		if a != nil {
			t.Fatalf("%s: instance produced despite missing field", tc.field)
		}
		if !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("%s: expected ErrInvalidArgument, got %v", tc.field, err)
		}
		var fe *FieldError
		if !errors.As(err, &fe) || fe.Field != tc.field {
			t.Fatalf("%s: unexpected field error %v", tc.field, err)
		}
	}
}

func TestDecodeTruncatedAfterIcon(t *testing.T) {
	a := newTestAction(t)
	w := parcel.NewWriter()
	if err := a.Icon().Encode(w); err != nil {
		t.Fatalf("encode icon: %v", err)
	}
	got, err := Decode(parcel.NewReader(w.Bytes()))
	if got != nil {
		t.Fatalf("partial instance returned")
	}
	if !errors.Is(err, ErrMalformedEncoding) {
		t.Fatalf("expected ErrMalformedEncoding, got %v", err)
	}
	if !errors.Is(err, parcel.ErrTruncated) {
		t.Fatalf("expected truncation cause, got %v", err)
	}
	var fe *FieldError
	if !errors.As(err, &fe) || fe.Field != FieldTitle {
		t.Fatalf("expected failure on title, got %v", err)
	}
}

func TestDecodeEveryTruncationFails(t *testing.T) {
	b, err := Marshal(newTestAction(t), 0)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for n := 0; n < len(b); n++ {
		if _, err := Unmarshal(b[:n]); !errors.Is(err, ErrMalformedEncoding) {
			t.Fatalf("prefix %d/%d: expected ErrMalformedEncoding, got %v", n, len(b), err)
		}
	}
}

func TestUnmarshalRejectsTrailingBytes(t *testing.T) {
	b, err := Marshal(newTestAction(t), 0)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := Unmarshal(append(b, 0)); !errors.Is(err, ErrMalformedEncoding) {
		t.Fatalf("expected ErrMalformedEncoding, got %v", err)
	}
}

func TestFieldOrderIsLoadBearing(t *testing.T) {
	a := newTestAction(t)
	w := parcel.NewWriter()
	// title written ahead of icon
	if err := a.Title().Encode(w, 0); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := a.Icon().Encode(w); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := a.Description().Encode(w, 0); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := a.Callback().Encode(w, 0); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(parcel.NewReader(w.Bytes()))
	if err == nil && got.Equal(a) {
		t.Fatalf("reordered fields decoded to the original action")
	}
}

func TestEncodeRejectsUnknownFlags(t *testing.T) {
	w := parcel.NewWriter()
	if err := newTestAction(t).Encode(w, parcel.Flags(1<<12)); !errors.Is(err, parcel.ErrUnknownFlags) {
		t.Fatalf("expected ErrUnknownFlags, got %v", err)
	}
	if w.Len() != 0 {
		t.Fatalf("bytes written before flag validation")
	}
}

func TestCloneIsDistinctAndEqual(t *testing.T) {
	a := newTestAction(t)
	c := a.Clone()
	if c == a {
		t.Fatalf("clone returned the same pointer")
	}
	if c.Icon() != a.Icon() || c.Title() != a.Title() ||
		c.Description() != a.Description() || c.Callback() != a.Callback() {
		t.Fatalf("clone did not share parts")
	}
	if !c.Equal(a) {
		t.Fatalf("clone not equal")
	}
}

func TestWithReplacesOneField(t *testing.T) {
	a := newTestAction(t)
	b, err := a.WithTitle(text.Plain("Close"))
	if err != nil {
		t.Fatalf("with title: %v", err)
	}
	if a.Title().String() != "Open" || b.Title().String() != "Close" {
		t.Fatalf("unexpected titles %q %q", a.Title(), b.Title())
	}
	if b.Icon() != a.Icon() || b.Callback() != a.Callback() {
		t.Fatalf("other parts not carried over")
	}
	if _, err := a.WithCallback(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestDumpIsPure(t *testing.T) {
	a := newTestAction(t)
	before, err := Marshal(a, 0)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var first, second bytes.Buffer
	a.Dump("  ", &first)
	a.Dump("  ", &second)
	if first.String() != second.String() {
		t.Fatalf("dump not stable: %q vs %q", first.String(), second.String())
	}
	want := "  title=Open contentDescription=Opens the app " +
		"icon=Icon(typ=RESOURCE pkg=com.example.player id=0x7f020001) " +
		"action=Intent { act=com.example.player.OPEN pkg=com.example.player }\n"
	if first.String() != want {
		t.Fatalf("unexpected dump:\n got %q\nwant %q", first.String(), want)
	}

	after, err := Marshal(a, 0)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Fatalf("dump altered encoding")
	}
}

func TestListRoundTrip(t *testing.T) {
	a := newTestAction(t)
	b, err := a.WithDescription(text.Plain("Second"))
	if err != nil {
		t.Fatalf("with description: %v", err)
	}
	w := parcel.NewWriter()
	if err := EncodeList(w, []*Action{a, b}, 0); err != nil {
		t.Fatalf("encode list: %v", err)
	}
	if err := EncodeList(w, nil, 0); err != nil {
		t.Fatalf("encode nil list: %v", err)
	}
	r := parcel.NewReader(w.Bytes())
	got, err := DecodeList(r)
	if err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(got) != 2 || !got[0].Equal(a) || !got[1].Equal(b) {
		t.Fatalf("list mismatch: %v", got)
	}
	nilList, err := DecodeList(r)
	if err != nil || nilList != nil {
		t.Fatalf("expected nil list, got %v err=%v", nilList, err)
	}
	if err := EncodeList(parcel.NewWriter(), []*Action{nil}, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestRegisteredCreator(t *testing.T) {
	b, err := Marshal(newTestAction(t), 0)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	v, err := parcel.Default.DecodeNamed(CreatorName, parcel.NewReader(b))
	if err != nil {
		t.Fatalf("decode named: %v", err)
	}
	a, ok := v.(*Action)
	if !ok || !strings.HasPrefix(a.String(), "title=Open") {
		t.Fatalf("unexpected creator result %T %v", v, v)
	}
}

func TestFailedEncodeLeavesWriterUntouched(t *testing.T) {
	a := newTestAction(t)
	huge, err := a.WithTitle(text.Plain(strings.Repeat("x", parcel.MaxLength+1)))
	if err != nil {
		t.Fatalf("with title: %v", err)
	}

	w := parcel.NewWriter()
	w.WriteInt32(7)
	before := append([]byte(nil), w.Bytes()...)

	if err := huge.Encode(w, 0); !errors.Is(err, parcel.ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
	if !bytes.Equal(w.Bytes(), before) {
		t.Fatalf("failed encode left %d bytes behind", w.Len()-len(before))
	}

	if err := EncodeList(w, []*Action{a, huge}, 0); !errors.Is(err, parcel.ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
	if !bytes.Equal(w.Bytes(), before) {
		t.Fatalf("failed list encode left %d bytes behind", w.Len()-len(before))
	}
}

func TestConcurrentReaders(t *testing.T) {
	testlog.Start(t)
	a := newTestAction(t)
	wantBytes, err := Marshal(a, 0)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var wantDump bytes.Buffer
	a.Dump("> ", &wantDump)

	const workers = 16
	errs := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				b, err := Marshal(a, 0)
				if err != nil || !bytes.Equal(b, wantBytes) {
					errs <- "encode diverged"
					return
				}
				var dump bytes.Buffer
				a.Dump("> ", &dump)
				if dump.String() != wantDump.String() {
					errs <- "dump diverged"
					return
				}
				if a.Title().String() != "Open" || a.Callback().Token() != testToken || a.Icon().ResID() != 0x7f020001 {
					errs <- "accessor diverged"
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Fatalf("%s", msg)
	}
}
