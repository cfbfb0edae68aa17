package transport

import (
	"context"
	"fmt"
	"time"

	"github.com/danmuck/actionwire/internal/action"
	"github.com/danmuck/actionwire/internal/observability"
	"github.com/danmuck/actionwire/internal/parcel"
)

// Client fetches action lists from a Server.
type Client struct {
	Endpoint Endpoint
	Token    []byte
	Limits   Limits
}

// Fetch requests the server's action list.
func (c *Client) Fetch(ctx context.Context) ([]*action.Action, error) {
	limits := c.Limits
	if limits == (Limits{}) {
		limits = DefaultLimits()
	}
	conn, err := c.Endpoint.DialContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", c.Endpoint, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(ioTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return nil, err
	}

	req := Frame{Header: Header{Type: MsgListRequest}, Auth: c.Token}
	if err := WriteFrame(conn, req, limits); err != nil {
		return nil, fmt.Errorf("write request: %w", err)
	}
	resp, err := ReadFrame(conn, limits)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch resp.Header.Type {
	case MsgListResponse:
	case MsgError:
		return nil, fmt.Errorf("%w: %s", ErrRemote, resp.Payload)
	default:
		return nil, fmt.Errorf("%w: unexpected message type %s", ErrRemote, resp.Header.Type)
	}

	r := parcel.NewReader(resp.Payload)
	list, err := action.DecodeList(r)
	if err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", action.ErrMalformedEncoding, r.Remaining())
	}
	observability.RecordActions("decode", len(list))
	return list, nil
}
