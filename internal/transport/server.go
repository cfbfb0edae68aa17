package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/actionwire/internal/action"
	"github.com/danmuck/actionwire/internal/observability"
	"github.com/danmuck/actionwire/internal/parcel"
)

var ErrRemote = errors.New("transport: remote error")

const ioTimeout = 10 * time.Second

// ServerConfig configures a Server.
type ServerConfig struct {
	Actions []*action.Action
	Token   []byte
	Flags   parcel.Flags
	Limits  Limits
}

// Server answers list requests with a fixed action list.
type Server struct {
	actions []*action.Action
	token   []byte
	flags   parcel.Flags
	limits  Limits
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if err := cfg.Flags.Validate(); err != nil {
		return nil, err
	}
	for i, a := range cfg.Actions {
		if a == nil {
			return nil, fmt.Errorf("%w: actions[%d] is nil", action.ErrInvalidArgument, i)
		}
	}
	limits := cfg.Limits
	if limits == (Limits{}) {
		limits = DefaultLimits()
	}
	return &Server{
		actions: append([]*action.Action(nil), cfg.Actions...),
		token:   append([]byte(nil), cfg.Token...),
		flags:   cfg.Flags,
		limits:  limits,
	}, nil
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	log.Info().Str("addr", ln.Addr().String()).Int("actions", len(s.actions)).Msg("transport.Server.Serve listening")

	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
	defer stop()

	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.handleConn(conn)
		}()
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	remote := conn.RemoteAddr().String()
	if err := conn.SetDeadline(time.Now().Add(ioTimeout)); err != nil {
		log.Warn().Err(err).Str("remote", remote).Msg("transport.handleConn set deadline")
		return
	}

	req, err := ReadFrame(conn, s.limits)
	if err != nil {
		observability.RecordFrame("in", "invalid")
		log.Warn().Err(err).Str("remote", remote).Msg("transport.handleConn read frame")
		return
	}
	observability.RecordFrame("in", req.Header.Type.String())

	resp := s.respond(req)
	if err := WriteFrame(conn, resp, s.limits); err != nil {
		log.Warn().Err(err).Str("remote", remote).Msg("transport.handleConn write frame")
		return
	}
	observability.RecordFrame("out", resp.Header.Type.String())
	log.Debug().Str("remote", remote).Str("type", resp.Header.Type.String()).Int("bytes", len(resp.Payload)).Msg("transport.handleConn replied")
}

func (s *Server) respond(req Frame) Frame {
	if req.Header.Type != MsgListRequest {
		return errorFrame(fmt.Sprintf("unexpected message type %s", req.Header.Type))
	}
	if !tokenMatches(s.token, req.Auth) {
		return errorFrame("unauthorized")
	}
	w := parcel.NewWriter()
	if err := action.EncodeList(w, s.actions, s.flags); err != nil {
		log.Error().Err(err).Msg("transport.respond encode actions")
		return errorFrame("encode failed")
	}
	observability.RecordActions("encode", len(s.actions))
	return Frame{Header: Header{Type: MsgListResponse}, Payload: w.Bytes()}
}

func errorFrame(msg string) Frame {
	return Frame{Header: Header{Type: MsgError}, Payload: []byte(msg)}
}

func (t MessageType) String() string {
	switch t {
	case MsgListRequest:
		return "list.request"
	case MsgListResponse:
		return "list.response"
	case MsgError:
		return "error"
	default:
		return fmt.Sprintf("unknown(%d)", uint16(t))
	}
}
