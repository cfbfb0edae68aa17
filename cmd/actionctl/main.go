package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/actionwire/internal/action"
	"github.com/danmuck/actionwire/internal/catalog"
	"github.com/danmuck/actionwire/internal/logging"
	"github.com/danmuck/actionwire/internal/observability"
	"github.com/danmuck/actionwire/internal/parcel"
	"github.com/danmuck/actionwire/internal/transport"
)

const usage = `usage: actionctl <command> [flags]

commands:
  encode  -catalog FILE -out FILE [-plain]   write catalog actions as a binary list
  decode  -in FILE                           dump a binary action list
  dump    -catalog FILE                      dump catalog actions
  serve   -catalog FILE [-addr ADDR] [-metrics ADDR]
                                             serve catalog actions over tcp
  fetch   [-addr ADDR] [-secret S]           fetch and dump actions from a server
`

var errUsage = errors.New("usage")

func main() {
	logging.ConfigureRuntime()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "actionctl: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "encode":
		return runEncode(rest)
	case "decode":
		return runDecode(rest, stdout)
	case "dump":
		return runDump(rest, stdout)
	case "serve":
		return runServe(ctx, rest)
	case "fetch":
		return runFetch(ctx, rest, stdout)
	case "help", "-h", "--help":
		return errUsage
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func runEncode(args []string) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	catalogPath := fs.String("catalog", "", "catalog TOML path")
	out := fs.String("out", "", "output path")
	plain := fs.Bool("plain", false, "drop text styling")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *catalogPath == "" || *out == "" {
		return fmt.Errorf("%w: encode requires -catalog and -out", errUsage)
	}
	cat, err := catalog.Load(*catalogPath)
	if err != nil {
		return err
	}
	var flags parcel.Flags
	if *plain {
		flags |= parcel.FlagPlainText
	}
	w := parcel.NewWriter()
	if err := action.EncodeList(w, cat.Actions(), flags); err != nil {
		return err
	}
	if err := os.WriteFile(*out, w.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}
	log.Info().Str("out", *out).Int("actions", len(cat.Entries)).Int("bytes", w.Len()).Msg("encoded catalog")
	return nil
}

func runDecode(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	in := fs.String("in", "", "binary action list path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("%w: decode requires -in", errUsage)
	}
	data, err := os.ReadFile(*in)
	if err != nil {
		return fmt.Errorf("read %s: %w", *in, err)
	}
	r := parcel.NewReader(data)
	list, err := action.DecodeList(r)
	if err != nil {
		return err
	}
	if r.Remaining() != 0 {
		return fmt.Errorf("%w: %d trailing bytes", action.ErrMalformedEncoding, r.Remaining())
	}
	dumpAll(stdout, list)
	return nil
}

func runDump(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	catalogPath := fs.String("catalog", "", "catalog TOML path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *catalogPath == "" {
		return fmt.Errorf("%w: dump requires -catalog", errUsage)
	}
	cat, err := catalog.Load(*catalogPath)
	if err != nil {
		return err
	}
	for _, e := range cat.Entries {
		e.Action.Dump(e.ID+": ", stdout)
	}
	return nil
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	catalogPath := fs.String("catalog", "", "catalog TOML path")
	addr := fs.String("addr", "", "listen address (overrides catalog)")
	plain := fs.Bool("plain", false, "drop text styling")
	metricsAddr := fs.String("metrics", "", "serve prometheus metrics on this address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *catalogPath == "" {
		return fmt.Errorf("%w: serve requires -catalog", errUsage)
	}
	cat, err := catalog.Load(*catalogPath)
	if err != nil {
		return err
	}
	token, err := transport.DeriveToken(cat.Server.Secret)
	if err != nil {
		return err
	}
	var flags parcel.Flags
	if *plain {
		flags |= parcel.FlagPlainText
	}
	srv, err := transport.NewServer(transport.ServerConfig{
		Actions: cat.Actions(),
		Token:   token,
		Flags:   flags,
	})
	if err != nil {
		return err
	}

	if *metricsAddr != "" {
		stopMetrics, err := serveMetrics(*metricsAddr)
		if err != nil {
			return err
		}
		defer stopMetrics()
	}

	ep := resolveEndpoint(*addr, cat.Server.Addr)
	ln, err := ep.Listen()
	if err != nil {
		return fmt.Errorf("listen %s: %w", ep, err)
	}
	return srv.Serve(ctx, ln)
}

func runFetch(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("fetch", flag.ContinueOnError)
	addr := fs.String("addr", "", "server address")
	secret := fs.String("secret", "", "shared secret")
	timeout := fs.Duration("timeout", 10*time.Second, "request timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	token, err := transport.DeriveToken(*secret)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	c := &transport.Client{Endpoint: resolveEndpoint(*addr, ""), Token: token}
	list, err := c.Fetch(ctx)
	if err != nil {
		return err
	}
	dumpAll(stdout, list)
	return nil
}

// serveMetrics exposes /metrics on addr until the returned func is called.
func serveMetrics(addr string) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen metrics %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", observability.Handler())
	hs := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := hs.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn().Err(err).Str("addr", addr).Msg("actionctl.serveMetrics stopped")
		}
	}()
	log.Info().Str("addr", ln.Addr().String()).Msg("actionctl.serveMetrics listening")
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = hs.Shutdown(ctx)
	}, nil
}

// resolveEndpoint prefers the flag, then ACTIONWIRE_ADDR, then the catalog,
// then the built-in default.
func resolveEndpoint(flagAddr, catalogAddr string) transport.Endpoint {
	if a := strings.TrimSpace(flagAddr); a != "" {
		return transport.Endpoint{Network: "tcp", Address: a}
	}
	if a := strings.TrimSpace(catalogAddr); a != "" && os.Getenv(transport.EnvAddr) == "" {
		return transport.Endpoint{Network: "tcp", Address: a}
	}
	return transport.DefaultEndpoint()
}

func dumpAll(w io.Writer, list []*action.Action) {
	for i, a := range list {
		a.Dump(fmt.Sprintf("[%d] ", i), w)
	}
}
