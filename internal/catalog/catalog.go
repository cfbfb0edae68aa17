// Package catalog loads remote actions from a TOML file.
package catalog

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/danmuck/actionwire/internal/action"
	"github.com/danmuck/actionwire/internal/callback"
	"github.com/danmuck/actionwire/internal/icon"
	"github.com/danmuck/actionwire/internal/text"
)

// tokenNamespace seeds stable callback tokens for catalog entries without one.
var tokenNamespace = uuid.MustParse("6f1c2a0e-5b7d-4c1e-9a3f-0d2e8b4c7a11")

const DefaultAddr = "127.0.0.1:47900"

// ServerConfig configures the transport server.
type ServerConfig struct {
	Addr   string
	Secret string
}

// Entry is one named action.
type Entry struct {
	ID     string
	Action *action.Action
}

type Catalog struct {
	Server  ServerConfig
	Entries []Entry
}

// Actions returns the actions in file order.
func (c *Catalog) Actions() []*action.Action {
	out := make([]*action.Action, 0, len(c.Entries))
	for _, e := range c.Entries {
		out = append(out, e.Action)
	}
	return out
}

type fileConfig struct {
	Server  fileServer   `toml:"server"`
	Actions []fileAction `toml:"actions"`
}

type fileServer struct {
	Addr   string `toml:"addr"`
	Secret string `toml:"secret"`
}

type fileAction struct {
	ID          string     `toml:"id"`
	Title       string     `toml:"title"`
	Description string     `toml:"description"`
	Token       string     `toml:"token"`
	Icon        fileIcon   `toml:"icon"`
	Intent      fileIntent `toml:"intent"`
	Spans       []fileSpan `toml:"spans"`
}

type fileIcon struct {
	Kind    string `toml:"kind"`
	Package string `toml:"package"`
	ID      int64  `toml:"id"`
	Data    string `toml:"data"`
	URI     string `toml:"uri"`
	Tint    string `toml:"tint"`
}

type fileIntent struct {
	Action    string            `toml:"action"`
	Package   string            `toml:"package"`
	Component string            `toml:"component"`
	Data      string            `toml:"data"`
	Extras    map[string]string `toml:"extras"`
}

type fileSpan struct {
	Target string `toml:"target"`
	Kind   string `toml:"kind"`
	Start  int    `toml:"start"`
	End    int    `toml:"end"`
	Arg    string `toml:"arg"`
}

// Load reads a catalog file.
func Load(path string) (*Catalog, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return build(raw, meta)
}

// Parse reads a catalog from TOML source.
func Parse(src string) (*Catalog, error) {
	var raw fileConfig
	meta, err := toml.Decode(src, &raw)
	if err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return build(raw, meta)
}

func build(raw fileConfig, meta toml.MetaData) (*Catalog, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("catalog: unknown key %q", undecoded[0].String())
	}
	cat := &Catalog{Server: ServerConfig{Addr: DefaultAddr}}
	if meta.IsDefined("server", "addr") {
		cat.Server.Addr = strings.TrimSpace(raw.Server.Addr)
	}
	if meta.IsDefined("server", "secret") {
		cat.Server.Secret = strings.TrimSpace(raw.Server.Secret)
	}

	seen := make(map[string]struct{}, len(raw.Actions))
	for i, fa := range raw.Actions {
		id := strings.TrimSpace(fa.ID)
		if id == "" {
			return nil, fmt.Errorf("actions[%d]: id is required", i)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("actions[%d]: duplicate id %q", i, id)
		}
		seen[id] = struct{}{}
		a, err := buildAction(id, fa)
		if err != nil {
			return nil, fmt.Errorf("actions[%d] (%s): %w", i, id, err)
		}
		cat.Entries = append(cat.Entries, Entry{ID: id, Action: a})
	}
	return cat, nil
}

func buildAction(id string, fa fileAction) (*action.Action, error) {
	ic, err := buildIcon(fa.Icon)
	if err != nil {
		return nil, err
	}

	var titleSpans, descSpans []text.Span
	for i, fs := range fa.Spans {
		sp, err := buildSpan(fs)
		if err != nil {
			return nil, fmt.Errorf("spans[%d]: %w", i, err)
		}
		switch strings.ToLower(strings.TrimSpace(fs.Target)) {
		case "", "title":
			titleSpans = append(titleSpans, sp)
		case "description":
			descSpans = append(descSpans, sp)
		default:
			return nil, fmt.Errorf("spans[%d]: unknown target %q", i, fs.Target)
		}
	}
	title, err := text.Styled(fa.Title, titleSpans...)
	if err != nil {
		return nil, fmt.Errorf("title: %w", err)
	}
	desc, err := text.Styled(fa.Description, descSpans...)
	if err != nil {
		return nil, fmt.Errorf("description: %w", err)
	}

	token := uuid.NewSHA1(tokenNamespace, []byte(id))
	if t := strings.TrimSpace(fa.Token); t != "" {
		if token, err = uuid.Parse(t); err != nil {
			return nil, fmt.Errorf("token: %w", err)
		}
	}
	cb, err := callback.FromToken(token, callback.Intent{
		Action:    fa.Intent.Action,
		Package:   fa.Intent.Package,
		Component: fa.Intent.Component,
		Data:      fa.Intent.Data,
		Extras:    fa.Intent.Extras,
	})
	if err != nil {
		return nil, err
	}
	return action.New(ic, title, desc, cb)
}

func buildIcon(fi fileIcon) (*icon.Icon, error) {
	var (
		ic  *icon.Icon
		err error
	)
	switch strings.ToLower(strings.TrimSpace(fi.Kind)) {
	case "resource":
		if fi.ID < math.MinInt32 || fi.ID > math.MaxInt32 {
			return nil, fmt.Errorf("icon id %d out of int32 range", fi.ID)
		}
		ic, err = icon.Resource(fi.Package, int32(fi.ID))
	case "data":
		var data []byte
		data, err = base64.StdEncoding.DecodeString(strings.TrimSpace(fi.Data))
		if err != nil {
			return nil, fmt.Errorf("icon data: %w", err)
		}
		ic, err = icon.Data(data)
	case "uri":
		ic, err = icon.URI(fi.URI)
	default:
		return nil, fmt.Errorf("icon: unknown kind %q", fi.Kind)
	}
	if err != nil {
		return nil, err
	}
	if tint := strings.TrimSpace(fi.Tint); tint != "" {
		v, err := strconv.ParseUint(strings.TrimPrefix(tint, "#"), 16, 32)
		if err != nil {
			return nil, fmt.Errorf("icon tint: %w", err)
		}
		ic = ic.WithTint(uint32(v))
	}
	return ic, nil
}

func buildSpan(fs fileSpan) (text.Span, error) {
	sp := text.Span{Start: fs.Start, End: fs.End, Arg: fs.Arg}
	switch strings.ToLower(strings.TrimSpace(fs.Kind)) {
	case "bold":
		sp.Kind = text.SpanBold
	case "italic":
		sp.Kind = text.SpanItalic
	case "underline":
		sp.Kind = text.SpanUnderline
	case "url":
		sp.Kind = text.SpanURL
	default:
		return text.Span{}, fmt.Errorf("unknown span kind %q", fs.Kind)
	}
	return sp, nil
}
