package transport

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"
	"time"
)

// EnvAddr overrides the endpoint address.
const EnvAddr = "ACTIONWIRE_ADDR"

const defaultAddr = "127.0.0.1:47900"

// Endpoint describes where the action server listens.
type Endpoint struct {
	Network string
	Address string
}

// DefaultEndpoint resolves the endpoint, honoring ACTIONWIRE_ADDR.
func DefaultEndpoint() Endpoint {
	if addr := strings.TrimSpace(os.Getenv(EnvAddr)); addr != "" {
		return Endpoint{Network: "tcp", Address: addr}
	}
	return Endpoint{Network: "tcp", Address: defaultAddr}
}

func (e Endpoint) Listen() (net.Listener, error) {
	return net.Listen(e.Network, e.Address)
}

func (e Endpoint) DialContext(ctx context.Context) (net.Conn, error) {
	d := &net.Dialer{Timeout: 5 * time.Second}
	return d.DialContext(ctx, e.Network, e.Address)
}

func (e Endpoint) String() string {
	return fmt.Sprintf("%s://%s", e.Network, e.Address)
}
