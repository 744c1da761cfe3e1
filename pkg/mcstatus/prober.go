// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package mcstatus

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultPort is the game port used when neither the address nor DNS names one.
	DefaultPort = 25565
	// DefaultTimeout bounds each probe end to end.
	DefaultTimeout = 10 * time.Second
)

// ErrUnavailable marks a player query that could not be answered. It is an
// expected outcome while the server is offline or has query disabled.
var ErrUnavailable = errors.New("player query unavailable")

// Config configures a Prober.
type Config struct {
	// Address is host or host:port. Without a port, SRV records are consulted.
	Address string
	// QueryPort overrides the UDP query port. Zero means the game port.
	QueryPort int
	Timeout   time.Duration
}

// Prober queries a game server with the status ping (TCP) and the
// full-stat query (UDP) protocols. It holds no shared state.
type Prober struct {
	host      string
	port      uint16
	queryPort uint16
	timeout   time.Duration
	resolver  *net.Resolver
}

// NewProber validates cfg and returns a Prober.
func NewProber(cfg Config) (*Prober, error) {
	if strings.TrimSpace(cfg.Address) == "" {
		return nil, fmt.Errorf("game server address is required")
	}
	if cfg.QueryPort < 0 || cfg.QueryPort > 65535 {
		return nil, fmt.Errorf("invalid query port: %d", cfg.QueryPort)
	}

	p := &Prober{
		host:      cfg.Address,
		queryPort: uint16(cfg.QueryPort),
		timeout:   cfg.Timeout,
		resolver:  net.DefaultResolver,
	}
	if p.timeout <= 0 {
		p.timeout = DefaultTimeout
	}

	if host, port, err := net.SplitHostPort(cfg.Address); err == nil {
		n, err := strconv.ParseUint(port, 10, 16)
		if err != nil || n == 0 {
			return nil, fmt.Errorf("invalid port in address %q", cfg.Address)
		}
		p.host = host
		p.port = uint16(n)
	}

	return p, nil
}

// Status returns the current snapshot. Any failure yields the offline snapshot.
func (p *Prober) Status(ctx context.Context) Snapshot {
	snap, err := p.Ping(ctx)
	if err != nil {
		logrus.Debugf("status probe of %s failed: %v", p.host, err)
		return Offline()
	}
	return snap
}

// Players returns the names of connected players. The slice is empty, not
// nil, when nobody is online. Errors wrap ErrUnavailable.
func (p *Prober) Players(ctx context.Context) ([]string, error) {
	names, err := p.fullQuery(ctx)
	if err != nil {
		logrus.Debugf("player query of %s failed: %v", p.host, err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return names, nil
}

// resolve returns the host and game port to contact.
func (p *Prober) resolve(ctx context.Context) (string, uint16) {
	if p.port != 0 {
		return p.host, p.port
	}
	_, addrs, err := p.resolver.LookupSRV(ctx, "minecraft", "tcp", p.host)
	if err == nil && len(addrs) > 0 {
		return strings.TrimSuffix(addrs[0].Target, "."), addrs[0].Port
	}
	return p.host, DefaultPort
}

func deadline(ctx context.Context, conn net.Conn) {
	if dl, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(dl)
	}
}
