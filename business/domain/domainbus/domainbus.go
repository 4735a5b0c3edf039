// Package domainbus provides business access to custom domain availability
// and reachability verification.
package domainbus

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/negocio360/platform/foundation/logger"
	"github.com/negocio360/platform/foundation/otel"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// probeTimeout bounds the reachability probe so a black-holed domain does
// not stall the request.
const probeTimeout = 10 * time.Second

// Storer defines the behavior required by the domainbus to interact with
// the database.
type Storer interface {
	CountByDomain(ctx context.Context, domain string) (int, error)
}

// Option defines optional behavior for constructing a Core.
type Option func(*Core)

// WithHTTPClient replaces the client used for reachability probes.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Core) {
		c.client = client
	}
}

// Core manages the set of APIs for domain access.
type Core struct {
	log    *logger.Logger
	storer Storer
	client *http.Client
}

// NewCore constructs a core for domain api access.
func NewCore(log *logger.Logger, storer Storer, opts ...Option) *Core {
	c := Core{
		log:    log,
		storer: storer,
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   probeTimeout,
		},
	}

	for _, opt := range opts {
		opt(&c)
	}

	return &c
}

// CheckAvailability reports whether no tenant claims the domain as either a
// subdomain or a custom domain. Storage failures propagate; availability is
// never assumed on error.
func (c *Core) CheckAvailability(ctx context.Context, domain string) (bool, error) {
	ctx, span := otel.AddSpan(ctx, "business.domainbus.checkAvailability")
	defer span.End()

	count, err := c.storer.CountByDomain(ctx, domain)
	if err != nil {
		return false, fmt.Errorf("countByDomain[%s]: %w", domain, err)
	}

	return count == 0, nil
}

// Verify probes the domain over HTTPS and reports whether it answers with a
// success status. An unreachable domain is a negative verification result,
// not an error.
func (c *Core) Verify(ctx context.Context, domain string) (bool, error) {
	ctx, span := otel.AddSpan(ctx, "business.domainbus.verify")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, "https://"+domain, nil)
	if err != nil {
		return false, fmt.Errorf("newRequest[%s]: %w", domain, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Info(ctx, "domainbus: probe failed", "domain", domain, "err", err)
		return false, nil
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300, nil
}
