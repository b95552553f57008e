// internal/identity/factory.go
package identity

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"ticketgate/internal/ticket"
)

// DefaultTimeout bounds every call to the identity platform when no timeout
// is configured
const DefaultTimeout = 10 * time.Second

// ClientFactory builds identity-platform clients bound to a single request
type ClientFactory interface {
	// Client produces a client, pre-authenticated when a ticket is supplied.
	// A nil ticket yields an unauthenticated client.
	Client(t *ticket.Ticket) Client
}

// Factory builds HTTP clients for the identity platform. One factory serves
// the whole process; the clients it produces are per-request.
type Factory struct {
	baseURL string
	hc      *http.Client
}

// FactoryConfig holds identity platform connection configuration
type FactoryConfig struct {
	// BaseURL is the base URL of the platform's HTTP API
	BaseURL string

	// Timeout bounds each platform call; DefaultTimeout when zero
	Timeout time.Duration
}

// NewFactory creates a client factory for the identity platform
func NewFactory(cfg FactoryConfig) (*Factory, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("identity platform URL is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Factory{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}, nil
}

// Client produces a per-request platform client. Construction never fails for
// a missing ticket; the client is simply unauthenticated and calls that need
// a session will fail later.
func (f *Factory) Client(t *ticket.Ticket) Client {
	return &httpClient{
		baseURL: f.baseURL,
		hc:      f.hc,
		tkt:     t,
	}
}
