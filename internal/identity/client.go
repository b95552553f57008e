// internal/identity/client.go
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"ticketgate/internal/ticket"
)

// TicketHeader carries the session ticket on authenticated platform calls
const TicketHeader = "X-Api-Ticket"

// App identifies the calling application to the identity platform
type App struct {
	// ID is the application identifier
	ID string

	// Key is the application secret key
	Key string
}

// Client is a per-request handle on the identity platform. A client built
// without a ticket is unauthenticated; construction never fails for a missing
// ticket, calls that need one do.
type Client interface {
	// Ticket returns the session ticket this client is bound to, or nil
	Ticket() *ticket.Ticket

	// ValidateTicket asks the platform whether the bound ticket is currently
	// valid. An unauthenticated client is reported as not valid without a
	// network call.
	ValidateTicket(ctx context.Context) (bool, error)

	// ExchangeToken exchanges a one-time authorization token for a session
	// ticket using the application credentials
	ExchangeToken(ctx context.Context, oneTimeToken string, app App) (ticket.Ticket, error)
}

// PlatformError is a non-2xx response from the identity platform
type PlatformError struct {
	Status  int
	Message string
}

func (e *PlatformError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("identity platform returned status %d", e.Status)
	}
	return fmt.Sprintf("identity platform returned status %d: %s", e.Status, e.Message)
}

// httpClient talks to the platform's HTTP API
type httpClient struct {
	baseURL string
	hc      *http.Client
	tkt     *ticket.Ticket
}

type validateRequest struct {
	Ticket string `json:"ticket"`
}

type validateResponse struct {
	Valid bool `json:"valid"`
}

type exchangeRequest struct {
	Token  string `json:"token"`
	AppID  string `json:"app_id"`
	AppKey string `json:"app_key"`
}

type exchangeResponse struct {
	Ticket string `json:"ticket"`
}

func (c *httpClient) Ticket() *ticket.Ticket {
	return c.tkt
}

func (c *httpClient) ValidateTicket(ctx context.Context) (bool, error) {
	if c.tkt == nil {
		return false, nil
	}

	var resp validateResponse
	if err := c.post(ctx, "/api/v1/ticket/validate", validateRequest{Ticket: c.tkt.Value}, &resp); err != nil {
		return false, fmt.Errorf("validate ticket: %w", err)
	}
	return resp.Valid, nil
}

func (c *httpClient) ExchangeToken(ctx context.Context, oneTimeToken string, app App) (ticket.Ticket, error) {
	if oneTimeToken == "" {
		return ticket.Ticket{}, fmt.Errorf("exchange token: one-time token is empty")
	}

	var resp exchangeResponse
	err := c.post(ctx, "/api/v1/token/exchange", exchangeRequest{
		Token:  oneTimeToken,
		AppID:  app.ID,
		AppKey: app.Key,
	}, &resp)
	if err != nil {
		return ticket.Ticket{}, fmt.Errorf("exchange token: %w", err)
	}

	if resp.Ticket == "" {
		return ticket.Ticket{}, fmt.Errorf("exchange token: platform returned an empty ticket")
	}
	return ticket.Ticket{Value: resp.Ticket}, nil
}

// post sends a JSON request to the platform and decodes a JSON response. The
// request context governs cancellation; the underlying http.Client carries
// the configured network timeout.
func (c *httpClient) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tkt != nil {
		req.Header.Set(TicketHeader, c.tkt.Value)
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return &PlatformError{Status: res.StatusCode, Message: string(bytes.TrimSpace(msg))}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
