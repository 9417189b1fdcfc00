// Package client builds SDK clients for the current session.
package client

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

// Provider yields SDK clients bound to the signed-in session. It reads the
// session on every call, so a login or logout in the same process is
// picked up by the next client.
type Provider struct {
	serverURL  string
	timeout    time.Duration
	logger     *slog.Logger
	gateway    *sdk.Gateway
	httpClient *http.Client
}

// NewProvider constructs a Provider for serverURL. A 401 on any
// authenticated client expires the gateway's session.
func NewProvider(serverURL string, timeout time.Duration, gateway *sdk.Gateway, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Provider{
		serverURL:  serverURL,
		timeout:    timeout,
		logger:     logger,
		gateway:    gateway,
		httpClient: http.DefaultClient,
	}
}

// SetHTTPClient overrides the transport used by future clients.
func (p *Provider) SetHTTPClient(client *http.Client) {
	p.httpClient = client
}

// ServerURL returns the API root clients talk to.
func (p *Provider) ServerURL() string {
	return p.serverURL
}

// Anonymous returns a client without credentials, for login, registration
// and the public catalogue.
func (p *Provider) Anonymous() *sdk.Client {
	return sdk.NewClient(p.serverURL, p.options()...)
}

// SDKClient returns a client carrying the current session's token, or
// sdk.ErrNotAuthenticated when signed out. A 401 on the client expires that
// session only, never one established after it.
func (p *Provider) SDKClient() (*sdk.Client, error) {
	session := p.gateway.Store().Current()
	if session == nil {
		return nil, sdk.ErrNotAuthenticated
	}
	opts := append(p.options(),
		sdk.WithToken(session.Token),
		sdk.WithUnauthorizedHandler(func() { p.gateway.ExpireToken(session.Token) }),
	)
	return sdk.NewClient(p.serverURL, opts...), nil
}

func (p *Provider) options() []sdk.ClientOption {
	return []sdk.ClientOption{
		sdk.WithHTTPClient(p.httpClient),
		sdk.WithTimeout(p.timeout),
		sdk.WithLogger(p.logger),
	}
}
