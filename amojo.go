// Package amojo is a client of the amoCRM chat channel API
// (the `/v2/origin/custom` origin): it signs and dispatches channel,
// chat, message, reaction, typing, delivery-status and history calls,
// and verifies the authenticity of inbound webhook deliveries.
package amojo

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Doer performs one HTTP exchange. Retry, timeouts and TLS policy all
// belong to this collaborator, not to the client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configure a Client.
type Options struct {
	// Channel secret issued with the integration. Required.
	Secret string
	// Channel id issued with the integration. Required.
	ChannelID string
	// Account referer host, e.g. "example.amocrm.ru". Required.
	Referer string
	// Chat API account token. Required.
	AccountToken string
	// HTTP collaborator; http.DefaultClient when nil.
	Client Doer
	// Dump outbound requests and responses through Log.
	Trace bool
	// Trace output destination; disabled when unset.
	Log zerolog.Logger
}

// Client issues signed requests against one connected channel.
// Credentials are immutable for the client's lifetime and every call
// computes its own Date, Content-MD5 and signature, so a single Client
// is safe for concurrent use without locking.
type Client struct {
	secret       string
	channelID    string
	accountToken string
	baseURL      string
	http         Doer
	log          zerolog.Logger

	// clock; time.Now in production, fixed in tests
	now func() time.Time
}

// New validates the channel credentials and builds a Client.
func New(opts Options) (*Client, error) {
	if opts.Secret == "" {
		return nil, errors.New("amojo: channel secret required")
	}
	if opts.ChannelID == "" {
		return nil, errors.New("amojo: channel id required")
	}
	if opts.Referer == "" {
		return nil, errors.New("amojo: account referer required")
	}
	if opts.AccountToken == "" {
		return nil, errors.New("amojo: account token required")
	}

	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}
	if opts.Trace {
		if base, ok := client.(*http.Client); ok {
			// Wrap a shallow copy of the HTTP client, never the
			// caller's (or the default) transport in place.
			configure := *base
			transport := configure.Transport
			if transport == nil {
				transport = http.DefaultTransport
			}
			configure.Transport = &TransportDump{
				Transport: transport,
				WithBody:  true,
				Log:       opts.Log,
			}
			client = &configure
		} else {
			// An abstract Doer has no transport to wrap;
			// layer the dumps around its Do instead.
			client = &doerDump{
				next: client,
				dump: &TransportDump{WithBody: true, Log: opts.Log},
			}
		}
	}

	return &Client{
		secret:       opts.Secret,
		channelID:    opts.ChannelID,
		accountToken: opts.AccountToken,
		baseURL:      BaseURL(opts.Referer),
		http:         client,
		log:          opts.Log,
		now:          time.Now,
	}, nil
}

// ChannelID reports the channel id the client was built with.
func (c *Client) ChannelID() string { return c.channelID }

// ScopeID is the channel connection key of this account:
// "<channel_id>_<account_token>". Recomputed, never stored.
func (c *Client) ScopeID() string {
	return c.channelID + "_" + c.accountToken
}

// Do performs a custom signed request against the given endpoint path
// and decodes the JSON reply into result when it is not nil. Escape
// hatch for endpoints the typed actions do not cover.
func (c *Client) Do(ctx context.Context, method, endpoint string, body, result any) error {
	return c.do(ctx, method, endpoint, body, result)
}

// do serializes body, signs and performs one API call. A nil body goes
// on the wire as the empty JSON array, matching what the remote verifier
// hashes for a bodiless request.
func (c *Client) do(ctx context.Context, method, endpoint string, body, result any) error {

	data := emptyBody
	if body != nil {
		buf := bytes.NewBuffer(nil)
		enc := json.NewEncoder(buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(body); err != nil {
			return errors.Wrap(err, "amojo: encode request")
		}
		// Encoder appends a newline; the signature must cover
		// the exact bytes sent.
		data = bytes.TrimRight(buf.Bytes(), "\n")
	}

	req, err := http.NewRequestWithContext(
		ctx, method, c.baseURL+endpoint, bytes.NewReader(data),
	)
	if err != nil {
		return errors.Wrapf(err, "amojo: %s %s", method, endpoint)
	}
	req.Close = true // Connection: close
	req.Header = requestHeaders(c.secret, method, endpoint, data, c.now())

	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "amojo: %s %s", method, req.URL)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrapf(err, "amojo: %s %s: read response", method, endpoint)
	}

	code := res.StatusCode
	if code < 200 || code >= 300 {
		return &StatusError{
			Code:     code,
			Status:   res.Status,
			Method:   method,
			URL:      req.URL.String(),
			Response: raw,
		}
	}

	if result != nil {
		if err := json.Unmarshal(raw, result); err != nil {
			return errors.Wrapf(err, "amojo: %s %s: decode response", method, endpoint)
		}
	}
	return nil
}
