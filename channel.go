package amojo

import (
	"context"
	"net/http"
)

// HookAPIVersion is the webhook protocol version requested on connect
// when the caller names none.
const HookAPIVersion = "v2"

// originBase is the path root every channel endpoint lives under.
const originBase = "/v2/origin/custom/"

// scopePath builds an endpoint path rooted at the channel scope.
func (c *Client) scopePath(suffix string) string {
	return originBase + c.ScopeID() + suffix
}

type connectChannelRequest struct {
	AccountID      string `json:"account_id"`
	HookAPIVersion string `json:"hook_api_version"`
	Title          string `json:"title,omitempty"`
}

type disconnectChannelRequest struct {
	AccountID string `json:"account_id"`
}

// ConnectChannelOptions are the optional inputs of a channel connect.
type ConnectChannelOptions struct {
	// Webhook protocol version; HookAPIVersion when empty.
	HookAPIVersion string
	// Display name of the channel in the connected account.
	Title string
}

// ConnectChannel binds the channel to the account the client was built
// for and reports the connection scope.
func (c *Client) ConnectChannel(ctx context.Context, opts ConnectChannelOptions) (*ChannelResponse, error) {

	version := opts.HookAPIVersion
	if version == "" {
		version = HookAPIVersion
	}

	req := connectChannelRequest{
		AccountID:      c.accountToken,
		HookAPIVersion: version,
		Title:          opts.Title,
	}

	var res ChannelResponse
	err := c.do(ctx, http.MethodPost,
		originBase+c.channelID+"/connect", req, &res,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// DisconnectChannel unbinds the channel from the account.
func (c *Client) DisconnectChannel(ctx context.Context) error {
	req := disconnectChannelRequest{
		AccountID: c.accountToken,
	}
	return c.do(ctx, http.MethodDelete,
		originBase+c.channelID+"/disconnect", req, nil,
	)
}
