package amojo

import (
	"context"
	"net/http"
)

// GetHistory fetches the archived messages of a conversation, oldest
// first. The request carries no payload; its signature covers the
// serialized empty value.
func (c *Client) GetHistory(ctx context.Context, conversationRefID string) (*HistoryResponse, error) {

	if conversationRefID == "" {
		return nil, validationError("conversation_ref_id is required")
	}

	var res HistoryResponse
	err := c.do(ctx, http.MethodGet,
		c.scopePath("/chats/"+conversationRefID+"/history"), nil, &res,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}
