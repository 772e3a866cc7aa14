package amojo

import (
	"context"
	"net/http"
)

type typingSender struct {
	ID    string `json:"id,omitempty"`
	RefID string `json:"ref_id,omitempty"`
}

type typingRequest struct {
	ConversationID    string        `json:"conversation_id,omitempty"`
	ConversationRefID string        `json:"conversation_ref_id,omitempty"`
	Sender            *typingSender `json:"sender,omitempty"`
}

// TypingOptions are the inputs of a typing indication.
type TypingOptions struct {
	// Conversation reference; exactly one of the two is required.
	ConversationID    string
	ConversationRefID string
	// Who is typing; omitted unless one of the ids is set.
	SenderID    string
	SenderRefID string
}

// Typing signals that someone is composing a message in the chat.
func (c *Client) Typing(ctx context.Context, opts TypingOptions) error {

	if opts.ConversationID == "" && opts.ConversationRefID == "" {
		return validationError("need conversation_id or conversation_ref_id")
	}

	req := typingRequest{
		ConversationID:    opts.ConversationID,
		ConversationRefID: opts.ConversationRefID,
	}
	if opts.SenderID != "" || opts.SenderRefID != "" {
		req.Sender = &typingSender{
			ID:    opts.SenderID,
			RefID: opts.SenderRefID,
		}
	}

	return c.do(ctx, http.MethodPost, c.scopePath("/typing"), req, nil)
}
