package amojo

import (
	"context"
	"net/http"
)

// Reaction actions.
const (
	ReactionSet   = "react"
	ReactionUnset = "unreact"
)

type reactUser struct {
	ID    string `json:"id,omitempty"`
	RefID string `json:"ref_id,omitempty"`
}

type reactRequest struct {
	ConversationID    string     `json:"conversation_id,omitempty"`
	ConversationRefID string     `json:"conversation_ref_id,omitempty"`
	ID                string     `json:"id,omitempty"`
	User              *reactUser `json:"user,omitempty"`
	Type              string     `json:"type,omitempty"`
	Emoji             string     `json:"emoji,omitempty"`
}

// ReactOptions are the inputs of a reaction set or unset.
type ReactOptions struct {
	// Conversation reference; exactly one of the two is required.
	ConversationID    string
	ConversationRefID string
	// Id of the message reacted to. Required.
	ID string
	// Reacting user; id or ref_id required.
	UserID    string
	UserRefID string
	// ReactionSet or ReactionUnset. Required.
	Type string
	// Emoji the reaction carries. Required.
	Emoji string
}

// React attaches or removes a reaction on a message.
// A well-formed reaction requires the conversation reference, the
// target message id, the reaction type and emoji, and an identified
// user; nothing is dispatched otherwise.
func (c *Client) React(ctx context.Context, opts ReactOptions) error {

	var errs []string
	if opts.ConversationID == "" && opts.ConversationRefID == "" {
		return validationError("need conversation_id or conversation_ref_id")
	}
	if opts.ID == "" {
		errs = append(errs, "message id is required")
	}
	if opts.UserID == "" && opts.UserRefID == "" {
		errs = append(errs, "user id or ref_id is required")
	}
	if opts.Type == "" {
		errs = append(errs, "reaction type is required")
	}
	if opts.Emoji == "" {
		errs = append(errs, "emoji is required")
	}
	if len(errs) > 0 {
		return &ValidationError{Violations: errs}
	}

	req := reactRequest{
		ConversationID:    opts.ConversationID,
		ConversationRefID: opts.ConversationRefID,
		ID:                opts.ID,
		User: &reactUser{
			ID:    opts.UserID,
			RefID: opts.UserRefID,
		},
		Type:  opts.Type,
		Emoji: opts.Emoji,
	}

	return c.do(ctx, http.MethodPost, c.scopePath("/react"), req, nil)
}
