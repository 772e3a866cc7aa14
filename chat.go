package amojo

import (
	"context"
	"net/http"
)

type createChatRequest struct {
	ConversationID string          `json:"conversation_id"`
	Source         *Source         `json:"source,omitempty"`
	User           *SenderReceiver `json:"user"`
}

// CreateChatOptions are the flat inputs of a chat create.
// Source and profile sub-objects materialize only when their trigger
// fields are set.
type CreateChatOptions struct {
	// Chat id on the integration side. Required.
	ConversationID string
	// Chat source tag; omitted when empty.
	SourceExternalID string

	// Chat participant. UserID and UserName are required.
	UserID          string
	UserRefID       string
	UserName        string
	UserAvatar      string
	UserProfileLink string
	// Participant profile; omitted when both are empty.
	UserProfilePhone string
	UserProfileEmail string
}

// CreateChat registers a new conversation before its first message.
func (c *Client) CreateChat(ctx context.Context, opts CreateChatOptions) (*ChatResponse, error) {

	var errs []string
	if opts.ConversationID == "" {
		errs = append(errs, "conversation_id is required")
	}
	if opts.UserID == "" {
		errs = append(errs, "user id is required")
	}
	if opts.UserName == "" {
		errs = append(errs, "user name is required")
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Violations: errs}
	}

	var source *Source
	if opts.SourceExternalID != "" {
		source = &Source{ExternalID: opts.SourceExternalID}
		if err := source.Normalize(); err != nil {
			return nil, err
		}
	}

	var profile *Profile
	if opts.UserProfilePhone != "" || opts.UserProfileEmail != "" {
		profile = &Profile{
			Phone: opts.UserProfilePhone,
			Email: opts.UserProfileEmail,
		}
	}

	req := createChatRequest{
		ConversationID: opts.ConversationID,
		Source:         source,
		User: &SenderReceiver{
			ID:          opts.UserID,
			RefID:       opts.UserRefID,
			Name:        opts.UserName,
			Avatar:      opts.UserAvatar,
			Profile:     profile,
			ProfileLink: opts.UserProfileLink,
		},
	}

	var res ChatResponse
	err := c.do(ctx, http.MethodPost, c.scopePath("/chats"), req, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}
