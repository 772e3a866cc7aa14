package amojo

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// msgIDPrefix namespaces generated message ids so they are recognizable
// among caller-supplied ones.
const msgIDPrefix = clientName + "_msgid_"

func newMsgID() string {
	return msgIDPrefix + uuid.NewString()
}

// SendMessageOptions are the flat inputs of a message send. Nested
// payload sub-objects (source, sender profile, receiver, reply
// reference) materialize only when their trigger fields are set, so an
// omitted option never reaches the wire as an empty object.
type SendMessageOptions struct {
	// Conversation reference; exactly one of the two is required.
	ConversationID    string
	ConversationRefID string

	// Message id on the integration side; generated when empty.
	MsgID string
	// Seconds / milliseconds since epoch; both default to now.
	Timestamp     int64
	MsecTimestamp int64
	// Suppress CRM-side notifications.
	Silent bool

	// Message content. MessageType selects which other fields
	// are required; see Message.
	MessageType      string
	MessageText      string
	MessageMedia     string
	MessageFileName  string
	MessageFileSize  int64
	MessageStickerID string
	Location         *Location
	Contact          *Contact
	CallbackData     string

	// Message author. Name falls back to the library identifier.
	SenderID           string
	SenderRefID        string
	SenderName         string
	SenderAvatar       string
	SenderProfileLink  string
	SenderProfilePhone string
	SenderProfileEmail string

	// Addressee; omitted unless one of the ids is set.
	ReceiverID    string
	ReceiverRefID string

	// Chat source tag; omitted when empty.
	SourceExternalID string

	// Reference to the replied message by its CRM-side id.
	ReplyToMsgID string
	// Full reply reference; wins over ReplyToMsgID when set.
	ReplyTo *EmbeddedMessage
	// Forwarded messages.
	Forwards *Forwards
}

// EditMessageOptions are the flat inputs of a message edit. An edit
// carries only the conversation reference, the message identity and the
// replacement content.
type EditMessageOptions struct {
	// Conversation reference; exactly one of the two is required.
	ConversationID    string
	ConversationRefID string

	// Id of the edited message on the integration side.
	MsgID string
	// Seconds / milliseconds since epoch; both default to now.
	Timestamp     int64
	MsecTimestamp int64
	// Suppress CRM-side notifications for the edit.
	Silent bool

	// Replacement content.
	MessageType      string
	MessageText      string
	MessageMedia     string
	MessageFileName  string
	MessageFileSize  int64
	MessageStickerID string
	Location         *Location
	Contact          *Contact
	CallbackData     string
}

// SendMessage validates, signs and dispatches a new message event.
func (c *Client) SendMessage(ctx context.Context, opts SendMessageOptions) (*MessageResponse, error) {

	message := &Message{
		Type:         opts.MessageType,
		Text:         opts.MessageText,
		Media:        opts.MessageMedia,
		FileName:     opts.MessageFileName,
		FileSize:     opts.MessageFileSize,
		StickerID:    opts.MessageStickerID,
		Location:     opts.Location,
		Contact:      opts.Contact,
		CallbackData: opts.CallbackData,
	}

	payload := &Payload{
		ConversationID:    opts.ConversationID,
		ConversationRefID: opts.ConversationRefID,
		MsgID:             opts.MsgID,
		Timestamp:         opts.Timestamp,
		MsecTimestamp:     opts.MsecTimestamp,
		Silent:            opts.Silent,
		Message:           message,
		Sender:            opts.sender(),
		Receiver:          opts.receiver(),
		Source:            opts.source(),
		ReplyTo:           opts.replyTo(),
		Forwards:          opts.Forwards,
	}
	c.defaults(payload)

	if err := payload.Normalize(); err != nil {
		return nil, err
	}

	return c.sendEvent(ctx, EventNewMessage, payload)
}

// EditMessage validates, signs and dispatches an edit message event.
func (c *Client) EditMessage(ctx context.Context, opts EditMessageOptions) (*MessageResponse, error) {

	message := &Message{
		Type:         opts.MessageType,
		Text:         opts.MessageText,
		Media:        opts.MessageMedia,
		FileName:     opts.MessageFileName,
		FileSize:     opts.MessageFileSize,
		StickerID:    opts.MessageStickerID,
		Location:     opts.Location,
		Contact:      opts.Contact,
		CallbackData: opts.CallbackData,
	}

	payload := &Payload{
		ConversationID:    opts.ConversationID,
		ConversationRefID: opts.ConversationRefID,
		MsgID:             opts.MsgID,
		Timestamp:         opts.Timestamp,
		MsecTimestamp:     opts.MsecTimestamp,
		Silent:            opts.Silent,
		Message:           message,
	}
	c.defaults(payload)

	if err := payload.Normalize(); err != nil {
		return nil, err
	}

	return c.sendEvent(ctx, EventEditMessage, payload)
}

func (c *Client) sendEvent(ctx context.Context, eventType string, payload *Payload) (*MessageResponse, error) {
	req := MessageRequest{
		EventType: eventType,
		Payload:   payload,
	}
	var res MessageResponse
	err := c.do(ctx, http.MethodPost, c.scopePath(""), req, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// defaults fills the call-specific payload identity: a generated msgid
// and the current UTC timestamps, milliseconds aligned to seconds.
func (c *Client) defaults(payload *Payload) {
	if payload.MsgID == "" {
		payload.MsgID = newMsgID()
	}
	if payload.Timestamp == 0 {
		payload.Timestamp = c.now().UTC().Unix()
	}
	if payload.MsecTimestamp == 0 {
		payload.MsecTimestamp = payload.Timestamp * 1000
	}
}

func (opts *SendMessageOptions) sender() *SenderReceiver {
	name := opts.SenderName
	if name == "" {
		name = clientName
	}
	var profile *Profile
	if opts.SenderProfilePhone != "" || opts.SenderProfileEmail != "" {
		profile = &Profile{
			Phone: opts.SenderProfilePhone,
			Email: opts.SenderProfileEmail,
		}
	}
	return &SenderReceiver{
		ID:          opts.SenderID,
		RefID:       opts.SenderRefID,
		Name:        name,
		Avatar:      opts.SenderAvatar,
		Profile:     profile,
		ProfileLink: opts.SenderProfileLink,
	}
}

func (opts *SendMessageOptions) receiver() *SenderReceiver {
	if opts.ReceiverID == "" && opts.ReceiverRefID == "" {
		return nil
	}
	return &SenderReceiver{
		ID:    opts.ReceiverID,
		RefID: opts.ReceiverRefID,
	}
}

func (opts *SendMessageOptions) source() *Source {
	if opts.SourceExternalID == "" {
		return nil
	}
	return &Source{ExternalID: opts.SourceExternalID}
}

func (opts *SendMessageOptions) replyTo() *ReplyTo {
	if opts.ReplyTo != nil {
		return &ReplyTo{Message: opts.ReplyTo}
	}
	if opts.ReplyToMsgID != "" {
		return &ReplyTo{Message: &EmbeddedMessage{ID: opts.ReplyToMsgID}}
	}
	return nil
}
