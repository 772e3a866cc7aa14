package amojo

// Wire model of the chat channel API. Shapes follow the exchange format
// of the `/v2/origin/custom` origin: optional members are pointers or
// omitempty scalars so that absent fields never reach the wire as nulls
// or empty objects.

// Message content types.
const (
	TypeText     = "text"
	TypeContact  = "contact"
	TypeFile     = "file"
	TypeVideo    = "video"
	TypePicture  = "picture"
	TypeVoice    = "voice"
	TypeAudio    = "audio"
	TypeSticker  = "sticker"
	TypeLocation = "location"
)

// messageTypes is the closed set of valid Message.Type discriminants.
var messageTypes = map[string]bool{
	TypeText:     true,
	TypeContact:  true,
	TypeFile:     true,
	TypeVideo:    true,
	TypePicture:  true,
	TypeVoice:    true,
	TypeAudio:    true,
	TypeSticker:  true,
	TypeLocation: true,
}

// Event types of the message request envelope.
const (
	EventNewMessage  = "new_message"
	EventEditMessage = "edit_message"
)

// Location is a geo point attached to a "location" message.
type Location struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Contact is the card attached to a "contact" message.
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Profile holds optional contact details of a chat participant.
type Profile struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// Source tags a chat or message with its origin on the integration side.
type Source struct {
	// External source id. Up to 40 printable ASCII characters.
	ExternalID string `json:"external_id,omitempty"`
}

// Normalize checks the external id against the wire constraints.
func (s *Source) Normalize() error {
	if len(s.ExternalID) > 40 {
		return validationError("source external_id exceeds 40 characters")
	}
	for i := 0; i < len(s.ExternalID); i++ {
		if c := s.ExternalID[i]; c < 0x20 || c > 0x7e {
			return validationError("source external_id must be printable ASCII")
		}
	}
	return nil
}

// SenderReceiver identifies a chat participant: the message sender,
// receiver or the chat user.
type SenderReceiver struct {
	// Participant id on the integration side.
	ID string `json:"id,omitempty"`
	// Participant id on the CRM side. Used for existing users.
	RefID string `json:"ref_id,omitempty"`
	// Integration-side client id. Absent for CRM users.
	ClientID string `json:"client_id,omitempty"`
	// Display name.
	Name string `json:"name,omitempty"`
	// Avatar URL. Should be downloadable.
	Avatar string `json:"avatar,omitempty"`
	// Optional contact details.
	Profile *Profile `json:"profile,omitempty"`
	// Link to the user's profile in the external chat system.
	ProfileLink string `json:"profile_link,omitempty"`
}

// Message is the content of a send or edit, discriminated by Type.
// Which other fields are required depends on the discriminant; see Normalize.
type Message struct {
	Type string `json:"type"`
	// Required for "text".
	Text string `json:"text,omitempty"`
	// Media URL. Required for "file", "video", "picture".
	Media string `json:"media,omitempty"`
	// Required for "file", "video", "picture".
	FileName string `json:"file_name,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`
	// Sticker id for "sticker".
	StickerID string `json:"sticker_id,omitempty"`
	// Required for "location".
	Location *Location `json:"location,omitempty"`
	// Required for "contact".
	Contact *Contact `json:"contact,omitempty"`
	// Callback payload of an inline button reply.
	CallbackData string `json:"callback_data,omitempty"`
}

// violations collects every type-conditional rule the message breaks.
func (m *Message) violations() (errs []string) {
	switch {
	case m.Type == "":
		errs = append(errs, "message type is required")
	case !messageTypes[m.Type]:
		errs = append(errs, "unknown message type '"+m.Type+"'")
	}
	switch m.Type {
	case TypeText:
		if m.Text == "" {
			errs = append(errs, "text is required for type 'text'")
		}
	case TypeContact:
		if m.Contact == nil {
			errs = append(errs, "contact is required for type 'contact'")
		} else {
			if m.Contact.Name == "" {
				errs = append(errs, "contact name is required for type 'contact'")
			}
			if m.Contact.Phone == "" {
				errs = append(errs, "contact phone is required for type 'contact'")
			}
		}
	case TypeLocation:
		if m.Location == nil {
			errs = append(errs, "location is required for type 'location'")
		}
	case TypeFile, TypeVideo, TypePicture:
		if m.Media == "" {
			errs = append(errs, "media is required for type '"+m.Type+"'")
		}
		if m.FileName == "" {
			errs = append(errs, "file_name is required for type '"+m.Type+"'")
		}
	}
	// "sticker", "voice", "audio": no extra requirements
	return errs
}

// Normalize reports every required-field rule the message violates,
// aggregated into a single *ValidationError.
func (m *Message) Normalize() error {
	if errs := m.violations(); len(errs) > 0 {
		return &ValidationError{Violations: errs}
	}
	return nil
}

// EmbeddedUser is the reduced participant used inside reply and forward
// references. At least one of the identity fields must be set.
type EmbeddedUser struct {
	ID    string `json:"id,omitempty"`
	RefID string `json:"ref_id,omitempty"`
	Name  string `json:"name,omitempty"`
}

func (u *EmbeddedUser) Normalize() error {
	if u.ID == "" && u.RefID == "" && u.Name == "" {
		return validationError("at least one of sender id, ref_id or name is required")
	}
	return nil
}

// EmbeddedMessage is a message referenced by a reply or forward.
// Valid either as a bare reference (ID or MsgID set) or as a full inline
// message, which requires type, both timestamps and a sender.
type EmbeddedMessage struct {
	// Message id on the CRM side.
	ID string `json:"id,omitempty"`
	// Message id on the integration side.
	MsgID string `json:"msgid,omitempty"`

	Type          string    `json:"type,omitempty"`
	Text          string    `json:"text,omitempty"`
	FileName      string    `json:"file_name,omitempty"`
	FileSize      int64     `json:"file_size,omitempty"`
	MediaDuration int64     `json:"media_duration,omitempty"`
	Location      *Location `json:"location,omitempty"`
	Contact       *Contact  `json:"contact,omitempty"`

	Timestamp     int64         `json:"timestamp,omitempty"`
	MsecTimestamp int64         `json:"msec_timestamp,omitempty"`
	Sender        *EmbeddedUser `json:"sender,omitempty"`
}

// Normalize validates the reference-or-inline contract.
func (m *EmbeddedMessage) Normalize() error {
	if m.ID != "" || m.MsgID != "" {
		// Bare reference; nothing else required.
		return nil
	}
	var errs []string
	if m.Type == "" {
		errs = append(errs, "type is required when id and msgid are not present")
	}
	if m.Timestamp == 0 {
		errs = append(errs, "timestamp is required when id and msgid are not present")
	}
	if m.MsecTimestamp == 0 {
		errs = append(errs, "msec_timestamp is required when id and msgid are not present")
	}
	if m.Sender == nil {
		errs = append(errs, "sender is required when id and msgid are not present")
	} else if err := m.Sender.Normalize(); err != nil {
		errs = append(errs, err.(*ValidationError).Violations...)
	}
	switch m.Type {
	case TypeText:
		if m.Text == "" {
			errs = append(errs, "text is required for embedded message of type 'text'")
		}
	case TypeContact:
		if m.Contact == nil {
			errs = append(errs, "contact is required for embedded message of type 'contact'")
		}
	case TypeLocation:
		if m.Location == nil {
			errs = append(errs, "location is required for embedded message of type 'location'")
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Violations: errs}
	}
	return nil
}

// ReplyTo references the message this one answers.
type ReplyTo struct {
	Message *EmbeddedMessage `json:"message,omitempty"`
}

// Forwards carries messages forwarded from another conversation.
type Forwards struct {
	Messages          []*EmbeddedMessage `json:"messages,omitempty"`
	ConversationRefID string             `json:"conversation_ref_id,omitempty"`
	ConversationID    string             `json:"conversation_id,omitempty"`
}

// DeliveryStatus is a delivery state embedded into a message payload.
type DeliveryStatus struct {
	StatusCode int    `json:"status_code"`
	ErrorCode  int    `json:"error_code,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Payload aggregates everything one message event carries.
type Payload struct {
	// Seconds and milliseconds since epoch. At least one required.
	Timestamp     int64 `json:"timestamp,omitempty"`
	MsecTimestamp int64 `json:"msec_timestamp,omitempty"`
	// Message id on the integration side.
	MsgID string `json:"msgid,omitempty"`
	// Conversation reference: exactly one of the two identifies the chat.
	ConversationID    string `json:"conversation_id,omitempty"`
	ConversationRefID string `json:"conversation_ref_id,omitempty"`
	// Suppress CRM-side notifications for this event.
	Silent bool `json:"silent"`

	Source   *Source         `json:"source,omitempty"`
	Sender   *SenderReceiver `json:"sender,omitempty"`
	Receiver *SenderReceiver `json:"receiver,omitempty"`

	// Message id on the CRM side; set on edits of CRM-known messages.
	ID string `json:"id,omitempty"`

	Message        *Message        `json:"message,omitempty"`
	ReplyTo        *ReplyTo        `json:"reply_to,omitempty"`
	Forwards       *Forwards       `json:"forwards,omitempty"`
	DeliveryStatus *DeliveryStatus `json:"delivery_status,omitempty"`
}

// Normalize enforces the payload-level contract: exactly one resolvable
// conversation reference and at least one timestamp, then the contracts
// of every nested member that is present.
func (p *Payload) Normalize() error {
	if p.ConversationID == "" && p.ConversationRefID == "" {
		return validationError("need conversation_id or conversation_ref_id")
	}
	if p.Timestamp == 0 && p.MsecTimestamp == 0 {
		return validationError("need timestamp or msec_timestamp")
	}
	if p.Source != nil {
		if err := p.Source.Normalize(); err != nil {
			return err
		}
	}
	if p.Message != nil {
		if err := p.Message.Normalize(); err != nil {
			return err
		}
	}
	if p.ReplyTo != nil && p.ReplyTo.Message != nil {
		if err := p.ReplyTo.Message.Normalize(); err != nil {
			return err
		}
	}
	if p.Forwards != nil {
		for _, m := range p.Forwards.Messages {
			if err := m.Normalize(); err != nil {
				return err
			}
		}
	}
	return nil
}

// MessageRequest is the envelope of a send or edit message call.
type MessageRequest struct {
	EventType string   `json:"event_type"`
	Payload   *Payload `json:"payload"`
}

// MessageRef identifies the accepted message on the CRM side.
type MessageRef struct {
	ConversationID string `json:"conversation_id,omitempty"`
	RefID          string `json:"ref_id,omitempty"`
	MsgID          string `json:"msgid,omitempty"`
	SenderID       string `json:"sender_id,omitempty"`
}

// MessageResponse is the reply to a send or edit message call.
type MessageResponse struct {
	NewMessage *MessageRef `json:"new_message,omitempty"`
}

// ChannelResponse is the reply to a channel connect call.
type ChannelResponse struct {
	AccountID      string `json:"account_id"`
	HookAPIVersion string `json:"hook_api_version"`
	// Display name of the channel in the connected account.
	Title string `json:"title"`
	// Channel connection id for the specific account.
	ScopeID string `json:"scope_id"`
	// Whether the messaging time window is disabled.
	IsTimeWindowDisabled bool `json:"is_time_window_disabled"`
}

// ChatResponse is the reply to a chat create call.
type ChatResponse struct {
	// Chat id on the CRM side.
	ID     string          `json:"id"`
	Source *Source         `json:"source,omitempty"`
	User   *SenderReceiver `json:"user,omitempty"`
}

// HistoryPeer is the sender or receiver of an archived message.
type HistoryPeer struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	ClientID string `json:"client_id,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
}

// HistoryMessage is an archived message body.
type HistoryMessage struct {
	// Message id in the chat system.
	ID string `json:"id"`
	// Message id on the integration side.
	ClientID     string `json:"client_id,omitempty"`
	Type         string `json:"type"`
	Text         string `json:"text"`
	Media        string `json:"media,omitempty"`
	Thumbnail    string `json:"thumbnail,omitempty"`
	FileName     string `json:"file_name,omitempty"`
	FileSize     int64  `json:"file_size,omitempty"`
	MediaGroupID string `json:"media_group_id,omitempty"`
}

// HistoryItem is one entry of a conversation history.
type HistoryItem struct {
	Timestamp int64           `json:"timestamp"`
	Sender    *HistoryPeer    `json:"sender,omitempty"`
	Receiver  *HistoryPeer    `json:"receiver,omitempty"`
	Message   *HistoryMessage `json:"message,omitempty"`
}

// HistoryResponse is the reply to a conversation history call.
// Read-only projection; never constructed by the caller.
type HistoryResponse struct {
	Messages []*HistoryItem `json:"messages"`
}
