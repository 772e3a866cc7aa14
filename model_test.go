package amojo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageNormalize(t *testing.T) {

	cases := []struct {
		name    string
		message Message
		want    []string // violated rule fragments; empty = valid
	}{
		{
			name:    "text ok",
			message: Message{Type: TypeText, Text: "hi"},
		},
		{
			name:    "text empty",
			message: Message{Type: TypeText},
			want:    []string{"text is required"},
		},
		{
			name:    "no type",
			message: Message{},
			want:    []string{"type is required"},
		},
		{
			name:    "unknown type",
			message: Message{Type: "poll"},
			want:    []string{"unknown message type"},
		},
		{
			name:    "contact ok",
			message: Message{Type: TypeContact, Contact: &Contact{Name: "n", Phone: "p"}},
		},
		{
			name:    "contact missing",
			message: Message{Type: TypeContact},
			want:    []string{"contact is required"},
		},
		{
			name:    "contact incomplete",
			message: Message{Type: TypeContact, Contact: &Contact{Name: "n"}},
			want:    []string{"contact phone is required"},
		},
		{
			name:    "location ok",
			message: Message{Type: TypeLocation, Location: &Location{Lon: 30.52, Lat: 50.45}},
		},
		{
			name:    "location missing",
			message: Message{Type: TypeLocation},
			want:    []string{"location is required"},
		},
		{
			name:    "file ok",
			message: Message{Type: TypeFile, Media: "https://x/f.pdf", FileName: "f.pdf"},
		},
		{
			name:    "file no file_name",
			message: Message{Type: TypeFile, Media: "https://x/f.pdf"},
			want:    []string{"file_name is required"},
		},
		{
			name:    "picture nothing",
			message: Message{Type: TypePicture},
			want:    []string{"media is required", "file_name is required"},
		},
		{
			name:    "sticker bare",
			message: Message{Type: TypeSticker},
		},
		{
			name:    "voice bare",
			message: Message{Type: TypeVoice},
		},
		{
			name:    "audio bare",
			message: Message{Type: TypeAudio},
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.message.Normalize()
			if len(tt.want) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			verr, ok := err.(*ValidationError)
			require.True(t, ok, "want *ValidationError, got %T", err)
			// every violated rule present in one aggregated report
			require.Len(t, verr.Violations, len(tt.want))
			for _, fragment := range tt.want {
				assert.Contains(t, err.Error(), fragment)
			}
		})
	}
}

func TestEmbeddedMessageNormalize(t *testing.T) {

	// bare reference by either id
	assert.NoError(t, (&EmbeddedMessage{ID: "m-1"}).Normalize())
	assert.NoError(t, (&EmbeddedMessage{MsgID: "m-1"}).Normalize())

	// full inline
	inline := &EmbeddedMessage{
		Type:          TypeText,
		Text:          "quoted",
		Timestamp:     1700000000,
		MsecTimestamp: 1700000000000,
		Sender:        &EmbeddedUser{RefID: "u-1"},
	}
	assert.NoError(t, inline.Normalize())

	// nothing at all: every inline requirement reported at once
	err := (&EmbeddedMessage{}).Normalize()
	require.Error(t, err)
	verr := err.(*ValidationError)
	assert.Len(t, verr.Violations, 4)

	// inline text without text
	err = (&EmbeddedMessage{
		Type:          TypeText,
		Timestamp:     1700000000,
		MsecTimestamp: 1700000000000,
		Sender:        &EmbeddedUser{Name: "bot"},
	}).Normalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "text is required for embedded message")

	// sender with no identity
	err = (&EmbeddedMessage{
		Type:          TypeText,
		Text:          "x",
		Timestamp:     1,
		MsecTimestamp: 1000,
		Sender:        &EmbeddedUser{},
	}).Normalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one of sender id, ref_id or name")
}

func TestPayloadNormalize(t *testing.T) {

	payload := func() *Payload {
		return &Payload{
			ConversationRefID: "conv-1",
			Timestamp:         1700000000,
			Message:           &Message{Type: TypeText, Text: "hi"},
		}
	}

	assert.NoError(t, payload().Normalize())

	// conversation reference: single generic error
	p := payload()
	p.ConversationRefID = ""
	err := p.Normalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "need conversation_id or conversation_ref_id")

	p = payload()
	p.ConversationRefID = ""
	p.ConversationID = "conv-2"
	assert.NoError(t, p.Normalize())

	// at least one timestamp
	p = payload()
	p.Timestamp = 0
	err = p.Normalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "need timestamp or msec_timestamp")

	p = payload()
	p.Timestamp = 0
	p.MsecTimestamp = 1700000000000
	assert.NoError(t, p.Normalize())

	// nested message contract still applies
	p = payload()
	p.Message = &Message{Type: TypeText}
	assert.Error(t, p.Normalize())

	// reply reference contract
	p = payload()
	p.ReplyTo = &ReplyTo{Message: &EmbeddedMessage{}}
	assert.Error(t, p.Normalize())
}

func TestSourceNormalize(t *testing.T) {

	assert.NoError(t, (&Source{}).Normalize())
	assert.NoError(t, (&Source{ExternalID: "channel-42"}).Normalize())
	assert.NoError(t, (&Source{ExternalID: strings.Repeat("a", 40)}).Normalize())

	err := (&Source{ExternalID: strings.Repeat("a", 41)}).Normalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "40 characters")

	err = (&Source{ExternalID: "линия"}).Normalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "printable ASCII")
}
