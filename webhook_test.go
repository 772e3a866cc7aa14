package amojo

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func webhookClient(t *testing.T, secret string) *Client {
	t.Helper()
	c, err := New(Options{
		Secret:       secret,
		ChannelID:    "chan",
		Referer:      "example.amocrm.ru",
		AccountToken: "token",
	})
	require.NoError(t, err)
	return c
}

func TestVerify(t *testing.T) {

	c := webhookClient(t, "secret-key")

	payload := []byte(`{"account_id":"x"}`)
	signature := "5f7e269350bc3c6ad550b5c2900d97bd7eaa262e"

	assert.True(t, c.Verify(payload, signature))

	// trailing CR/LF is not part of the signed content
	assert.True(t, c.Verify([]byte(`{"account_id":"x"}`+"\r\n"), signature))

	// single byte mutation
	assert.False(t, c.Verify([]byte(`{"account_id":"y"}`), signature))

	// foreign secret
	other := webhookClient(t, "other")
	assert.False(t, other.Verify(payload, signature))
	assert.True(t, other.Verify(payload, "30d0191c3107a642433617a3349f2d21d65b338b"))

	// malformed signatures never panic, never match
	assert.False(t, c.Verify(payload, ""))
	assert.False(t, c.Verify(payload, "zz"))
	assert.False(t, c.Verify(payload, "deadbeef"))
}

type readCloser struct {
	io.Reader
}

func (r *readCloser) Close() error { return nil }

func TestWebhookReader(t *testing.T) {

	c := webhookClient(t, "secret-key")
	body := `{"account_id":"x"}`

	req := &http.Request{
		Header: http.Header{
			SignatureHeader: {"5f7e269350bc3c6ad550b5c2900d97bd7eaa262e"},
		},
		Body: &readCloser{Reader: strings.NewReader(body)},
	}

	r, err := c.WebhookReader(req)
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, body, string(got))
	assert.NoError(t, r.Close())
}

func TestWebhookDecodeUpdate(t *testing.T) {

	c := webhookClient(t, "secret-key")
	body := `{"account_id":"acc-1","time":1700000001,"message":{"receiver":{"id":"u-1","name":"Ann","client_id":"cli-1"},"sender":{"id":"op-1","name":"Operator"},"conversation":{"id":"conv-ref-1","client_id":"conv-1"},"timestamp":1700000001,"msec_timestamp":1700000001000,"message":{"id":"crm-1","type":"text","text":"hello"}}}`

	req := &http.Request{
		Header: http.Header{
			SignatureHeader: {"bc2b8b467e32116f172a97d7bbb566b7e6be4465"},
		},
		Body: &readCloser{Reader: strings.NewReader(body)},
	}

	r, err := c.WebhookReader(req)
	require.NoError(t, err)

	var update Update
	require.NoError(t, json.NewDecoder(r).Decode(&update))
	require.NoError(t, r.Close())

	assert.Equal(t, "acc-1", update.AccountID)
	assert.Equal(t, int64(1700000001), update.Time)

	message := update.Message
	require.NotNil(t, message)
	assert.Equal(t, "op-1", message.Sender.ID)
	assert.Equal(t, "Ann", message.Receiver.Name)
	assert.Equal(t, "cli-1", message.Receiver.ClientID)
	assert.Equal(t, "conv-ref-1", message.Conversation.ID)
	assert.Equal(t, "conv-1", message.Conversation.ClientID)
	assert.Equal(t, int64(1700000001000), message.MsecTimestamp)

	require.NotNil(t, message.Message)
	assert.Equal(t, "crm-1", message.Message.ID)
	assert.Equal(t, TypeText, message.Message.Type)
	assert.Equal(t, "hello", message.Message.Text)
}

func TestWebhookReaderForged(t *testing.T) {

	c := webhookClient(t, "secret-key")

	req := &http.Request{
		Header: http.Header{
			SignatureHeader: {"5f7e269350bc3c6ad550b5c2900d97bd7eaa262e"},
		},
		Body: &readCloser{Reader: strings.NewReader(`{"account_id":"forged"}`)},
	}

	r, err := c.WebhookReader(req)
	require.NoError(t, err)
	assert.ErrorIs(t, r.Close(), ErrSignature)
}

func TestWebhookReaderBadHeader(t *testing.T) {

	c := webhookClient(t, "secret-key")

	for _, signature := range []string{"", "short", strings.Repeat("z", 40)} {
		req := &http.Request{
			Header: http.Header{SignatureHeader: {signature}},
			Body:   &readCloser{Reader: strings.NewReader("{}")},
		}
		_, err := c.WebhookReader(req)
		assert.Error(t, err, signature)
	}
}
