package amojo

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"hash"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// SignatureHeader carries the webhook signature of an inbound delivery.
const SignatureHeader = "X-Signature"

// Verify reports whether the raw webhook payload is authentic for this
// channel: surrounding CR/LF is trimmed, an HMAC-SHA1 digest keyed with
// the channel secret is recomputed over the trimmed bytes and matched
// against the presented hex signature. Authenticity is a boolean, never
// an error; reject/log/ignore policy stays with the caller.
func (c *Client) Verify(payload []byte, signature string) bool {
	payload = bytes.Trim(payload, "\r\n")
	want, err := hex.DecodeString(signature)
	if err != nil || len(want) != sha1.Size {
		return false
	}
	mac := hmac.New(sha1.New, []byte(c.secret))
	mac.Write(payload)
	return hmac.Equal(mac.Sum(nil), want)
}

// webhookReader verifies the delivery signature while the body is
// consumed: an HMAC tees off every read and Close compares the final
// sum against the X-Signature header.
type webhookReader struct {
	// presented signature, raw sum bytes
	s []byte
	// hmac(sha1, secret)
	h hash.Hash
	// io.TeeReader(body, hmac)
	r io.Reader
	// req.Body.(io.Closer)
	c io.Closer
}

var _ io.ReadCloser = (*webhookReader)(nil)

// WebhookReader wraps the body of an inbound webhook request so the
// caller can stream-decode it; Close drains the remainder and fails
// with ErrSignature unless the X-Signature header matches the body.
func (c *Client) WebhookReader(req *http.Request) (io.ReadCloser, error) {

	hsum := req.Header.Get(SignatureHeader)
	if hex.DecodedLen(len(hsum)) != sha1.Size {
		return nil, errors.New("webhook: signature is invalid or missing")
	}
	sum, err := hex.DecodeString(hsum)
	if err != nil {
		return nil, errors.New("webhook: signature is invalid HEX sequence")
	}

	mac := hmac.New(sha1.New, []byte(c.secret))

	return &webhookReader{
		s: sum,
		h: mac,
		r: io.TeeReader(req.Body, mac),
		c: req.Body,
	}, nil
}

// ErrSignature is reported by WebhookReader.Close for a forged body.
var ErrSignature = errors.New("webhook: signature is invalid")

func (r *webhookReader) Read(b []byte) (int, error) {
	return r.r.Read(b)
}

func (r *webhookReader) Close() error {
	// Drain full body content to be able to calc valid signature
	_, err := io.Copy(io.Discard, r.r)
	if err != nil {
		return err
	}
	err = r.c.Close()
	if err != nil {
		return err
	}
	if sum := r.h.Sum(nil); !hmac.Equal(sum, r.s) {
		err = ErrSignature
	}
	return err
}

// Update is an inbound webhook delivery: a message authored on the CRM
// side addressed to this channel.
type Update struct {
	AccountID string         `json:"account_id,omitempty"`
	Time      int64          `json:"time,omitempty"`
	Message   *UpdateMessage `json:"message,omitempty"`
}

// UpdateConversation references the chat an update belongs to.
type UpdateConversation struct {
	// Conversation id on the CRM side.
	ID string `json:"id,omitempty"`
	// Conversation id on the integration side.
	ClientID string `json:"client_id,omitempty"`
}

// UpdateMessage is the payload of an inbound message update.
type UpdateMessage struct {
	Receiver      *SenderReceiver     `json:"receiver,omitempty"`
	Sender        *SenderReceiver     `json:"sender,omitempty"`
	Conversation  *UpdateConversation `json:"conversation,omitempty"`
	Timestamp     int64               `json:"timestamp,omitempty"`
	MsecTimestamp int64               `json:"msec_timestamp,omitempty"`
	Message       *UpdateContent      `json:"message,omitempty"`
}

// UpdateContent is the message body of an inbound update.
type UpdateContent struct {
	// Message id on the CRM side.
	ID string `json:"id,omitempty"`
	Message
}
