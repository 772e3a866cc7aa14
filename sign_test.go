package amojo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var signDate = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

func TestRequestHeaders(t *testing.T) {

	body := []byte(`{"account_id":"token"}`)
	h := requestHeaders("secret-key", "POST", "/v2/origin/custom/chan/connect", body, signDate)

	assert.Equal(t, "Wed, 01 Jan 2020 00:00:00 GMT", h.Get("Date"))
	assert.Equal(t, "application/json", h.Get("Content-Type"))
	assert.Equal(t, "0fa80264d8ae4656c5b0ddf99efe2c0a", h.Get("Content-MD5"))
	assert.Equal(t, "c29e0068877d7dc1c0e3b3f906a29b4f18ba5f34", h.Get("X-Signature"))
	assert.Equal(t, userAgent, h.Get("User-Agent"))
}

func TestRequestHeadersEmptyBody(t *testing.T) {

	// A bodiless request hashes the serialized empty value,
	// never the empty string.
	h := requestHeaders("secret-key", "GET",
		"/v2/origin/custom/chan_token/chats/conv-1/history", emptyBody, signDate)

	assert.Equal(t, "d751713988987e9331980363e24189ce", h.Get("Content-MD5"))
	assert.Equal(t, "0832bccba7adf3aeaf0d0892cdae35969b84ecee", h.Get("X-Signature"))
}

func TestRequestHeadersDeterministic(t *testing.T) {

	body := []byte(`{"a":1}`)
	one := requestHeaders("s", "POST", "/ep", body, signDate)
	two := requestHeaders("s", "POST", "/ep", body, signDate)

	assert.Equal(t, one, two)
}

func TestSignatureDivergence(t *testing.T) {

	base := func() string {
		return requestHeaders("s", "POST", "/ep", []byte(`{}`), signDate).Get("X-Signature")
	}()

	cases := []struct {
		name             string
		secret, method   string
		endpoint, body   string
	}{
		{"secret", "x", "POST", "/ep", `{}`},
		{"method", "s", "GET", "/ep", `{}`},
		{"endpoint", "s", "POST", "/ep2", `{}`},
		{"body", "s", "POST", "/ep", `{"a":1}`},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			h := requestHeaders(tt.secret, tt.method, tt.endpoint, []byte(tt.body), signDate)
			assert.NotEqual(t, base, h.Get("X-Signature"))
		})
	}
}

func TestSignStringOrder(t *testing.T) {
	// Field order is the wire contract.
	assert.Equal(t,
		"POST\nmd5\ntype\ndate\n/ep",
		signString("POST", "md5", "type", "date", "/ep"),
	)
}
