package amojo

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"strings"
	"time"
)

const contentTypeJSON = "application/json"

// emptyBody is what goes on the wire when a request carries no payload.
// The Content-MD5 hash covers these two bytes, never the empty string.
var emptyBody = []byte("[]")

// contentMD5 returns the hex MD5 digest of the request body bytes.
func contentMD5(body []byte) string {
	sum := md5.Sum(body)
	return hex.EncodeToString(sum[:])
}

// signString builds the canonical string the signature is computed over.
// Field set and order are part of the wire contract:
// method, Content-MD5, Content-Type, Date, endpoint.
func signString(method, md5sum, contentType, date, endpoint string) string {
	return strings.Join([]string{
		method,
		md5sum,
		contentType,
		date,
		endpoint,
	}, "\n")
}

// sign computes the hex HMAC-SHA1 digest of content, keyed with the raw
// channel secret. Empty secret or endpoint still signs; payload-level
// validation happens before any of this.
func sign(secret, content string) string {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write([]byte(content))
	return hex.EncodeToString(mac.Sum(nil))
}

// httpDate formats t as an HTTP-date in GMT.
func httpDate(t time.Time) string {
	return t.UTC().Format(http.TimeFormat)
}

// requestHeaders builds the authentication header set for one API call.
// Date and Content-MD5 are call specific, so a header set is computed
// fresh per request and never cached.
func requestHeaders(secret, method, endpoint string, body []byte, date time.Time) http.Header {
	var (
		md5sum = contentMD5(body)
		when   = httpDate(date)
	)
	header := make(http.Header, 5)
	header.Set("Date", when)
	header.Set("Content-Type", contentTypeJSON)
	header.Set("Content-MD5", md5sum)
	header.Set("X-Signature", sign(secret, signString(
		method, md5sum, contentTypeJSON, when, endpoint,
	)))
	header.Set("User-Agent", userAgent)
	return header
}
