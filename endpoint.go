package amojo

import "strings"

// BaseURL resolves the chat API base URL from the account referer host.
// The leading subdomain label is replaced with the "amojo." service host:
// "example.amocrm.ru" becomes "https://amojo.amocrm.ru".
//
// Pure string transform, no lookups. A referer without a dot produces a
// degenerate base URL; supplying a valid referer is the caller's concern.
func BaseURL(referer string) string {
	segment := referer
	if dot := strings.IndexByte(referer, '.'); dot >= 0 {
		segment = referer[dot+1:]
	}
	return "https://amojo." + segment
}
