package amojo

const (
	// Client name; also the default sender display name
	// reported when the caller supplies none.
	clientName = "amojo-go"

	// Version of this client library.
	Version = "1.0.0"

	// User-Agent of every outbound request.
	userAgent = clientName + "/" + Version
)
