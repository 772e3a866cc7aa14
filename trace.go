package amojo

import (
	"net/http"
	"net/http/httputil"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TransportDump is an http.RoundTripper that dumps every outbound
// request and its response through a zerolog logger at trace level.
// Installed by the Trace client option; usable standalone as well.
type TransportDump struct {
	// Transport to dump operations of.
	Transport http.RoundTripper
	// WithBody includes payloads in the dumps.
	WithBody bool
	// Log destination.
	Log zerolog.Logger
}

func (d *TransportDump) RoundTrip(req *http.Request) (*http.Response, error) {

	reqID, _ := uuid.NewRandom()
	d.dumpRequest(reqID, req)

	res, err := d.transport().RoundTrip(req)
	if err != nil {
		d.Log.Error().Err(err).Msgf("\t>>>>> RESPONSE (%s) >>>>>", reqID)
		return res, err
	}

	d.dumpResponse(reqID, res)
	return res, nil
}

func (d *TransportDump) dumpRequest(id uuid.UUID, req *http.Request) {
	dump, err := httputil.DumpRequestOut(req, d.WithBody && req.ContentLength > 0)
	if err != nil {
		d.Log.Error().Err(err).Msg("httputil.DumpRequestOut")
		return
	}
	d.Log.Trace().Msgf("\t>>>>> OUTBOUND (%s) >>>>>\n\n%s\n\n", id, dump)
}

func (d *TransportDump) dumpResponse(id uuid.UUID, res *http.Response) {
	dump, err := httputil.DumpResponse(res, d.WithBody && res.ContentLength != 0)
	if err != nil {
		d.Log.Error().Err(err).Msg("httputil.DumpResponse")
		return
	}
	d.Log.Trace().Msgf("\t>>>>> RESPONSE (%s) >>>>>\n\n%s\n\n", id, dump)
}

func (d *TransportDump) transport() http.RoundTripper {
	if d.Transport != nil {
		return d.Transport
	}
	return http.DefaultTransport
}

// doerDump layers the same dumps around an abstract Doer, for HTTP
// collaborators with no transport to wrap.
type doerDump struct {
	next Doer
	dump *TransportDump
}

func (d *doerDump) Do(req *http.Request) (*http.Response, error) {

	reqID, _ := uuid.NewRandom()
	d.dump.dumpRequest(reqID, req)

	res, err := d.next.Do(req)
	if err != nil {
		d.dump.Log.Error().Err(err).Msgf("\t>>>>> RESPONSE (%s) >>>>>", reqID)
		return res, err
	}

	d.dump.dumpResponse(reqID, res)
	return res, nil
}
