package restyutil

import (
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

// Output receives formatted HTTP transcripts, keyed by an id that is
// unique within one client.
type Output interface {
	Write(id string, contents string)
}

// DumpTranscripts writes a plain-text transcript of every
// request/response pair made through the client to the output.
// Intended for debugging scrapes against live markup, `output` may be
// nil in which case this is a no-op.
func DumpTranscripts(client *resty.Client, output Output) {
	if output == nil {
		return
	}

	var counter uint64
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		id := atomic.AddUint64(&counter, 1)
		output.Write(fmt.Sprintf("%03d", id), formatTranscript(res))
		return nil
	})
}

func formatHeaders(headers http.Header) string {
	var out strings.Builder
	for k, vals := range headers {
		for _, v := range vals {
			fmt.Fprintf(&out, "%s: %s\n", k, v)
		}
	}
	return strings.TrimSuffix(out.String(), "\n")
}

func formatTranscript(res *resty.Response) string {
	var out strings.Builder

	fmt.Fprintf(&out, "---- REQUEST ----\n\n%s %s\n\n", res.Request.Method, res.Request.URL)
	if res.Request.RawRequest != nil {
		out.WriteString(formatHeaders(res.Request.RawRequest.Header))
		out.WriteString("\n\n")
	}

	fmt.Fprintf(&out, "---- RESPONSE ----\n\n%d\n\n", res.StatusCode())
	out.WriteString(formatHeaders(res.Header()))
	out.WriteString("\n\n")
	out.WriteString(res.String())

	return out.String()
}
