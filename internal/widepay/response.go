package widepay

import (
	"encoding/json"
	"strings"
)

// TransportErrorMessage is surfaced when no response was received at all.
const TransportErrorMessage = "An internal error occurred, or the server did not respond to the request."

// Response is the parsed result of one WidePay call. It is built once per
// request/response cycle and read-only afterwards.
//
// WidePay frames its responses as a block of header lines followed by a single
// trailing line holding the JSON payload. Parse never fails: an undecodable
// body leaves Body() nil with the raw text preserved, and a missing or
// malformed status line falls back to "400".
type Response struct {
	status  string
	raw     string
	decoded any
	headers []string
	errs    []string
}

// Parse splits the raw wire block into header lines and the JSON body.
func Parse(raw []byte) *Response {
	lines := strings.Split(string(raw), "\n")
	body := lines[len(lines)-1]
	headers := lines[:len(lines)-1]

	resp := &Response{
		status:  "400",
		raw:     body,
		headers: headers,
	}
	if len(headers) > 0 {
		parts := strings.Fields(headers[0])
		if len(parts) >= 2 {
			resp.status = parts[1]
		}
	}
	resp.decode()
	return resp
}

// newTransportErrorResponse builds the synthetic response for a network-level
// failure, so downstream code has a single path for transport and application
// errors. The caller must not assume the remote registered any state change.
func newTransportErrorResponse() *Response {
	body, _ := json.Marshal(map[string]any{
		"error":  TransportErrorMessage,
		"status": 500,
	})
	resp := &Response{
		status: "500",
		raw:    string(body),
	}
	resp.decode()
	return resp
}

func (r *Response) decode() {
	var decoded any
	if err := json.Unmarshal([]byte(r.raw), &decoded); err == nil {
		r.decoded = decoded
	}
	r.errs = extractErrors(r.decoded)
}

// extractErrors pulls processor error messages out of the two shapes the API
// uses: an "errors" collection of {msg} entries, or a singular "error" string.
func extractErrors(decoded any) []string {
	body, ok := decoded.(map[string]any)
	if !ok {
		return nil
	}
	if list, ok := body["errors"].([]any); ok {
		out := make([]string, 0, len(list))
		for _, entry := range list {
			item, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			if msg, ok := item["msg"].(string); ok {
				out = append(out, msg)
			}
		}
		return out
	}
	if msg, ok := body["error"].(string); ok {
		return []string{msg}
	}
	return nil
}

// Status returns the HTTP status extracted from the first header line.
func (r *Response) Status() string { return r.status }

// Raw returns the raw body text exactly as received.
func (r *Response) Raw() string { return r.raw }

// Body returns the decoded JSON value, or nil when the body was not valid
// JSON or no response was received.
func (r *Response) Body() any { return r.decoded }

// Headers returns the raw header lines in wire order.
func (r *Response) Headers() []string { return r.headers }

// Errors returns the processor-reported error messages. An empty slice means
// the call succeeded at the protocol level; callers still need to inspect the
// charge status for the domain outcome.
func (r *Response) Errors() []string { return r.errs }
