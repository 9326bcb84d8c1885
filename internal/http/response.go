package http

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode/utf8"
)

// headerSeparator terminates the header block of an HTTP/1.1 message.
const headerSeparator = "\r\n\r\n"

// Response represents a parsed HTTP response. It is a pure value: built
// once by ParseResponse, never mutated afterwards.
type Response struct {
	StatusCode int
	headers    map[string]string
	body       string
	hasBody    bool
}

// ParseResponse parses the raw bytes accumulated from a closed
// connection into a Response.
//
// The text is split on the first blank-line separator into a header
// block and an optional body; an empty body section means no body, not
// an empty one. The status line must contain a non-negative integer as
// its second whitespace-delimited token; no range check is applied, so
// out-of-range codes like 99999 parse fine and semantic validity is left
// to IsSuccess and friends. Header lines are split on the first colon,
// names lower-cased and trimmed, values trimmed; on duplicate names the
// last occurrence wins, and lines without a colon are skipped. Invalid
// byte sequences are replaced rather than failing the parse; only
// structural problems are errors.
func ParseResponse(raw []byte) (*Response, error) {
	text := decodeLossy(raw)

	headerSection, bodySection, found := strings.Cut(text, headerSeparator)

	lines := splitLines(headerSection)
	if len(lines) == 0 || lines[0] == "" {
		return nil, newError(KindResponseParse, "missing status line", nil)
	}

	status, err := parseStatusLine(lines[0])
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string)
	for _, line := range lines[1:] {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		headers[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}

	resp := &Response{
		StatusCode: status,
		headers:    headers,
	}
	if found && bodySection != "" {
		resp.body = bodySection
		resp.hasBody = true
	}
	return resp, nil
}

// parseStatusLine extracts the numeric status code from a status line
// such as "HTTP/1.1 200 OK".
func parseStatusLine(line string) (int, error) {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return 0, newError(KindResponseParse, "invalid status line format", nil)
	}

	status, err := strconv.Atoi(parts[1])
	if err != nil || status < 0 {
		return 0, newError(KindResponseParse, "failed to parse status code", err)
	}
	return status, nil
}

// decodeLossy converts raw bytes to text, replacing invalid UTF-8
// sequences instead of failing.
func decodeLossy(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	return strings.ToValidUTF8(string(raw), string(utf8.RuneError))
}

// splitLines splits a header block into lines, tolerating both CRLF and
// bare LF terminators.
func splitLines(section string) []string {
	lines := strings.Split(section, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

// GetHeader returns the value of the named header. Lookup is
// case-insensitive; the stored keys are lower-cased at parse time.
func (r *Response) GetHeader(name string) (string, bool) {
	value, ok := r.headers[strings.ToLower(name)]
	return value, ok
}

// Headers returns a copy of the header map with lower-cased keys
func (r *Response) Headers() map[string]string {
	headers := make(map[string]string, len(r.headers))
	for key, value := range r.headers {
		headers[key] = value
	}
	return headers
}

// GetBody returns the response body and whether one was present. A
// response whose byte stream ends at the header separator has no body.
func (r *Response) GetBody() (string, bool) {
	return r.body, r.hasBody
}

// HasBody reports whether the response carried a non-empty body
func (r *Response) HasBody() bool {
	return r.hasBody
}

// GetBodyAsJSON unmarshals the response body into the provided interface
func (r *Response) GetBodyAsJSON(v interface{}) error {
	return json.Unmarshal([]byte(r.body), v)
}

// IsSuccess returns true if the response status code is in the 2xx range
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsRedirect returns true if the response status code is in the 3xx range
func (r *Response) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400
}

// IsClientError returns true if the response status code is in the 4xx range
func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

// IsServerError returns true if the response status code is in the 5xx range
func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500 && r.StatusCode < 600
}
