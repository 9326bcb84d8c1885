package http

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultUserAgent is sent when the client has not been configured with
// its own User-Agent value.
const DefaultUserAgent = "rumbo-http-client/0.1.0"

// Method is the closed set of HTTP methods supported by the client.
type Method int

const (
	// MethodGet issues a GET request with no body.
	MethodGet Method = iota
	// MethodPost issues a POST request with a JSON body.
	MethodPost
)

// String returns the wire name of the method
func (m Method) String() string {
	switch m {
	case MethodGet:
		return "GET"
	case MethodPost:
		return "POST"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

func (m Method) valid() bool {
	return m == MethodGet || m == MethodPost
}

// ParseMethod converts a method name (case-insensitive) into a Method
func ParseMethod(name string) (Method, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "GET":
		return MethodGet, nil
	case "POST":
		return MethodPost, nil
	default:
		return 0, fmt.Errorf("unsupported method %q", name)
	}
}

// Request represents a single HTTP/1.1 request to be serialized onto a
// raw connection
type Request struct {
	Method    Method
	Host      string
	Path      string // includes the query string when present
	Body      interface{}
	UserAgent string
	Headers   map[string]string
}

// NewRequest creates a request for the given method, host, and full path
func NewRequest(method Method, host, path string) *Request {
	return &Request{
		Method:    method,
		Host:      host,
		Path:      path,
		UserAgent: DefaultUserAgent,
		Headers:   make(map[string]string),
	}
}

// WithHeader adds an extra header to the request
func (r *Request) WithHeader(key, value string) *Request {
	r.Headers[key] = value
	return r
}

// WithBody sets the body of the request
func (r *Request) WithBody(body interface{}) *Request {
	r.Body = body
	return r
}

// Build serializes the request into raw HTTP/1.1 wire bytes. Line
// terminators are CRLF and the header block ends with a blank line.
//
// GET requests carry no body and no Content-Length/Content-Type. POST
// requests carry a JSON text payload with Content-Type: application/json
// and a Content-Length equal to the payload's byte length. Both carry
// Host, User-Agent, and Connection: close; the connection is single-shot.
func (r *Request) Build() (string, error) {
	if !r.Method.valid() {
		return "", newError(KindRequestFailed, fmt.Sprintf("unsupported method %q", r.Method), nil)
	}

	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("%s %s HTTP/1.1\r\n", r.Method, r.Path))
	buf.WriteString(fmt.Sprintf("Host: %s\r\n", r.Host))
	buf.WriteString(fmt.Sprintf("User-Agent: %s\r\n", r.userAgent()))

	if r.Method == MethodPost {
		jsonBody, err := encodeBody(r.Body)
		if err != nil {
			return "", newError(KindRequestFailed, "JSON serialization failed", err)
		}

		buf.WriteString("Content-Type: application/json\r\n")
		buf.WriteString(fmt.Sprintf("Content-Length: %d\r\n", len(jsonBody)))
		r.writeExtraHeaders(&buf)
		buf.WriteString("Connection: close\r\n\r\n")
		buf.WriteString(jsonBody)
		return buf.String(), nil
	}

	r.writeExtraHeaders(&buf)
	buf.WriteString("Connection: close\r\n\r\n")
	return buf.String(), nil
}

func (r *Request) userAgent() string {
	if r.UserAgent == "" {
		return DefaultUserAgent
	}
	return r.UserAgent
}

func (r *Request) writeExtraHeaders(buf *strings.Builder) {
	for key, value := range r.Headers {
		buf.WriteString(fmt.Sprintf("%s: %s\r\n", key, value))
	}
}

// encodeBody turns a request body into JSON text. Strings and byte
// slices are assumed to already be JSON and pass through verbatim; a nil
// body becomes the empty string.
func encodeBody(body interface{}) (string, error) {
	if body == nil {
		return "", nil
	}

	switch b := body.(type) {
	case string:
		return b, nil
	case []byte:
		return string(b), nil
	case json.RawMessage:
		return string(b), nil
	default:
		encoded, err := json.Marshal(b)
		if err != nil {
			return "", err
		}
		return string(encoded), nil
	}
}
