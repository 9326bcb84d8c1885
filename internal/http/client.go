package http

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/url"
)

// readBufferSize is the chunk size used when draining the response
// stream. The peer closing the connection is the only termination
// signal, so reads continue until EOF.
const readBufferSize = 4096

// Client issues single-shot HTTP/1.1 requests over raw TCP or TLS
// connections. Every call opens its own connection, writes one request,
// reads until the peer closes, and discards the connection; no state is
// shared between calls, so a Client is safe for concurrent use.
type Client struct {
	dialer     *net.Dialer
	tlsConfig  *tls.Config
	tlsEnabled bool
	userAgent  string
	headers    map[string]string
}

// ClientOption is a function that configures a Client
type ClientOption func(*Client)

// NewClient creates a new client with the given options
func NewClient(options ...ClientOption) *Client {
	client := &Client{
		dialer:     &net.Dialer{},
		tlsEnabled: true,
		userAgent:  DefaultUserAgent,
		headers:    make(map[string]string),
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// WithUserAgent sets the User-Agent header value for every request
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithHeader adds an extra header to every request made by the client
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithTLSConfig sets the TLS configuration used for https URLs
func WithTLSConfig(config *tls.Config) ClientOption {
	return func(c *Client) {
		c.tlsConfig = config
	}
}

// WithoutTLS disables TLS support. Fetching an https URL then fails
// immediately with a TLS error, before any connection is attempted.
func WithoutTLS() ClientOption {
	return func(c *Client) {
		c.tlsEnabled = false
	}
}

// WithDialer sets the dialer used to open TCP connections
func WithDialer(dialer *net.Dialer) ClientOption {
	return func(c *Client) {
		c.dialer = dialer
	}
}

// Fetch performs one complete HTTP transaction against rawurl: parse the
// URL, open a connection (plaintext for http, TLS for https), write the
// serialized request, read the response until the peer closes the
// connection, and parse the accumulated bytes.
//
// Exactly one attempt is made; no error is retried. The context governs
// connection establishment, and a context deadline is also applied to
// the connection's reads and writes. The core itself enforces no
// timeout: a stalled peer stalls the one transaction.
func (c *Client) Fetch(ctx context.Context, method Method, rawurl string, body interface{}) (*Response, error) {
	tgt, err := parseTarget(rawurl)
	if err != nil {
		return nil, err
	}

	if tgt.scheme == "https" && !c.tlsEnabled {
		return nil, newError(KindTLS, "TLS support is disabled on this client", nil)
	}

	conn, err := c.dial(ctx, tgt)
	if err != nil {
		return nil, err
	}

	if tgt.scheme == "https" {
		tlsConn := tls.Client(conn, c.tlsClientConfig(tgt.host))
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			conn.Close()
			return nil, newError(KindTLS, "TLS handshake failed", err)
		}
		conn = tlsConn
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	return c.roundtrip(conn, method, tgt, body)
}

// Fetch performs one HTTP transaction using a default client. The
// client holds no state, so the zero configuration is shared safely.
func Fetch(ctx context.Context, method Method, rawurl string, body interface{}) (*Response, error) {
	return defaultClient.Fetch(ctx, method, rawurl, body)
}

var defaultClient = NewClient()

// target is the authority and path a request is aimed at
type target struct {
	scheme string
	host   string
	port   string
	path   string // includes the query string when present
}

// parseTarget extracts scheme, host, port, and full path from a URL
// string. Scheme-default ports are 80 for http and 443 for https.
func parseTarget(rawurl string) (*target, error) {
	parsed, err := url.Parse(rawurl)
	if err != nil {
		return nil, newError(KindInvalidURL, fmt.Sprintf("malformed URL %q", rawurl), err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, newError(KindInvalidURL, fmt.Sprintf("unsupported scheme: %s", parsed.Scheme), nil)
	}

	host := parsed.Hostname()
	if host == "" {
		return nil, newError(KindInvalidURL, "missing host", nil)
	}

	port := parsed.Port()
	if port == "" {
		if parsed.Scheme == "https" {
			port = "443"
		} else {
			port = "80"
		}
	}

	path := parsed.Path
	if path == "" {
		path = "/"
	}
	if parsed.RawQuery != "" {
		path = path + "?" + parsed.RawQuery
	}

	return &target{
		scheme: parsed.Scheme,
		host:   host,
		port:   port,
		path:   path,
	}, nil
}

func (c *Client) dial(ctx context.Context, t *target) (net.Conn, error) {
	conn, err := c.dialer.DialContext(ctx, "tcp", net.JoinHostPort(t.host, t.port))
	if err != nil {
		return nil, newError(KindConnectionFailed, fmt.Sprintf("failed to connect to %s", t.host), err)
	}
	return conn, nil
}

// tlsClientConfig derives the per-connection TLS configuration with the
// target host as ServerName for SNI and certificate validation.
func (c *Client) tlsClientConfig(host string) *tls.Config {
	var config *tls.Config
	if c.tlsConfig != nil {
		config = c.tlsConfig.Clone()
	} else {
		config = &tls.Config{}
	}
	if config.ServerName == "" {
		config.ServerName = host
	}
	return config
}

// roundtrip writes the serialized request and drains the response until
// the peer closes the connection.
func (c *Client) roundtrip(conn net.Conn, method Method, t *target, body interface{}) (*Response, error) {
	req := NewRequest(method, t.host, t.path)
	req.UserAgent = c.userAgent
	for key, value := range c.headers {
		req.WithHeader(key, value)
	}
	if body != nil {
		req.WithBody(body)
	}

	raw, err := req.Build()
	if err != nil {
		return nil, err
	}

	if _, err := io.WriteString(conn, raw); err != nil {
		return nil, newError(KindRequestFailed, "failed to write request", err)
	}

	data, err := readAll(conn)
	if err != nil {
		return nil, err
	}

	return ParseResponse(data)
}

// readAll accumulates response bytes until a zero-length read reports
// the peer closed the connection. There is no Content-Length based early
// stop.
func readAll(conn net.Conn) ([]byte, error) {
	var response []byte
	buf := make([]byte, readBufferSize)

	for {
		n, err := conn.Read(buf)
		response = append(response, buf[:n]...)
		if err == io.EOF {
			return response, nil
		}
		if err != nil {
			return nil, newError(KindRequestFailed, "failed to read response", err)
		}
	}
}
