package http

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FetchGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/test", r.URL.Path)
		assert.Equal(t, "value", r.URL.Query().Get("key"))
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "close", r.Header.Get("Connection"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message":"success"}`))
	}))
	defer server.Close()

	client := NewClient()
	resp, err := client.Fetch(context.Background(), MethodGet, server.URL+"/test?key=value", nil)
	require.NoError(t, err)

	assert.Equal(t, 200, resp.StatusCode)
	assert.True(t, resp.IsSuccess())

	contentType, ok := resp.GetHeader("Content-Type")
	assert.True(t, ok)
	assert.Equal(t, "application/json", contentType)

	body, ok := resp.GetBody()
	assert.True(t, ok)
	assert.Equal(t, `{"message":"success"}`, body)
}

func TestClient_FetchPost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		payload, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, `{"name":"rumbo"}`, string(payload))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"created":true}`))
	}))
	defer server.Close()

	client := NewClient()
	resp, err := client.Fetch(context.Background(), MethodPost, server.URL+"/items", map[string]string{"name": "rumbo"})
	require.NoError(t, err)

	assert.Equal(t, 201, resp.StatusCode)
	body, _ := resp.GetBody()
	assert.Equal(t, `{"created":true}`, body)
}

func TestClient_FetchTLS(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotNil(t, r.TLS)
		w.Write([]byte("secure"))
	}))
	defer server.Close()

	client := NewClient(WithTLSConfig(&tls.Config{InsecureSkipVerify: true}))
	resp, err := client.Fetch(context.Background(), MethodGet, server.URL, nil)
	require.NoError(t, err)

	assert.Equal(t, 200, resp.StatusCode)
	body, _ := resp.GetBody()
	assert.Equal(t, "secure", body)
}

func TestClient_FetchTLSHandshakeFailure(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	// No InsecureSkipVerify: the self-signed certificate fails validation.
	client := NewClient()
	_, err := client.Fetch(context.Background(), MethodGet, server.URL, nil)
	require.Error(t, err)
	assert.True(t, IsTLSError(err), "expected TLS error, got %v", err)
}

func TestClient_FetchTLSDisabled(t *testing.T) {
	client := NewClient(WithoutTLS())

	// The failure must come before any connection is attempted, so an
	// unroutable authority is fine here.
	_, err := client.Fetch(context.Background(), MethodGet, "https://192.0.2.1:1/", nil)
	require.Error(t, err)
	assert.True(t, IsTLSError(err), "expected TLS error, got %v", err)
}

func TestClient_FetchInvalidURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{
			name: "Unsupported scheme",
			url:  "ftp://host/resource",
		},
		{
			name: "Missing host",
			url:  "http:///path",
		},
		{
			name: "Malformed URL",
			url:  "http://exa mple.com/",
		},
		{
			name: "No scheme",
			url:  "host/path",
		},
	}

	client := NewClient()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Fetch(context.Background(), MethodGet, tt.url, nil)
			require.Error(t, err)
			assert.True(t, IsInvalidURL(err), "expected invalid-URL error, got %v", err)
		})
	}
}

func TestClient_FetchConnectionFailure(t *testing.T) {
	// Grab a port that is guaranteed closed by opening and releasing a
	// listener.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	listener.Close()

	client := NewClient()
	_, err = client.Fetch(context.Background(), MethodGet, "http://"+addr+"/", nil)
	require.Error(t, err)
	assert.True(t, IsConnectionFailed(err), "expected connection error, got %v", err)
}

func TestClient_FetchRawResponse(t *testing.T) {
	// A bare TCP server returning a canned response exercises the
	// read-until-close path without net/http smoothing anything over.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		// Drain the request header block before answering.
		buf := make([]byte, 4096)
		conn.Read(buf)
		io.WriteString(conn, "HTTP/1.1 99999 Unusual\r\nX-Raw: 1\r\n\r\npayload")
	}()

	client := NewClient()
	resp, err := client.Fetch(context.Background(), MethodGet, "http://"+listener.Addr().String()+"/", nil)
	require.NoError(t, err)

	assert.Equal(t, 99999, resp.StatusCode)
	assert.False(t, resp.IsSuccess())
	body, _ := resp.GetBody()
	assert.Equal(t, "payload", body)
}

func TestClient_FetchGarbageResponse(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		buf := make([]byte, 4096)
		conn.Read(buf)
		io.WriteString(conn, "not an http response at all")
	}()

	client := NewClient()
	_, err = client.Fetch(context.Background(), MethodGet, "http://"+listener.Addr().String()+"/", nil)
	require.Error(t, err)
	assert.True(t, IsParseError(err), "expected parse error, got %v", err)
}

func TestClient_FetchContextDeadline(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		// Never respond; the caller's deadline is the only way out.
		defer conn.Close()
		time.Sleep(2 * time.Second)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	client := NewClient()
	_, err = client.Fetch(ctx, MethodGet, "http://"+listener.Addr().String()+"/", nil)
	require.Error(t, err)
	assert.True(t, IsRequestFailed(err), "expected request-failed error, got %v", err)
}

func TestClient_FetchExtraHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token-123", r.Header.Get("Authorization"))
		assert.Equal(t, "rumbo-test/1.0", r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(
		WithUserAgent("rumbo-test/1.0"),
		WithHeader("Authorization", "token-123"),
	)

	resp, err := client.Fetch(context.Background(), MethodGet, server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)
	assert.False(t, resp.HasBody())
}

func TestFetch_DefaultClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	resp, err := Fetch(context.Background(), MethodGet, server.URL, nil)
	require.NoError(t, err)
	assert.True(t, resp.IsSuccess())
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		expectedHost string
		expectedPort string
		expectedPath string
	}{
		{
			name:         "Default http port",
			url:          "http://example.com/get",
			expectedHost: "example.com",
			expectedPort: "80",
			expectedPath: "/get",
		},
		{
			name:         "Default https port",
			url:          "https://example.com/",
			expectedHost: "example.com",
			expectedPort: "443",
			expectedPath: "/",
		},
		{
			name:         "Explicit port",
			url:          "http://localhost:8080/api",
			expectedHost: "localhost",
			expectedPort: "8080",
			expectedPath: "/api",
		},
		{
			name:         "Empty path defaults to root",
			url:          "http://example.com",
			expectedHost: "example.com",
			expectedPort: "80",
			expectedPath: "/",
		},
		{
			name:         "Query string joined onto path",
			url:          "https://api.example.com/v1/users?filter=active&page=2",
			expectedHost: "api.example.com",
			expectedPort: "443",
			expectedPath: "/v1/users?filter=active&page=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := parseTarget(tt.url)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedHost, target.host)
			assert.Equal(t, tt.expectedPort, target.port)
			assert.Equal(t, tt.expectedPath, target.path)
		})
	}
}
