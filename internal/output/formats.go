package output

import (
	"encoding/json"
	"fmt"
	"time"

	http "github.com/crisandolindesmanrumahorbo/rumbo-http-client/internal/http"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the available output formats
type OutputFormat string

const (
	// FormatText is the default human-readable text format
	FormatText OutputFormat = "text"
	// FormatJSON outputs the transaction in JSON format
	FormatJSON OutputFormat = "json"
	// FormatYAML outputs the transaction in YAML format
	FormatYAML OutputFormat = "yaml"
)

// ParseFormat validates an output format name
func ParseFormat(name string) (OutputFormat, error) {
	switch OutputFormat(name) {
	case FormatText, FormatJSON, FormatYAML:
		return OutputFormat(name), nil
	default:
		return "", fmt.Errorf("unsupported output format %q", name)
	}
}

// RequestData is the structured record of the request half of a transaction
type RequestData struct {
	Method  string            `json:"method" yaml:"method"`
	URL     string            `json:"url" yaml:"url"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body    interface{}       `json:"body,omitempty" yaml:"body,omitempty"`
}

// ResponseData is the structured record of the response half of a transaction
type ResponseData struct {
	StatusCode     int               `json:"statusCode" yaml:"statusCode"`
	Success        bool              `json:"success" yaml:"success"`
	Headers        map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body           string            `json:"body,omitempty" yaml:"body,omitempty"`
	ResponseTimeMs int64             `json:"responseTimeMs" yaml:"responseTimeMs"`
}

// Transaction is one complete request/response cycle, ready for
// structured output
type Transaction struct {
	Request  RequestData   `json:"request" yaml:"request"`
	Response *ResponseData `json:"response,omitempty" yaml:"response,omitempty"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewTransaction assembles the structured record of a completed fetch
func NewTransaction(method http.Method, url string, headers map[string]string, body interface{}, resp *http.Response, elapsed time.Duration, err error) Transaction {
	tx := Transaction{
		Request: RequestData{
			Method:  method.String(),
			URL:     url,
			Headers: headers,
			Body:    body,
		},
	}

	if err != nil {
		tx.Error = err.Error()
		return tx
	}

	respBody, _ := resp.GetBody()
	tx.Response = &ResponseData{
		StatusCode:     resp.StatusCode,
		Success:        resp.IsSuccess(),
		Headers:        resp.Headers(),
		Body:           respBody,
		ResponseTimeMs: elapsed.Milliseconds(),
	}
	return tx
}

// Marshal renders the transaction in the requested structured format.
// FormatText is handled by Formatter, not here.
func (tx Transaction) Marshal(format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(tx, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshaling transaction to JSON: %w", err)
		}
		return string(data) + "\n", nil
	case FormatYAML:
		data, err := yaml.Marshal(tx)
		if err != nil {
			return "", fmt.Errorf("marshaling transaction to YAML: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported output format %q", format)
	}
}
