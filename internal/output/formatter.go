package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	http "github.com/crisandolindesmanrumahorbo/rumbo-http-client/internal/http"
)

// Formatter renders requests and responses as human-readable text
type Formatter struct {
	Verbose bool
	scheme  *ColorScheme
}

// NewFormatter creates a new formatter with the given options
func NewFormatter(verbose, noColor bool) *Formatter {
	scheme := DefaultColorScheme()
	if noColor {
		scheme = NoColorScheme()
	}
	return &Formatter{
		Verbose: verbose,
		scheme:  scheme,
	}
}

// FormatRequest formats an outgoing request for display
func (f *Formatter) FormatRequest(method http.Method, url string, headers map[string]string, body interface{}) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("▶ REQUEST: %s %s\n",
		f.scheme.Method.Sprint(method),
		f.scheme.URL.Sprint(url)))

	if f.Verbose && len(headers) > 0 {
		buf.WriteString("  Headers:\n")
		for _, key := range sortedKeys(headers) {
			buf.WriteString(fmt.Sprintf("    %s: %s\n",
				f.scheme.HeaderKey.Sprint(key),
				f.scheme.HeaderValue.Sprint(headers[key])))
		}
	}

	if body != nil {
		buf.WriteString("  Body: ")
		switch b := body.(type) {
		case string:
			buf.WriteString(formatJSONString(b))
		case []byte:
			buf.WriteString(formatJSONString(string(b)))
		default:
			encoded, err := json.Marshal(b)
			if err != nil {
				buf.WriteString(fmt.Sprintf("%v", b))
			} else {
				buf.WriteString(formatJSONString(string(encoded)))
			}
		}
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatResponse formats a parsed response for display
func (f *Formatter) FormatResponse(resp *http.Response, elapsed time.Duration) string {
	var buf strings.Builder

	statusColor := f.scheme.StatusError
	if resp.IsSuccess() {
		statusColor = f.scheme.StatusOK
	} else if resp.IsRedirect() {
		statusColor = f.scheme.StatusWarn
	}

	buf.WriteString(fmt.Sprintf("◀ RESPONSE: %s (%dms)\n",
		statusColor.Sprintf("%d", resp.StatusCode),
		elapsed.Milliseconds()))

	if f.Verbose {
		headers := resp.Headers()
		if len(headers) > 0 {
			buf.WriteString("  Headers:\n")
			for _, key := range sortedKeys(headers) {
				buf.WriteString(fmt.Sprintf("    %s: %s\n",
					f.scheme.HeaderKey.Sprint(key),
					f.scheme.HeaderValue.Sprint(headers[key])))
			}
		}
	}

	if body, ok := resp.GetBody(); ok {
		buf.WriteString("  Body:\n")
		buf.WriteString(indentLines(formatJSONString(body), "    "))
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatError formats a categorized fetch error for display
func (f *Formatter) FormatError(err error) string {
	return fmt.Sprintf("%s %v\n", f.scheme.Error.Sprint("✗ ERROR:"), err)
}

// formatJSONString pretty-prints a string when it holds valid JSON;
// anything else is returned as-is.
func formatJSONString(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return s
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, []byte(trimmed), "", "  "); err != nil {
		return s
	}
	return pretty.String()
}

func indentLines(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
