package cli

import (
	"context"
	"crypto/tls"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/crisandolindesmanrumahorbo/rumbo-http-client/internal/config"
	http "github.com/crisandolindesmanrumahorbo/rumbo-http-client/internal/http"
	"github.com/crisandolindesmanrumahorbo/rumbo-http-client/internal/output"
	"github.com/crisandolindesmanrumahorbo/rumbo-http-client/pkg/jsonpath"
	"github.com/crisandolindesmanrumahorbo/rumbo-http-client/pkg/jsonschema"
)

// requestOptions collects everything a get/post invocation needs,
// merged from flags and an optional config profile. Explicit flags win
// over profile values.
type requestOptions struct {
	headers   map[string]string
	userAgent string
	insecure  bool
	timeout   time.Duration
	verbose   bool
	noColor   bool
	format    output.OutputFormat
	extract   string
	schema    string
}

// addRequestFlags registers the flags shared by the get and post commands
func addRequestFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("header", "H", []string{}, "HTTP headers to include (can be used multiple times)")
	cmd.Flags().StringP("user-agent", "A", "", "User-Agent header value")
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")
	cmd.Flags().DurationP("timeout", "t", 30*time.Second, "Request timeout (0 to disable)")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	cmd.Flags().BoolP("insecure", "k", false, "Skip TLS certificate verification")
	cmd.Flags().StringP("output", "o", "text", "Output format: text, json, or yaml")
	cmd.Flags().String("extract", "", "JSONPath expression to extract from the response body")
	cmd.Flags().String("schema", "", "JSON Schema file to validate the response body against")
	cmd.Flags().String("config", "", "Path to a YAML profile")
}

// resolveOptions merges command flags with the profile named by --config
func resolveOptions(cmd *cobra.Command) (*requestOptions, error) {
	headers, _ := cmd.Flags().GetStringArray("header")
	userAgent, _ := cmd.Flags().GetString("user-agent")
	verbose, _ := cmd.Flags().GetBool("verbose")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	noColor, _ := cmd.Flags().GetBool("no-color")
	insecure, _ := cmd.Flags().GetBool("insecure")
	formatName, _ := cmd.Flags().GetString("output")
	extract, _ := cmd.Flags().GetString("extract")
	schema, _ := cmd.Flags().GetString("schema")
	configPath, _ := cmd.Flags().GetString("config")

	opts := &requestOptions{
		headers:   make(map[string]string),
		userAgent: userAgent,
		insecure:  insecure,
		timeout:   timeout,
		verbose:   verbose,
		noColor:   noColor,
		extract:   extract,
		schema:    schema,
	}

	if configPath != "" {
		profile, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		for key, value := range profile.Headers {
			opts.headers[key] = value
		}
		if opts.userAgent == "" {
			opts.userAgent = profile.UserAgent
		}
		if profile.Insecure {
			opts.insecure = true
		}
		if !cmd.Flags().Changed("timeout") && profile.Timeout != "" {
			opts.timeout = profile.TimeoutDuration()
		}
		if !cmd.Flags().Changed("output") && profile.Output != "" {
			formatName = profile.Output
		}
	}

	format, err := output.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}
	opts.format = format

	// -H flags override profile headers of the same name.
	for _, header := range headers {
		key, value, ok := strings.Cut(header, ":")
		if !ok {
			return nil, fmt.Errorf("malformed header %q, want 'Name: value'", header)
		}
		opts.headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	return opts, nil
}

func (o *requestOptions) newClient() *http.Client {
	clientOpts := []http.ClientOption{}
	if o.userAgent != "" {
		clientOpts = append(clientOpts, http.WithUserAgent(o.userAgent))
	}
	for key, value := range o.headers {
		clientOpts = append(clientOpts, http.WithHeader(key, value))
	}
	if o.insecure {
		clientOpts = append(clientOpts, http.WithTLSConfig(&tls.Config{InsecureSkipVerify: true}))
	}
	return http.NewClient(clientOpts...)
}

func (o *requestOptions) context() (context.Context, context.CancelFunc) {
	if o.timeout > 0 {
		return context.WithTimeout(context.Background(), o.timeout)
	}
	return context.Background(), func() {}
}

// runRequest performs one transaction and renders the result
func runRequest(cmd *cobra.Command, method http.Method, url string, body interface{}) error {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	client := opts.newClient()
	ctx, cancel := opts.context()
	defer cancel()

	formatter := output.NewFormatter(opts.verbose, opts.noColor)
	if opts.format == output.FormatText {
		fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRequest(method, url, opts.headers, body))
	}

	start := time.Now()
	resp, err := client.Fetch(ctx, method, url, body)
	elapsed := time.Since(start)

	if opts.format != output.FormatText {
		tx := output.NewTransaction(method, url, opts.headers, body, resp, elapsed, err)
		rendered, marshalErr := tx.Marshal(opts.format)
		if marshalErr != nil {
			return marshalErr
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return err
	}

	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), formatter.FormatError(err))
		cmd.SilenceErrors = true
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatResponse(resp, elapsed))

	return postProcess(cmd, opts, resp)
}

// postProcess applies --extract and --schema to a successful response
func postProcess(cmd *cobra.Command, opts *requestOptions, resp *http.Response) error {
	if opts.extract == "" && opts.schema == "" {
		return nil
	}

	body, ok := resp.GetBody()
	if !ok {
		return fmt.Errorf("response has no body to inspect")
	}

	if opts.extract != "" {
		value, err := jsonpath.Extract(body, opts.extract)
		if err != nil {
			return fmt.Errorf("extracting %q: %w", opts.extract, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
	}

	if opts.schema != "" {
		schemaData, err := os.ReadFile(opts.schema)
		if err != nil {
			return fmt.Errorf("reading schema file: %w", err)
		}

		valid, details := jsonschema.ValidateWithErrors(body, string(schemaData))
		if !valid {
			for _, detail := range details {
				fmt.Fprintln(cmd.ErrOrStderr(), detail)
			}
			return fmt.Errorf("response body does not match schema %s", opts.schema)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "schema: valid")
	}

	return nil
}
