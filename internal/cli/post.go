package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	http "github.com/crisandolindesmanrumahorbo/rumbo-http-client/internal/http"
)

func newPostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post URL",
		Short: "Make a POST request with a JSON body to the specified URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := resolveBody(cmd)
			if err != nil {
				return err
			}
			return runRequest(cmd, http.MethodPost, args[0], body)
		},
	}

	addRequestFlags(cmd)
	cmd.Flags().StringP("data", "d", "", "JSON data to send in the request body")
	cmd.Flags().StringP("file", "f", "", "File whose contents become the request body")
	return cmd
}

// resolveBody picks the request body from --data or --file. Bodies are
// sent as JSON text; inline data is checked for well-formedness first.
func resolveBody(cmd *cobra.Command) (interface{}, error) {
	data, _ := cmd.Flags().GetString("data")
	file, _ := cmd.Flags().GetString("file")

	if data != "" && file != "" {
		return nil, fmt.Errorf("--data and --file are mutually exclusive")
	}

	if file != "" {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading body file: %w", err)
		}
		data = string(content)
	}

	if data == "" {
		return nil, nil
	}

	if !json.Valid([]byte(data)) {
		// Bare words are still useful bodies; send them as a JSON string.
		return json.RawMessage(quoteAsJSON(data)), nil
	}
	return json.RawMessage(data), nil
}

func quoteAsJSON(s string) []byte {
	encoded, _ := json.Marshal(strings.TrimSpace(s))
	return encoded
}
