package cli

import (
	"github.com/spf13/cobra"

	http "github.com/crisandolindesmanrumahorbo/rumbo-http-client/internal/http"
)

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get URL",
		Short: "Make a GET request to the specified URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, http.MethodGet, args[0], nil)
		},
	}

	addRequestFlags(cmd)
	return cmd
}
