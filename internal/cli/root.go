package cli

import (
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// NewRootCmd builds the rumbo command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "rumbo",
		Short:   "A minimal raw-socket HTTP client",
		Version: version,
		Long: `Rumbo is a minimal HTTP/1.1 client that issues single GET and POST
requests over raw TCP or TLS connections. Each invocation is one
self-contained transaction: connect, write the request, read until the
server closes the connection, parse, print.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.AddCommand(newGetCmd())
	root.AddCommand(newPostCmd())
	root.AddCommand(newBenchCmd())
	return root
}

// Execute runs the command tree and returns its error, if any.
// This is called by main.main().
func Execute() error {
	return NewRootCmd().Execute()
}
