package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"donation-relay/internal/infra"
)

type rootOptions struct {
	verbose  bool
	proxyURL string
	apiBase  string
	logger   infra.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "donatectl",
		Short: "Build and submit Scavenger donation claims",
		Long: `donatectl works with the donation relay from the command line.

It prints the exact message a wallet has to sign, renders the upstream call
as a curl command, and submits signed payloads through a running relay.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.logger = zerolog.New(io.Discard)
			if opts.verbose {
				opts.logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
					Level(zerolog.DebugLevel).
					With().
					Timestamp().
					Logger()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&opts.proxyURL, "proxy", envOr("PROXY_URL", "http://localhost:4000"), "Relay base URL")
	root.PersistentFlags().StringVar(&opts.apiBase, "api-base", envOr("API_BASE", "https://scavenger.prod.gd.midnighttge.io"), "Upstream API base URL")
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		newMessageCmd(),
		newCurlCmd(opts),
		newSubmitCmd(opts),
	)
	return root
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
