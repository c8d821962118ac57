package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"donation-relay/internal/domain"
	"donation-relay/internal/proxyclient"
	"donation-relay/internal/relay"
)

func newMessageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "message <destination>",
		Short: "Print the message a wallet must sign and its hex encoding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg := domain.SigningMessage(args[0])
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Message: %s\n", msg)
			fmt.Fprintf(out, "Hex:     %s\n", domain.EncodeMessageHex(msg))
			return nil
		},
	}
}

func newCurlCmd(opts *rootOptions) *cobra.Command {
	var payloadPath, origin string
	cmd := &cobra.Command{
		Use:   "curl",
		Short: "Render the upstream donation call as a curl command",
		RunE: func(cmd *cobra.Command, args []string) error {
			claim, err := loadClaim(cmd.InOrStdin(), payloadPath, origin)
			if err != nil {
				return err
			}
			svc, err := relay.NewService(relay.Options{BaseURL: opts.apiBase, Logger: &opts.logger})
			if err != nil {
				return err
			}
			line, err := svc.CurlCommand(claim)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}
	cmd.Flags().StringVarP(&payloadPath, "payload", "p", "-", "Signature payload file, - for stdin")
	cmd.Flags().StringVar(&origin, "origin", "", "Origin address, overrides original_address")
	return cmd
}

func newSubmitCmd(opts *rootOptions) *cobra.Command {
	var payloadPath, origin string
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a signed payload through the relay",
		RunE: func(cmd *cobra.Command, args []string) error {
			claim, err := loadClaim(cmd.InOrStdin(), payloadPath, origin)
			if err != nil {
				return err
			}
			client, err := proxyclient.New(proxyclient.Options{ProxyURL: opts.proxyURL, Logger: &opts.logger})
			if err != nil {
				return err
			}
			text, err := client.PostDonation(cmd.Context(), claim)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), proxyclient.Pretty(text))
			return nil
		},
	}
	cmd.Flags().StringVarP(&payloadPath, "payload", "p", "-", "Signature payload file, - for stdin")
	cmd.Flags().StringVar(&origin, "origin", "", "Origin address, overrides original_address")
	return cmd
}

// loadClaim reads a signature payload and turns it into a complete claim.
func loadClaim(stdin io.Reader, path, origin string) (domain.DonationClaim, error) {
	var (
		raw []byte
		err error
	)
	if path == "" || path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return domain.DonationClaim{}, fmt.Errorf("read payload: %w", err)
	}

	payload, err := domain.ParseSignaturePayload(raw)
	if err != nil {
		return domain.DonationClaim{}, err
	}
	claim := payload.Claim(origin)
	if claim.Origin == "" {
		return domain.DonationClaim{}, errors.New("origin address is required: pass --origin or include original_address")
	}
	return claim, nil
}
