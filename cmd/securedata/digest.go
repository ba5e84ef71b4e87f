package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-secure-data/internal/crypto"
)

func newDigestCmd() *cobra.Command {
	var alg string

	cmd := &cobra.Command{
		Use:   "digest [text]",
		Short: "Print the hex digest of text or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			algorithm, ok := crypto.ParseDigestAlgorithm(alg)
			if !ok {
				return fmt.Errorf("unknown digest algorithm %q", alg)
			}

			var text string
			if len(args) == 1 {
				text = args[0]
			} else {
				data, err := readInput(cmd, "-")
				if err != nil {
					return err
				}
				text = strings.TrimSuffix(string(data), "\n")
			}

			sum, err := crypto.Digest(text, algorithm)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sum)
			return nil
		},
	}
	cmd.Flags().StringVar(&alg, "alg", "sha256", "md5, sha1, sha256, sha384 or sha512")

	return cmd
}
