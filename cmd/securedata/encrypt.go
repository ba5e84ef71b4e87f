package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-secure-data/internal/crypto"
)

type fileArgs struct {
	in  string
	out string
}

func (f *fileArgs) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.in, "in", "i", "-", "input file, - for stdin")
	cmd.Flags().StringVarP(&f.out, "out", "o", "-", "output file, - for stdout")
}

func newEncryptCmd(a *app) *cobra.Command {
	var files fileArgs

	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Seal a file into an envelope",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transform(cmd, files, crypto.Codec.Encrypt)
		},
	}
	files.register(cmd)

	return cmd
}

func newDecryptCmd(a *app) *cobra.Command {
	var files fileArgs

	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Open an envelope produced by encrypt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transform(cmd, files, crypto.Codec.Decrypt)
		},
	}
	files.register(cmd)

	return cmd
}

func (a *app) transform(cmd *cobra.Command, files fileArgs, fn func(crypto.Codec, []byte, string) ([]byte, error)) error {
	codec, err := a.codec()
	if err != nil {
		return err
	}

	input, err := readInput(cmd, files.in)
	if err != nil {
		return err
	}

	password, err := a.password(cmd)
	if err != nil {
		return err
	}

	output, err := fn(codec, input, password)
	if err != nil {
		a.logger.Err(err).Str("func", "transform").Str("command", cmd.Name()).Str("in", files.in).Send()
		return err
	}

	return writeOutput(cmd, files.out, output)
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" || path == "" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "-" || path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
