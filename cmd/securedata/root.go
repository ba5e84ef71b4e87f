package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-secure-data/internal/config"
	"github.com/MKhiriev/go-secure-data/internal/crypto"
	"github.com/MKhiriev/go-secure-data/internal/logger"
	"github.com/MKhiriev/go-secure-data/internal/service"
	"github.com/MKhiriev/go-secure-data/models"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg    *config.StructuredConfig
	logger *logger.Logger

	// password overrides the environment and the terminal prompt in tests.
	password func(cmd *cobra.Command) (string, error)
}

func newRootCmd(build models.AppBuildInfo) *cobra.Command {
	a := &app{password: readPassword}

	root := &cobra.Command{
		Use:   "securedata",
		Short: "Password based encryption for files and JSON documents",
		Long: `securedata seals data in authenticated envelopes derived from a password.

Files are encrypted and decrypted directly. Documents are JSON objects kept
encrypted in a blob store (file, sqlite, postgres or a blobd server) and
edited key by key.

The password is read from SECUREDATA_PASSWORD or prompted for.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger.NewFileLogger("securedata", cfg.App.LogFile).WithLevel(cfg.App.LogLevel)
			return nil
		},
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newEncryptCmd(a),
		newDecryptCmd(a),
		newDocCmd(a),
		newDigestCmd(),
		newVersionCmd(build),
	)

	return root
}

func (a *app) codec() (crypto.Codec, error) {
	spec, err := a.cfg.Crypto.Spec()
	if err != nil {
		return nil, err
	}
	return crypto.NewCodec(spec), nil
}

// openRegistry opens the configured blob store and a registry over it. The
// returned close function closes both, registry first.
func (a *app) openRegistry(ctx context.Context) (*service.Registry, func() error, error) {
	codec, err := a.codec()
	if err != nil {
		return nil, nil, err
	}
	mode, err := a.cfg.Crypto.Mode()
	if err != nil {
		return nil, nil, err
	}

	blobs, err := service.NewBlobStore(ctx, a.cfg.Storage, a.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s storage: %w", a.cfg.Storage.Backend, err)
	}

	registry := service.NewRegistry(blobs,
		service.WithCodec(codec),
		service.WithLoadMode(mode),
		service.WithLogger(a.logger),
		service.WithSaveWorkers(a.cfg.Workers.SaveWorkers),
		service.WithAutosave(a.cfg.Workers.AutosaveInterval),
	)

	closeFn := func() error {
		err := registry.Close(ctx)
		if cerr := blobs.Close(); err == nil {
			err = cerr
		}
		return err
	}

	return registry, closeFn, nil
}
