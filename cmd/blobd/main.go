// Command blobd serves blobs over HTTP from one of the securedata storage
// backends, so that several securedata clients can share documents.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/MKhiriev/go-secure-data/internal/config"
	"github.com/MKhiriev/go-secure-data/internal/handler"
	"github.com/MKhiriev/go-secure-data/internal/logger"
	"github.com/MKhiriev/go-secure-data/internal/server"
	"github.com/MKhiriev/go-secure-data/internal/service"
	"github.com/MKhiriev/go-secure-data/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	fs := pflag.NewFlagSet("blobd", pflag.ExitOnError)
	config.RegisterFlags(fs)
	issueFor := fs.String("issue-token", "", "print a bearer token for the named client and exit")
	_ = fs.Parse(os.Args[1:])

	log := logger.NewLogger("blobd")
	cfg, err := config.Load(fs)
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = build.BuildVersion()
	}
	log = log.WithLevel(cfg.App.LogLevel)

	log.Debug().Str("backend", cfg.Storage.Backend).Str("address", cfg.Server.HTTPAddress).Msg("received configs")

	ctx := log.WithContext(context.Background())

	if *issueFor != "" {
		// stdout carries the token, keep info logs off it
		quiet := log.WithLevel("error")
		if err = issueToken(quiet.WithContext(ctx), cfg.Server, *issueFor, quiet); err != nil {
			log.Fatal().Err(err).Msg("error issuing token")
		}
		return
	}

	printBuildInfo(build)

	blobs, err := service.NewBlobStore(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating blob store")
	}
	defer blobs.Close()

	services, err := service.NewServices(blobs, *cfg, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// issueToken prints a token for client as JSON. It needs the sign key only,
// no storage.
func issueToken(ctx context.Context, cfg config.Server, client string, log *logger.Logger) error {
	auth := service.NewAuthService(cfg, log)
	if !auth.Enabled() {
		return errors.New("token sign key is not configured")
	}

	token, err := auth.CreateToken(ctx, client)
	if err != nil {
		return err
	}

	resp := models.TokenResponse{
		Client: token.Client,
		Token:  token.SignedString,
	}
	if token.ExpiresAt != nil {
		resp.ExpiresAt = token.ExpiresAt.Time.UTC().Format(time.RFC3339)
	}

	return json.NewEncoder(os.Stdout).Encode(resp)
}

func printBuildInfo(build models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", build.BuildVersion())
	fmt.Printf("Build date: %s\n", build.BuildDate())
	fmt.Printf("Build commit: %s\n", build.BuildCommit())
}
