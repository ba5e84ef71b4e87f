package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-secure-data/models"
)

func newVersionCmd(build models.AppBuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display the build version",
		Args:  cobra.NoArgs,
		// version needs no configuration
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Build version: %s\n", build.BuildVersion())
			fmt.Fprintf(out, "Build date: %s\n", build.BuildDate())
			fmt.Fprintf(out, "Build commit: %s\n", build.BuildCommit())
		},
	}
}
