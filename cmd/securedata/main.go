// Command securedata encrypts files and edits password-protected JSON
// documents kept in any of the supported blob backends.
package main

import (
	"fmt"
	"os"

	"github.com/MKhiriev/go-secure-data/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	root := newRootCmd(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
