// Package buildinfo exposes the version metadata stamped at link time.
package buildinfo

import (
	"fmt"
	"io"
)

var (
	buildVersion = "N/A"
	buildDate    = "N/A"
	buildCommit  = "N/A"
)

// PrintBuildData writes the build version, date and commit to w.
// The values are injected with -ldflags "-X ...buildinfo.buildVersion=v1.0.0".
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", buildVersion)
	fmt.Fprintf(w, "Build date: %s\n", buildDate)
	fmt.Fprintf(w, "Build commit: %s\n", buildCommit)
}

// Version returns the stamped build version.
func Version() string {
	return buildVersion
}
