package version

import (
	"fmt"
	"runtime"
)

// Set with -ldflags at build time.
var (
	Version   = "dev"
	GitCommit string
)

func String() string {
	commit := GitCommit
	if commit == "" {
		commit = "unknown"
	}
	return fmt.Sprintf("authd %s (%s) %s %s/%s", Version, commit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
