// Package version holds build metadata, set with -ldflags at release time:
//
//	go build -ldflags "-X github.com/msto63/spellgym/pkg/core/version.Version=1.2.0"
package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "0.1.0"
	GitCommit = "development"
	BuildDate = "unknown"
)

// Info is a snapshot of the build metadata
type Info struct {
	Version   string
	GitCommit string
	BuildDate string
	GoVersion string
	Platform  string
}

// Get returns the build metadata of the running binary
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// Short returns "v<version>", with the commit unless it is a development build
func (i Info) Short() string {
	if i.GitCommit == "" || i.GitCommit == "development" {
		return "v" + i.Version
	}
	commit := i.GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("v%s (%s)", i.Version, commit)
}
