// Package version holds the version of Gossamer.
package version

// Flag tags pre-release builds, as in 0.1.0-rc1. Release builds leave it
// empty.
const Flag = ""

var (
	// Version is reported by the version command and the build_info metric.
	Version = "0.1.0"

	// GitCommit is stamped at build time:
	//
	//	go build -ldflags "-X github.com/mosaicnetworks/gossamer/src/version.GitCommit=$(git rev-parse HEAD)"
	GitCommit string
)

func init() {
	if Flag != "" {
		Version += "-" + Flag
	}

	if len(GitCommit) >= 8 {
		Version += "-" + GitCommit[:8]
	}
}
