// Package buildinfo carries release metadata stamped in at link time:
//
//	go build -ldflags "-X github.com/inab-dev/inab/internal/buildinfo.Version=v1.2.0"
package buildinfo

var (
	// Version is the release tag.
	Version = "dev"
	// Commit is the source revision.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)
