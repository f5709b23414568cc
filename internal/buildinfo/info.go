// Package buildinfo holds the values reported by `siklus --version`.
//
//	go build -ldflags "-X github.com/cleared-dev/siklus/internal/buildinfo.Version=v0.3.0" ./cmd/siklus
package buildinfo

// Set via -ldflags -X at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
