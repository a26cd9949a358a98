// Package buildinfo holds the foodtree release stamp.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/foodtree/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/foodtree/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/foodtree/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/foodtree
package buildinfo

import "fmt"

// Set by ldflags; local builds keep the defaults.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the release stamp as reported by `foodtree --version` and the
// /healthz endpoint.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get returns the current release stamp.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// Template returns the cobra version template.
func Template() string {
	i := Get()
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", i.Version, i.Commit, i.Date)
}

// UserAgent is the Server header of HTTP responses.
func UserAgent() string {
	return "foodtree/" + Version
}
