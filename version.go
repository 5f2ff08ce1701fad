package tokenswap

import "fmt"

// Release numbers of the swap application. Suffix is empty for tagged
// releases.
const (
	Maj    = 0
	Min    = 1
	Fix    = 0
	Suffix = "-dev"
)

// GitCommit can be set at link time, for example
//
//	go build -ldflags "-X github.com/iov-one/tokenswap.GitCommit=$(git rev-parse --short HEAD)"
var GitCommit = ""

// Version returns the release number, followed by the commit when known.
func Version() string {
	v := fmt.Sprintf("v%d.%d.%d%s", Maj, Min, Fix, Suffix)
	if GitCommit == "" {
		return v
	}
	return v + " " + GitCommit
}
