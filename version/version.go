package version

// Populated at build time using -ldflags, for example
// -X github.com/keyraphi/led-spot/version.GitHash=$(git rev-parse HEAD)

var (
	// GitHash is the commit the binary was built from
	GitHash = "unknown"

	// BuildTime is the time at which the binary was built
	BuildTime = "unknown"
)
