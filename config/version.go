package config

// Build information, set with -ldflags "-X github.com/boolean-maybe/mapfilter/config.Version=..."
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)
