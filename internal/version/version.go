package version

// Set at build time with -ldflags "-X github.com/Norgate-AV/scriptbin/internal/version.Version=..."
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// String renders the version line shown by --version
func String() string {
	return Version + " (" + Commit + ") " + BuildTime
}
