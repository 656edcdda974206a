package version

// set via ldflags on release builds
var (
	Version   = "dev"
	GitCommit = ""
)

// FullVersion is shown by the --version flag.
var FullVersion = func() string {
	if GitCommit == "" {
		return Version
	}
	return Version + " (" + GitCommit + ")"
}()
