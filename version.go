package sitetrans

// Application identity, shown by the CLI and sent as the User-Agent of
// provider requests.
const (
	Name        = "sitetrans"
	Description = "Static site translation pipeline with caching and locale annotation"
	Repository  = "https://github.com/ZaguanLabs/sitetrans"
	License     = "MIT"

	// Version is the semantic version. Release builds override it:
	//
	//	go build -ldflags "-X github.com/ZaguanLabs/sitetrans.Version=1.2.0"
	Version = "0.1.0"
)

// Build metadata stamped via ldflags; "unknown" when built without them.
var (
	GitCommit = "unknown"
	GitBranch = "unknown"
	BuildDate = "unknown"
)

// FullVersion returns the version, suffixed with the short commit hash when
// one was stamped in.
func FullVersion() string {
	if GitCommit == "" || GitCommit == "unknown" {
		return Version
	}
	commit := GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return Version + "+" + commit
}

// UserAgent identifies this tool to translation services.
func UserAgent() string {
	return Name + "/" + Version
}
