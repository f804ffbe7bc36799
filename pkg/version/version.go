// Package version identifies the running backend build. The commit shows up in
// the order platform User-Agent header and on GET /health.
package version

import "runtime/debug"

// AppName prefixes every version string.
const AppName = "thunder-ai"

// commitLength is how much of the revision hash is reported.
const commitLength = 8

// gitCommitOverride is injected with
// -ldflags "-X github.com/thundertactical/thunder-ai-backend/pkg/version.gitCommitOverride=<sha>"
// for images built without a .git directory.
var gitCommitOverride string

// GitCommit is the abbreviated revision, or "dev" for test and local builds.
var GitCommit = resolveCommit(gitCommitOverride, debug.ReadBuildInfo)

func resolveCommit(override string, readInfo func() (*debug.BuildInfo, bool)) string {
	if override != "" {
		return shorten(override)
	}
	info, ok := readInfo()
	if !ok {
		return "dev"
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			return shorten(s.Value)
		}
	}
	return "dev"
}

func shorten(rev string) string {
	if len(rev) > commitLength {
		return rev[:commitLength]
	}
	return rev
}

// Full returns the User-Agent value sent to BigCommerce, e.g. "thunder-ai/a3f8c2d1".
func Full() string {
	return AppName + "/" + GitCommit
}
