package version

import (
	"runtime"
	"runtime/debug"
)

// Set at build time with -ldflags "-X file-aggregator/version.BuildVersion=...".
var (
	BuildVersion = "dev"
	GitSHA       = ""
)

type Info struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	GitSHA    string `json:"git_sha,omitempty"`
	GoVersion string `json:"go_version"`
}

// Get describes the running binary. GitSHA falls back to the VCS revision
// recorded by the Go toolchain.
func Get(service string) Info {
	sha := GitSHA
	if sha == "" {
		sha = vcsRevision()
	}
	return Info{
		Service:   service,
		Version:   BuildVersion,
		GitSHA:    sha,
		GoVersion: runtime.Version(),
	}
}

func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			return setting.Value
		}
	}
	return ""
}
