// Package build provides domain entities for build information.
package build

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Info holds build-time information injected via ldflags.
type Info struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
}

// Current fills the blanks in i from the embedded module build info.
func (i Info) Current() Info {
	if i.GoVersion == "" {
		i.GoVersion = runtime.Version()
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return i
	}
	if i.Version == "" || i.Version == "dev" {
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			i.Version = v
		}
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if i.Commit == "" {
				i.Commit = s.Value
			}
		case "vcs.time":
			if i.BuildDate == "" {
				i.BuildDate = s.Value
			}
		}
	}
	return i
}

// ShortCommit returns the first seven characters of the commit.
func (i Info) ShortCommit() string {
	if len(i.Commit) > 7 {
		return i.Commit[:7]
	}
	return i.Commit
}

func (i Info) String() string {
	version := i.Version
	if version == "" {
		version = "dev"
	}
	if c := i.ShortCommit(); c != "" {
		return fmt.Sprintf("%s (%s)", version, c)
	}
	return version
}

// Contributors returns the list of project contributors.
func Contributors() []string {
	return []string{"bnema"}
}

// RepoURL returns the GitHub repository URL.
func RepoURL() string {
	return "https://github.com/bnema/plugview"
}
