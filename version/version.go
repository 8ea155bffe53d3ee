package version

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"sync"
)

// Set with -ldflags -X. Empty values fall back to the build info recorded by
// the Go toolchain.
var (
	Version string
	Commit  string
	Date    string
)

// Name is the program name reported by every classver binary.
const Name = "classver"

// Info describes the running build.
type Info struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	Date      string `json:"date,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
	GoVersion string `json:"go_version"`
}

var info = sync.OnceValue(func() Info {
	i := Info{
		Name:      Name,
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		if i.Version == "" {
			i.Version = "development"
		}
		return i
	}
	if i.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.Version = bi.Main.Version
	}
	if i.Version == "" {
		i.Version = "development"
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if i.Commit == "" {
				i.Commit = s.Value
			}
		case "vcs.time":
			if i.Date == "" {
				i.Date = s.Value
			}
		case "vcs.modified":
			i.Modified = s.Value == "true"
		}
	}
	return i
})

// GetInfo returns the build information, resolved once per process.
func GetInfo() Info {
	return info()
}

// GetFullVersion returns the version with a short commit and the build date
// when they are known, for example "v1.2.0 (3f2a9c1, built 2026-01-01T00:00:00Z)".
func GetFullVersion() string {
	return GetInfo().String()
}

func (i Info) String() string {
	if i.Commit == "" {
		return i.Version
	}
	commit := i.Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	if i.Modified {
		commit += "-dirty"
	}
	if i.Date == "" {
		return fmt.Sprintf("%s (%s)", i.Version, commit)
	}
	return fmt.Sprintf("%s (%s, built %s)", i.Version, commit, i.Date)
}

// PrintVersion writes the same fields as the JSON form, one per line.
func PrintVersion(w io.Writer) {
	i := GetInfo()
	fmt.Fprintf(w, "%s %s\n", i.Name, i.Version)
	if i.Commit != "" {
		fmt.Fprintf(w, "commit:     %s\n", i.Commit)
	}
	if i.Date != "" {
		fmt.Fprintf(w, "built:      %s\n", i.Date)
	}
	if i.Modified {
		fmt.Fprintln(w, "modified:   true")
	}
	fmt.Fprintf(w, "go version: %s\n", i.GoVersion)
}
