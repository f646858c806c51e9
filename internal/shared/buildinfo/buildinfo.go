// Package buildinfo exposes the version stamped into the binaries at link time.
package buildinfo

import goversion "github.com/caarlos0/go-version"

const (
	Application = "go-tenure"
	Description = "Employee tenure and salary uplift records"
	WebSite     = "https://github.com/go-tenure/go-tenure"
)

// Set with -ldflags "-X go-tenure/internal/shared/buildinfo.version=..." and friends.
var (
	version   = ""
	commit    = ""
	date      = ""
	builtBy   = ""
	treeState = ""
)

// Get returns the build information, preferring link-time values over what
// the Go toolchain recorded in the binary.
func Get() goversion.Info {
	return goversion.GetVersionInfo(
		goversion.WithAppDetails(Application, Description, WebSite),
		func(i *goversion.Info) {
			if commit != "" {
				i.GitCommit = commit
			}
			if version != "" {
				i.GitVersion = version
			}
			if treeState != "" {
				i.GitTreeState = treeState
			}
			if date != "" {
				i.BuildDate = date
			}
			if builtBy != "" {
				i.BuiltBy = builtBy
			}
		},
	)
}
