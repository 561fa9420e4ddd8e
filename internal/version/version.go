// Package version reports build metadata for the binaries.
package version

import goversion "github.com/caarlos0/go-version"

// Set with -ldflags "-X github.com/unclebandit/omikuji-web/internal/version.Version=x.y.z"
var (
	Version   = ""
	Commit    = ""
	TreeState = ""
	Date      = ""
	BuiltBy   = ""
)

const website = "https://github.com/unclebandit/omikuji-web"

func Info(app, description string) goversion.Info {
	return goversion.GetVersionInfo(
		goversion.WithAppDetails(app, description, website),
		func(i *goversion.Info) {
			if Commit != "" {
				i.GitCommit = Commit
			}
			if Version != "" {
				i.GitVersion = Version
			}
			if TreeState != "" {
				i.GitTreeState = TreeState
			}
			if Date != "" {
				i.BuildDate = Date
			}
			if BuiltBy != "" {
				i.BuiltBy = BuiltBy
			}
		},
	)
}
