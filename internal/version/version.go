// Package version holds the build version reported in logs and startup output.
package version

var (
	// Version is the semver of the current build, overridable at link time.
	Version = "0.2.0"
	// DevVersion is the version suffix used for non-release builds.
	DevVersion = "dev"
)

func GetCurrentVersion(mode string) string {
	if mode == "prod" {
		return Version
	}
	return Version + "-" + DevVersion
}
