package repo

import "github.com/Masterminds/semver/v3"

// IsNewer reports whether available should replace installed. Versions that
// both parse as semantic versions are compared as such; anything else is
// upgradable whenever the strings differ.
func IsNewer(installed, available string) bool {
	if installed == "" || available == "" {
		return false
	}

	iv, ierr := semver.NewVersion(installed)
	av, aerr := semver.NewVersion(available)
	if ierr == nil && aerr == nil {
		return av.GreaterThan(iv)
	}
	return installed != available
}
