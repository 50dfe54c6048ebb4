// Package repo builds a catalog from a local SlackBuilds repository.
//
// The repository index (SLACKBUILDS.TXT, optionally gzip or xz compressed)
// supplies names, categories, versions and requirements. The package log
// directory supplies installation state. Load merges both and decides which
// installed packages are upgradable.
package repo
