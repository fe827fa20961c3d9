// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

const notAvailable = "N/A"

// AppBuildInfo carries immutable build-time metadata embedded into the tmc
// binary by linker flags. Missing values read as "N/A".
type AppBuildInfo struct {
	version string
	date    string
	commit  string
}

// NewAppBuildInfo constructs [AppBuildInfo] from the provided build metadata.
func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{
		version: orNotAvailable(version),
		date:    orNotAvailable(date),
		commit:  orNotAvailable(commit),
	}
}

// Version returns the semantic version string of the build.
func (a AppBuildInfo) Version() string { return orNotAvailable(a.version) }

// Date returns the build timestamp string.
func (a AppBuildInfo) Date() string { return orNotAvailable(a.date) }

// Commit returns the source-control commit hash used for the build.
func (a AppBuildInfo) Commit() string { return orNotAvailable(a.commit) }

// String renders the three values one per line, as printed by tmc version.
func (a AppBuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s", a.Version(), a.Date(), a.Commit())
}

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
