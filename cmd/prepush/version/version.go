// Package version reports the build's version, commit and build time.
package version

import (
	"context"
	"runtime/debug"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/yaklabco/prepush/pkg/ui"
)

// Version is the CLI version. It can be overridden at build time via:
//
//	-ldflags "-X github.com/yaklabco/prepush/cmd/prepush/version.Version=v0.0.0"
//
// If left as "dev", the version is taken from Go build info when available.
var Version = "dev" //nolint:gochecknoglobals // Populated by goreleaser ldflags.

// Commit is the git commit hash, overridable via ldflags.
var Commit = "" //nolint:gochecknoglobals // Populated by goreleaser ldflags.

// BuildDate is the RFC3339 timestamp of the build, overridable via ldflags.
var BuildDate = "" //nolint:gochecknoglobals // Populated by goreleaser ldflags.

// EffectiveVersion returns the best-effort version string for the binary.
// Precedence:
//  1. Version from -ldflags, unless "dev" or empty.
//  2. Go build info `Main.Version` (set by `go install module@version`).
//  3. Go build info `vcs.revision`, with "-dirty" if `vcs.modified=true`.
//  4. "dev".
func EffectiveVersion(_ context.Context) string {
	v := strings.TrimSpace(Version)
	if v != "" && v != "dev" {
		return v
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok || bi == nil {
		return "dev"
	}
	if mv := strings.TrimSpace(bi.Main.Version); mv != "" && mv != "(devel)" {
		return mv
	}

	var rev, dirty string
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			if s.Value == "true" {
				dirty = "-dirty"
			}
		}
	}
	if rev != "" {
		return rev + dirty
	}
	return "dev"
}

// EffectiveCommit returns Commit if set, else the Go build info `vcs.revision`.
func EffectiveCommit(_ context.Context) string {
	if c := strings.TrimSpace(Commit); c != "" {
		return c
	}
	return buildSetting("vcs.revision")
}

// EffectiveBuildTime returns the build time parsed from BuildDate or the
// Go build info `vcs.time`.
func EffectiveBuildTime() (time.Time, bool) {
	for _, raw := range []string{strings.TrimSpace(BuildDate), buildSetting("vcs.time")} {
		if raw == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func buildSetting(key string) string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi == nil {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}

// OverallVersionString renders version, commit and build time joined by "-".
func OverallVersionString(ctx context.Context) string {
	parts := []string{EffectiveVersion(ctx)}
	if c := EffectiveCommit(ctx); c != "" {
		parts = append(parts, c)
	}
	if t, ok := EffectiveBuildTime(); ok {
		parts = append(parts, t.In(time.Local).Format(time.RFC3339))
	}
	return strings.Join(parts, "-")
}

// OverallVersionStringColorized renders OverallVersionString with fang-consistent colors.
func OverallVersionStringColorized(ctx context.Context) string {
	cs := ui.GetFangScheme()

	versionStyle := lipgloss.NewStyle().Foreground(cs.QuotedString)
	commitStyle := lipgloss.NewStyle().Foreground(cs.Program)
	timeStyle := lipgloss.NewStyle().Foreground(cs.Flag)
	sepStyle := lipgloss.NewStyle().Foreground(cs.Base)

	parts := []string{versionStyle.Render(EffectiveVersion(ctx))}
	if c := EffectiveCommit(ctx); c != "" {
		parts = append(parts, commitStyle.Render(c))
	}
	if t, ok := EffectiveBuildTime(); ok {
		parts = append(parts, timeStyle.Render(t.In(time.Local).Format(time.RFC3339)))
	}
	return strings.Join(parts, sepStyle.Render("-"))
}
