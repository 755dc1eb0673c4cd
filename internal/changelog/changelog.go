// Package changelog reads the release notes shipped inside the binary and
// picks the entries a user has not seen yet.
package changelog

import (
	_ "embed"
	"regexp"
	"strconv"
	"strings"
)

//go:embed CHANGELOG.md
var Content string

// Entry is one released version
type Entry struct {
	Version string
	Date    string
	Changes []string
}

// versionRegex matches "## v0.3.0 (2025-03-01)" and "## 0.3.0"
var versionRegex = regexp.MustCompile(`^##\s+v?(\d+(?:\.\d+){0,2})(?:\s+\(([^)]+)\))?`)

// Parse extracts entries from markdown, newest first as written. Bullets
// continued on an indented line are joined to the bullet above.
func Parse(content string) []Entry {
	var entries []Entry
	var current *Entry

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)

		if matches := versionRegex.FindStringSubmatch(line); matches != nil {
			if current != nil {
				entries = append(entries, *current)
			}
			current = &Entry{Version: matches[1], Date: matches[2], Changes: []string{}}
			continue
		}
		if current == nil || line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			current.Changes = append(current.Changes, strings.TrimSpace(line[2:]))
		case raw != line && len(current.Changes) > 0:
			last := len(current.Changes) - 1
			current.Changes[last] += " " + line
		}
	}

	if current != nil {
		entries = append(entries, *current)
	}
	return entries
}

// Since returns the entries newer than lastSeen, keeping their order.
// An empty lastSeen means everything is new.
func Since(lastSeen string, entries []Entry) []Entry {
	if lastSeen == "" {
		return entries
	}
	var result []Entry
	for _, e := range entries {
		if CompareVersions(e.Version, lastSeen) > 0 {
			result = append(result, e)
		}
	}
	return result
}

// IsRelease reports whether v looks like a tagged release rather than a
// development build such as "dev" or "0.3.0-rc.1".
func IsRelease(v string) bool {
	v = strings.TrimPrefix(v, "v")
	if v == "" || strings.ContainsAny(v, "-+") {
		return false
	}
	for _, p := range strings.Split(v, ".") {
		if _, err := strconv.Atoi(p); err != nil {
			return false
		}
	}
	return true
}

// CompareVersions compares two dotted versions, ignoring any pre-release
// suffix. Returns -1 if a < b, 0 if a == b, 1 if a > b.
func CompareVersions(a, b string) int {
	aParts := parseVersion(a)
	bParts := parseVersion(b)
	for i := range aParts {
		if aParts[i] != bParts[i] {
			if aParts[i] < bParts[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// parseVersion extracts [major, minor, patch]; missing or invalid parts are 0
func parseVersion(v string) [3]int {
	v = strings.TrimPrefix(v, "v")
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		v = v[:i]
	}
	var result [3]int
	for i, p := range strings.SplitN(v, ".", 3) {
		result[i], _ = strconv.Atoi(p)
	}
	return result
}
