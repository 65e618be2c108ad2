package server

import (
	"io/fs"
	"strconv"
	"strings"
)

// Pattern describes the versioned filename shape <prefix><integer><suffix>,
// like index17.html. A build process that emits numbered snapshots bumps the
// integer on every run; the highest one is the file worth serving.
type Pattern struct {
	Prefix string
	Suffix string
}

// Glob returns the pattern in a human-readable form, e.g. "index*.html".
func (p Pattern) Glob() string {
	return p.Prefix + "*" + p.Suffix
}

// Version extracts the version number embedded in name. It reports false for
// any name that does not match the pattern exactly: a missing prefix or
// suffix, an empty digit run, or any non-digit character between the two.
// Digit runs too large for an int are rejected the same way rather than
// treated as an error.
func (p Pattern) Version(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, p.Prefix)
	if !ok {
		return 0, false
	}
	digits, ok := strings.CutSuffix(rest, p.Suffix)
	if !ok || digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SelectLatest returns the file with the highest version number among the
// entries matching pat. The comparison is numeric, so index10.html beats
// index9.html. The boolean reports whether any entry matched at all; a
// listing with no candidates is not an error, the caller decides what that
// means. When several entries share the maximum, the first one in listing
// order wins.
func SelectLatest(entries []fs.DirEntry, pat Pattern) (string, bool) {
	best := ""
	bestVersion := -1

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		v, ok := pat.Version(entry.Name())
		if !ok {
			continue
		}
		if v > bestVersion {
			best = entry.Name()
			bestVersion = v
		}
	}

	return best, bestVersion >= 0
}
