package server

import (
	"io/fs"
	"testing"
)

// dirEntry is a minimal fs.DirEntry for listings assembled by hand, so tests
// can control listing order, which real directory reads always sort.
type dirEntry struct {
	name string
	dir  bool
}

func (e dirEntry) Name() string               { return e.name }
func (e dirEntry) IsDir() bool                { return e.dir }
func (e dirEntry) Type() fs.FileMode          { return 0 }
func (e dirEntry) Info() (fs.FileInfo, error) { return nil, fs.ErrInvalid }

func listing(names ...string) []fs.DirEntry {
	entries := make([]fs.DirEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, dirEntry{name: name})
	}
	return entries
}

var indexHTML = Pattern{Prefix: "index", Suffix: ".html"}

func TestPatternVersion(t *testing.T) {
	tests := []struct {
		name    string
		want    int
		matches bool
	}{
		{"index3.html", 3, true},
		{"index10.html", 10, true},
		{"index007.html", 7, true},
		{"index0.html", 0, true},
		{"index.html", 0, false},         // no digits
		{"index1.htmlx", 0, false},       // trailing garbage
		{"indexA.html", 0, false},        // not a number
		{"index1a2.html", 0, false},      // digits interrupted
		{"xindex1.html", 0, false},       // leading garbage
		{"index1.htm", 0, false},         // wrong suffix
		{"1.html", 0, false},             // missing prefix
		{"index-1.html", 0, false},       // sign is not a digit
		{"index99999999999999999999999999.html", 0, false}, // overflows int
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := indexHTML.Version(tt.name)
			if ok != tt.matches {
				t.Fatalf("Version(%q) matched=%t, want %t", tt.name, ok, tt.matches)
			}
			if ok && got != tt.want {
				t.Errorf("Version(%q) = %d, want %d", tt.name, got, tt.want)
			}
		})
	}
}

func TestPatternGlob(t *testing.T) {
	if got := indexHTML.Glob(); got != "index*.html" {
		t.Errorf("Glob() = %q, want %q", got, "index*.html")
	}
}

func TestSelectLatest(t *testing.T) {
	tests := []struct {
		name    string
		entries []fs.DirEntry
		want    string
		ok      bool
	}{
		{
			name:    "numeric not lexicographic",
			entries: listing("index9.html", "index10.html"),
			want:    "index10.html",
			ok:      true,
		},
		{
			name:    "non-matching names ignored",
			entries: listing("index1.htmlx", "indexA.html", "index2.html"),
			want:    "index2.html",
			ok:      true,
		},
		{
			name:    "empty listing",
			entries: nil,
			ok:      false,
		},
		{
			name:    "nothing matches",
			entries: listing("readme.md", "style.css", "index.html"),
			ok:      false,
		},
		{
			name:    "single candidate",
			entries: listing("index0.html"),
			want:    "index0.html",
			ok:      true,
		},
		{
			name: "directories are not candidates",
			entries: []fs.DirEntry{
				dirEntry{name: "index5.html", dir: true},
				dirEntry{name: "index2.html"},
			},
			want: "index2.html",
			ok:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectLatest(tt.entries, indexHTML)
			if ok != tt.ok {
				t.Fatalf("SelectLatest matched=%t, want %t", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("SelectLatest = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSelectLatestOrderInsensitive(t *testing.T) {
	orders := [][]string{
		{"index1.html", "index3.html", "index2.html", "style.css"},
		{"index3.html", "index1.html", "style.css", "index2.html"},
		{"style.css", "index2.html", "index1.html", "index3.html"},
		{"index2.html", "style.css", "index3.html", "index1.html"},
	}

	for _, names := range orders {
		got, ok := SelectLatest(listing(names...), indexHTML)
		if !ok || got != "index3.html" {
			t.Errorf("SelectLatest(%v) = %q, %t, want index3.html", names, got, ok)
		}
	}
}

func TestSelectLatestTieKeepsFirst(t *testing.T) {
	// index07 and index7 both parse to version 7; the first in listing
	// order must win, deterministically.
	got, ok := SelectLatest(listing("index07.html", "index7.html"), indexHTML)
	if !ok || got != "index07.html" {
		t.Fatalf("SelectLatest = %q, %t, want index07.html", got, ok)
	}

	got, ok = SelectLatest(listing("index7.html", "index07.html"), indexHTML)
	if !ok || got != "index7.html" {
		t.Fatalf("SelectLatest reversed = %q, %t, want index7.html", got, ok)
	}
}
