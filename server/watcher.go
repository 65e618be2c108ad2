package server

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// watcher polls the serve directory on a fixed interval, re-running the
// version selection and recording what changed in the shared serving state.
// It is the only writer; request handlers only ever read.
type watcher struct {
	dir      string
	pattern  Pattern
	interval time.Duration
	state    *ServingState
	events   *changeNotifier
}

func newWatcher(dir string, pat Pattern, interval time.Duration, state *ServingState, events *changeNotifier) *watcher {
	return &watcher{
		dir:      dir,
		pattern:  pat,
		interval: interval,
		state:    state,
		events:   events,
	}
}

// scan returns the best-versioned filename currently in the directory. The
// listing is read fresh on every call, never cached.
func (w *watcher) scan() (string, bool, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return "", false, err
	}
	name, ok := SelectLatest(entries, w.pattern)
	return name, ok, nil
}

// run polls until ctx is cancelled. No lock is held between ticks.
func (w *watcher) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.tick()
		}
	}
}

// tick performs one update check: switch to a differently named best version
// if one appeared, otherwise refresh the modification time of the file
// already served. A failed check leaves the state untouched until the next
// tick; the loop never dies because one pass went wrong.
func (w *watcher) tick() {
	next, ok, err := w.scan()
	if err != nil {
		slog.Error("Failed to scan serve directory", slog.String("dir", w.dir), slog.Any("err", err))
		return
	}

	current, lastMod := w.state.Current()

	if ok && next != current {
		info, err := os.Stat(filepath.Join(w.dir, next))
		if err != nil {
			// Vanished between the listing and the stat; try again next tick.
			slog.Error("Failed to stat new file", slog.String("file", next), slog.Any("err", err))
			return
		}
		w.state.Swap(next, info.ModTime())
		w.events.Publish(changeEvent{kind: changeReload, file: next, modTime: info.ModTime()})
		return
	}

	info, err := os.Stat(filepath.Join(w.dir, current))
	if err != nil {
		// The served file is gone and nothing replaced it. Keep pointing at
		// it; requests answer 404 until a new candidate shows up.
		return
	}

	if !info.ModTime().Equal(lastMod) {
		w.state.Touch(info.ModTime())
		w.events.Publish(changeEvent{kind: changeModified, file: current, modTime: info.ModTime()})
	}
}
