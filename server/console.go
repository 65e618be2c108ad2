package server

import (
	"context"

	"github.com/fatih/color"
)

var (
	reloadLine   = color.New(color.FgGreen)
	modifiedLine = color.New(color.FgYellow)
)

// printEvents turns watcher events into the human status lines on the
// console. Structured logs carry diagnostics; these lines are for the
// developer watching the terminal.
func (s *Server) printEvents(ctx context.Context) {
	id, ch := s.events.Subscribe()
	defer s.events.Unsubscribe(id)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			switch ev.kind {
			case changeReload:
				reloadLine.Printf("New file detected: %s. Reloading...\n", ev.file)
			case changeModified:
				modifiedLine.Printf("File %s has been modified. Reloading...\n", ev.file)
			}
		}
	}
}
