package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrNoCandidate reports that no file in the serve directory matches the
// versioned filename pattern. Startup treats it as fatal; the server never
// binds without something to serve.
var ErrNoCandidate = errors.New("no matching versioned file")

// New builds a Server from cfg. It runs the initial version selection,
// failing with ErrNoCandidate when the directory holds nothing matching the
// pattern, and wires the root handler in front of a plain http.FileServer
// rooted at the serve directory. Everything except the root path is the file
// server's business: path resolution, MIME types, ranges, and error pages.
func New(cfg Config) (*Server, error) {
	state := &ServingState{}
	events := newChangeNotifier()
	w := newWatcher(cfg.Watch.Dir, cfg.Watch.Pattern(), cfg.Watch.Interval.Std(), state, events)

	name, ok, err := w.scan()
	if err != nil {
		return nil, fmt.Errorf("failed to scan serve directory: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q in %s", ErrNoCandidate, cfg.Watch.Pattern().Glob(), cfg.Watch.Dir)
	}

	root, err := os.OpenRoot(cfg.Watch.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open serve directory: %w", err)
	}

	info, err := root.Stat(name)
	if err != nil {
		_ = root.Close()
		return nil, fmt.Errorf("failed to stat %s: %w", name, err)
	}
	state.Swap(name, info.ModTime())

	files := http.FileServer(http.FS(root.FS()))

	s := &Server{
		cfg:     cfg,
		state:   state,
		events:  events,
		watcher: w,
		root:    root,
		files:   files,
	}

	mux := http.NewServeMux()
	mux.Handle("/", files)
	mux.HandleFunc("GET /{$}", s.Latest)
	mux.HandleFunc("HEAD /{$}", s.Latest)

	s.server = &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: cleanPathMiddleware(logMiddleware(mux)),
	}

	return s, nil
}

func cleanPathMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Clean the request URL path
		r.URL.Path = path.Clean(r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("Request", slog.String("method", r.Method), slog.String("path", r.URL.Path))
		next.ServeHTTP(w, r)
	})
}

type Server struct {
	cfg     Config
	server  *http.Server
	state   *ServingState
	events  *changeNotifier
	watcher *watcher
	root    *os.Root
	files   http.Handler
}

// Current returns the file the root path resolves to right now, for startup
// reporting.
func (s *Server) Current() (string, time.Time) {
	return s.state.Current()
}

// Run serves HTTP and polls for file updates until ctx is cancelled, then
// shuts the listener down gracefully. A cancellation-triggered exit returns
// nil; a listener failure does not.
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		s.watcher.run(ctx)
		return nil
	})

	g.Go(func() error {
		s.printEvents(ctx)
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.events.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", slog.Any("err", err))
		}
		_ = s.root.Close()
		return nil
	})

	return g.Wait()
}
