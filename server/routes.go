package server

import (
	"net/http"
)

// Latest answers the root path with the currently selected versioned file.
// The name is read from the shared state as one consistent pair, the file is
// checked for existence, and the request is rewritten to the real name and
// handed to the file server like any other path. If the file disappeared and
// nothing has replaced it yet, the response names the missing target.
func (s *Server) Latest(w http.ResponseWriter, r *http.Request) {
	name, _ := s.state.Current()

	if _, err := s.root.Stat(name); err != nil {
		http.Error(w, "File Not Found: "+name, http.StatusNotFound)
		return
	}

	r.URL.Path = "/" + name
	s.files.ServeHTTP(w, r)
}
