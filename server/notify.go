package server

import (
	"sync"
	"time"
)

// changeKind distinguishes a version switch from an in-place modification of
// the file already being served.
type changeKind int

const (
	changeReload changeKind = iota
	changeModified
)

// changeEvent describes one observed change to the served file.
type changeEvent struct {
	kind    changeKind
	file    string
	modTime time.Time
}

// changeNotifier fans change events out to any number of subscribers. Each
// subscriber gets a buffered channel that receives every event the watcher
// records, as long as the subscriber keeps up.
type changeNotifier struct {
	mutex   sync.Mutex
	closed  bool
	nextID  int
	clients map[int]chan changeEvent
}

func newChangeNotifier() *changeNotifier {
	return &changeNotifier{
		clients: make(map[int]chan changeEvent),
	}
}

// Subscribe registers a new listener and returns both its ID and a channel
// that delivers change events. If the notifier has already been closed we
// return a closed channel so callers can fail fast.
func (n *changeNotifier) Subscribe() (int, <-chan changeEvent) {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	if n.closed {
		ch := make(chan changeEvent)
		close(ch)
		return -1, ch
	}

	id := n.nextID
	n.nextID++

	ch := make(chan changeEvent, 8)
	n.clients[id] = ch

	return id, ch
}

// Unsubscribe removes an existing listener and closes its channel so the
// caller can tear down any goroutines blocked on it.
func (n *changeNotifier) Unsubscribe(id int) {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	if ch, ok := n.clients[id]; ok {
		close(ch)
		delete(n.clients, id)
	}
}

// Publish broadcasts ev to every active listener without blocking on slow
// readers. A listener whose buffer is full misses the event.
func (n *changeNotifier) Publish(ev changeEvent) {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	if n.closed {
		return
	}

	for _, ch := range n.clients {
		select {
		case ch <- ev:
		default:
			// subscriber buffer full; skip
		}
	}
}

// Close tears down the notifier and closes every subscriber channel,
// signalling to callers that no further events will arrive.
func (n *changeNotifier) Close() {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	if n.closed {
		return
	}

	n.closed = true

	for id, ch := range n.clients {
		close(ch)
		delete(n.clients, id)
	}
}
