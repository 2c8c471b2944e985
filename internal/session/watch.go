package session

import "sync"

// Change is delivered to watchers after every Initialize, Login and Logout.
type Change struct {
	Session Session
	Active  bool
}

type watchers struct {
	mu   sync.Mutex
	subs map[chan Change]struct{}
}

func newWatchers() *watchers {
	return &watchers{subs: make(map[chan Change]struct{})}
}

// Watch subscribes to session changes. Each subscriber holds at most one
// pending change: when it falls behind, the older change is replaced by the
// newer one. The returned func unsubscribes and closes the channel.
func (s *Store) Watch() (<-chan Change, func()) {
	ch := make(chan Change, 1)
	s.watchers.add(ch)

	var once sync.Once
	return ch, func() {
		once.Do(func() { s.watchers.remove(ch) })
	}
}

func (w *watchers) add(ch chan Change) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.subs[ch] = struct{}{}
}

func (w *watchers) remove(ch chan Change) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.subs[ch]; !ok {
		return
	}
	delete(w.subs, ch)
	close(ch)
}

func (w *watchers) broadcast(c Change) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for ch := range w.subs {
		select {
		case ch <- c:
			continue
		default:
		}
		// drop the stale change, then deliver the latest
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- c:
		default:
		}
	}
}
