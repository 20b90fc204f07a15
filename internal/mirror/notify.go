package mirror

import (
	"sync"
	"time"
)

// Marker is the advisory change notification broadcast whenever the local
// mirror is written, so other open sessions on the same device can refresh.
// It is a hint, never a source of truth.
type Marker struct {
	Key       string    `json:"key"`
	UpdatedAt time.Time `json:"ts"`
	By        string    `json:"by"`
}

type Notifier struct {
	mu   sync.Mutex
	subs map[int]chan Marker
	next int
}

func NewNotifier() *Notifier {
	return &Notifier{subs: map[int]chan Marker{}}
}

// Subscribe returns a marker channel and a cancel func. The channel is
// buffered; markers are dropped rather than blocking a slow subscriber.
func (n *Notifier) Subscribe() (<-chan Marker, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.next
	n.next++
	ch := make(chan Marker, 8)
	n.subs[id] = ch
	return ch, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if sub, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(sub)
		}
	}
}

func (n *Notifier) Publish(m Marker) {
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = time.Now()
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- m:
		default:
		}
	}
}
