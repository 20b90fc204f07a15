package mirror

import (
	"sync"
	"time"
)

// Poller runs a refresh function at a fixed interval. Cancellation is just
// Stop — there are no deadlines or retries; each tick either completes or
// fails outright and the next tick tries again.
type Poller struct {
	stop chan struct{}
	once sync.Once
	done chan struct{}
}

func StartPoller(interval time.Duration, fn func()) *Poller {
	p := &Poller{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go func() {
		defer close(p.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fn()
			case <-p.stop:
				return
			}
		}
	}()
	return p
}

// Stop halts polling and waits for an in-flight tick to finish.
func (p *Poller) Stop() {
	p.once.Do(func() { close(p.stop) })
	<-p.done
}
