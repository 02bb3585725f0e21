// Package notify keeps the unread-notification badge fresh. A ticker
// refreshes the authoritative count in the background; opening the panel
// eagerly fetches the unread list and marks everything read. Counts are
// optimistic locally and eventually consistent: the next tick re-fetches
// the server's number and self-heals any stale value.
package notify

import (
	"context"
	"log"
	"sync"
	"time"

	"rentiva/models"
)

// DefaultInterval between background count refreshes.
const DefaultInterval = 60 * time.Second

// API is the slice of the platform client the poller needs.
type API interface {
	UnreadNotifications(ctx context.Context) ([]models.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkAllRead(ctx context.Context) error
	MarkRead(ctx context.Context, id string) error
}

// Options configures a poller. The zero value gets DefaultInterval.
type Options struct {
	Interval time.Duration
}

// State is a snapshot of the local notification view. PendingSync counts
// optimistic mark-read requests the server has not acknowledged yet, so
// callers can show a sync-pending indicator instead of silently diverging.
type State struct {
	UnreadCount int
	Items       []models.Notification
	IsPanelOpen bool
	PendingSync int
}

// Poller owns the notification state for the lifetime of its hosting view.
// Nothing else mutates it; other views that care about the badge re-fetch
// for themselves.
type Poller struct {
	api      API
	interval time.Duration

	mu      sync.Mutex
	state   State
	stopped bool

	cancel context.CancelFunc
	done   chan struct{}
	wg     sync.WaitGroup
}

// NewPoller builds a poller around the given API slice.
func NewPoller(api API, opts Options) *Poller {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{api: api, interval: interval}
}

// Start fetches the count once and then keeps refreshing it on the
// configured interval until Stop is called or ctx ends.
func (p *Poller) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})

	p.FetchCount(ctx)

	go func() {
		defer close(p.done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.FetchCount(ctx)
			}
		}
	}()
}

// Stop tears the ticker down. In-flight requests run to completion but
// their results are discarded; see apply.
func (p *Poller) Stop() {
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
		<-p.done
	}
	p.wg.Wait()
}

// apply runs a state mutation unless the poller has been stopped, in which
// case the result is dropped on the floor.
func (p *Poller) apply(fn func(*State)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	fn(&p.state)
}

// FetchCount refreshes the unread counter from the server. Best effort: a
// failure is logged and the previous count stays; the user never sees a
// background refresh error.
func (p *Poller) FetchCount(ctx context.Context) {
	count, err := p.api.UnreadCount(ctx)
	if err != nil {
		log.Printf("notification count refresh failed: %v", err)
		return
	}
	p.apply(func(s *State) {
		s.UnreadCount = count
	})
}

// OpenPanel opens the dropdown, fetches the unread list once and marks
// everything read, server-side and locally. Opening counts as reading:
// the badge zeroes immediately, whatever order the round trips land in.
func (p *Poller) OpenPanel(ctx context.Context) {
	p.apply(func(s *State) {
		s.IsPanelOpen = true
	})

	items, err := p.api.UnreadNotifications(ctx)
	if err != nil {
		log.Printf("notification list fetch failed: %v", err)
	} else {
		p.apply(func(s *State) {
			s.Items = items
		})
	}

	if err := p.api.MarkAllRead(ctx); err != nil {
		log.Printf("mark-all-read failed: %v", err)
	}

	p.apply(func(s *State) {
		s.UnreadCount = 0
		for i := range s.Items {
			s.Items[i].IsRead = true
		}
	})
}

// ClosePanel closes the dropdown, whether from the toggle or a click
// outside its bounds.
func (p *Poller) ClosePanel() {
	p.apply(func(s *State) {
		s.IsPanelOpen = false
	})
}

// MarkOneRead removes one notification from the visible list and lowers
// the badge, floored at zero, then tells the server in the background.
// Optimistic: a failed request is logged, counted in PendingSync while
// outstanding, and reconciled by the next count poll.
func (p *Poller) MarkOneRead(ctx context.Context, id string) {
	p.apply(func(s *State) {
		kept := s.Items[:0]
		for _, n := range s.Items {
			if n.ID != id {
				kept = append(kept, n)
			}
		}
		s.Items = kept
		if s.UnreadCount > 0 {
			s.UnreadCount--
		}
		s.PendingSync++
	})

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if err := p.api.MarkRead(ctx, id); err != nil {
			log.Printf("mark-read %s failed: %v", id, err)
		}
		p.apply(func(s *State) {
			if s.PendingSync > 0 {
				s.PendingSync--
			}
		})
	}()
}

// Snapshot returns a copy of the current state, items included.
func (p *Poller) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.state
	s.Items = append([]models.Notification(nil), p.state.Items...)
	return s
}
