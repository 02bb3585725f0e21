package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentiva/models"
)

type fakeAPI struct {
	mu          sync.Mutex
	count       int
	countErr    error
	countCalls  int
	items       []models.Notification
	listErr     error
	markAllErr  error
	markOneErr  error
	markedAll   bool
	markedIDs   []string
	markOneGate chan struct{} // when non-nil, MarkRead waits on it
}

func (f *fakeAPI) UnreadNotifications(ctx context.Context) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Notification(nil), f.items...), nil
}

func (f *fakeAPI) UnreadCount(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.countCalls++
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.count, nil
}

func (f *fakeAPI) MarkAllRead(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markedAll = true
	return f.markAllErr
}

func (f *fakeAPI) MarkRead(ctx context.Context, id string) error {
	f.mu.Lock()
	gate := f.markOneGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markedIDs = append(f.markedIDs, id)
	return f.markOneErr
}

func unreadItems(n int) []models.Notification {
	items := make([]models.Notification, n)
	for i := range items {
		items[i] = models.Notification{ID: string(rune('a' + i)), Title: "t", Message: "m"}
	}
	return items
}

func TestFetchCountUpdatesState(t *testing.T) {
	api := &fakeAPI{count: 7}
	p := NewPoller(api, Options{})
	p.FetchCount(context.Background())
	assert.Equal(t, 7, p.Snapshot().UnreadCount)
}

func TestFetchCountFailureKeepsPreviousValue(t *testing.T) {
	api := &fakeAPI{count: 3}
	p := NewPoller(api, Options{})
	p.FetchCount(context.Background())

	api.mu.Lock()
	api.countErr = errors.New("boom")
	api.mu.Unlock()

	p.FetchCount(context.Background())
	assert.Equal(t, 3, p.Snapshot().UnreadCount, "a failed refresh never clobbers the badge")
}

func TestOpenPanelMarksEverythingRead(t *testing.T) {
	api := &fakeAPI{count: 3, items: unreadItems(3)}
	p := NewPoller(api, Options{})
	p.FetchCount(context.Background())

	p.OpenPanel(context.Background())

	state := p.Snapshot()
	assert.True(t, state.IsPanelOpen)
	assert.Equal(t, 0, state.UnreadCount)
	require.Len(t, state.Items, 3)
	for _, n := range state.Items {
		assert.True(t, n.IsRead)
	}
	assert.True(t, api.markedAll)
}

func TestOpenPanelZeroesCountEvenWhenMarkAllFails(t *testing.T) {
	api := &fakeAPI{count: 2, items: unreadItems(2), markAllErr: errors.New("boom")}
	p := NewPoller(api, Options{})
	p.FetchCount(context.Background())

	p.OpenPanel(context.Background())

	// Optimistic by design; the next timer tick re-fetches the truth.
	assert.Equal(t, 0, p.Snapshot().UnreadCount)
}

func TestClosePanel(t *testing.T) {
	p := NewPoller(&fakeAPI{}, Options{})
	p.OpenPanel(context.Background())
	p.ClosePanel()
	assert.False(t, p.Snapshot().IsPanelOpen)
}

func TestMarkOneReadIsOptimistic(t *testing.T) {
	api := &fakeAPI{count: 2, items: unreadItems(2), markOneGate: make(chan struct{})}
	p := NewPoller(api, Options{})
	p.FetchCount(context.Background())
	p.OpenPanel(context.Background())

	// Re-stage an unread view: open zeroed the badge, simulate two unread.
	p.apply(func(s *State) { s.UnreadCount = 2 })

	p.MarkOneRead(context.Background(), "a")

	state := p.Snapshot()
	assert.Equal(t, 1, state.UnreadCount)
	assert.Equal(t, 1, state.PendingSync, "unacknowledged mark-read is visible as pending")
	require.Len(t, state.Items, 1)
	assert.Equal(t, "b", state.Items[0].ID)

	close(api.markOneGate)
	assert.Eventually(t, func() bool {
		return p.Snapshot().PendingSync == 0
	}, time.Second, time.Millisecond)

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Equal(t, []string{"a"}, api.markedIDs)
}

func TestMarkOneReadFloorsAtZero(t *testing.T) {
	api := &fakeAPI{items: unreadItems(1)}
	p := NewPoller(api, Options{})
	p.OpenPanel(context.Background())

	p.MarkOneRead(context.Background(), "a")
	p.MarkOneRead(context.Background(), "a")

	assert.Equal(t, 0, p.Snapshot().UnreadCount)
	p.Stop()
}

func TestPollerTicks(t *testing.T) {
	api := &fakeAPI{count: 1}
	p := NewPoller(api, Options{Interval: 5 * time.Millisecond})

	p.Start(context.Background())
	assert.Eventually(t, func() bool {
		api.mu.Lock()
		defer api.mu.Unlock()
		return api.countCalls >= 3
	}, time.Second, time.Millisecond)
	p.Stop()
}

func TestStopDiscardsLateResults(t *testing.T) {
	api := &fakeAPI{count: 5}
	p := NewPoller(api, Options{Interval: time.Hour})
	p.Start(context.Background())
	p.Stop()

	api.mu.Lock()
	api.count = 99
	api.mu.Unlock()

	// A refresh completing after teardown must not resurrect state.
	p.FetchCount(context.Background())
	assert.Equal(t, 5, p.Snapshot().UnreadCount)
}

func TestDefaultInterval(t *testing.T) {
	p := NewPoller(&fakeAPI{}, Options{})
	assert.Equal(t, DefaultInterval, p.interval)
}
