package services

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/kycreview/internal/client/models"
)

// DefaultNotificationTTL is how long a notification stays visible.
const DefaultNotificationTTL = 5 * time.Second

// Notifier holds transient notifications in insertion order. Each entry owns
// a fire-once timer that removes exactly that entry; Dismiss cancels it.
type Notifier struct {
	changeHook

	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	items  []models.Notification
	timers map[int64]*time.Timer
	lastID int64
	closed bool
}

func NewNotifier(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	return &Notifier{
		ttl:    ttl,
		now:    time.Now,
		timers: make(map[int64]*time.Timer),
	}
}

// Push appends a notification and schedules its removal. The returned id is
// the push time in unix milliseconds, bumped when needed to stay unique.
// After Close, Push is a no-op and returns 0.
func (n *Notifier) Push(kind models.NotificationKind, message string) int64 {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return 0
	}

	id := n.now().UnixMilli()
	if id <= n.lastID {
		id = n.lastID + 1
	}
	n.lastID = id

	n.items = append(n.items, models.Notification{ID: id, Kind: kind, Message: message})
	n.timers[id] = time.AfterFunc(n.ttl, func() { n.expire(id) })
	n.mu.Unlock()

	n.fire()
	return id
}

// Dismiss removes a notification before its timer fires. It reports whether
// the notification was still present.
func (n *Notifier) Dismiss(id int64) bool {
	n.mu.Lock()
	if t, ok := n.timers[id]; ok {
		t.Stop()
	}
	removed := n.removeLocked(id)
	n.mu.Unlock()

	if removed {
		n.fire()
	}
	return removed
}

// List returns the visible notifications, oldest first.
func (n *Notifier) List() []models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]models.Notification, len(n.items))
	copy(out, n.items)
	return out
}

// Close cancels every pending timer and drops all notifications.
func (n *Notifier) Close() {
	n.mu.Lock()
	for _, t := range n.timers {
		t.Stop()
	}
	n.timers = make(map[int64]*time.Timer)
	n.items = nil
	n.closed = true
	n.mu.Unlock()
}

func (n *Notifier) expire(id int64) {
	n.mu.Lock()
	removed := n.removeLocked(id)
	n.mu.Unlock()

	if removed {
		n.fire()
	}
}

func (n *Notifier) removeLocked(id int64) bool {
	delete(n.timers, id)
	for i, item := range n.items {
		if item.ID == id {
			n.items = append(n.items[:i], n.items[i+1:]...)
			return true
		}
	}
	return false
}
