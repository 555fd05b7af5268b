// Package notify delivers item change events to subscribed views so
// they can re-fetch without polling. Delivery is best-effort: the
// current item and history rows in the database are the source of
// truth, and a consumer that misses an event only refreshes later.
package notify

import "sync"

// Event signals that an item's record was mutated. The payload is a
// hint, not authoritative state; consumers reconcile by re-reading.
type Event struct {
	ItemID      string `json:"item_id"`
	FinderEmail string `json:"finder_email"`
	OldStatus   string `json:"old_status"`
	NewStatus   string `json:"new_status"`
}

// Filter selects which events a subscription receives. The zero value
// matches every item; a non-empty FinderEmail matches only items
// posted by that finder.
type Filter struct {
	FinderEmail string
}

func (f Filter) matches(ev Event) bool {
	return f.FinderEmail == "" || f.FinderEmail == ev.FinderEmail
}

// Subscription is one registered consumer. Events arrive on C until
// Unsubscribe, after which C is closed.
type Subscription struct {
	C      chan Event
	filter Filter
}

// subscriptionBuffer is the per-subscriber channel capacity. A consumer
// that falls further behind than this starts losing events.
const subscriptionBuffer = 16

// Notifier fans item change events out to subscribers.
type Notifier struct {
	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	closed bool
}

// New creates an empty Notifier.
func New() *Notifier {
	return &Notifier{subs: make(map[*Subscription]struct{})}
}

// Subscribe registers a consumer for events matching the filter.
func (n *Notifier) Subscribe(filter Filter) *Subscription {
	sub := &Subscription{
		C:      make(chan Event, subscriptionBuffer),
		filter: filter,
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		close(sub.C)
		return sub
	}
	n.subs[sub] = struct{}{}
	return sub
}

// Unsubscribe removes a subscription and closes its channel.
func (n *Notifier) Unsubscribe(sub *Subscription) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.subs[sub]; !ok {
		return
	}
	delete(n.subs, sub)
	close(sub.C)
}

// Publish delivers the event to every matching subscription. The send
// never blocks: a subscriber with a full buffer misses the event and
// catches up on its next re-read. Holding the lock across the fan-out
// keeps events for one item in publish order.
func (n *Notifier) Publish(ev Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}

	for sub := range n.subs {
		if !sub.filter.matches(ev) {
			continue
		}
		select {
		case sub.C <- ev:
		default:
		}
	}
}

// Close drops all subscriptions and closes their channels. Publish and
// Subscribe become no-ops afterwards.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.closed = true
	for sub := range n.subs {
		delete(n.subs, sub)
		close(sub.C)
	}
}
