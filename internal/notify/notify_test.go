package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesMatchingSubscribers(t *testing.T) {
	n := New()
	t.Cleanup(n.Close)

	all := n.Subscribe(Filter{})
	mine := n.Subscribe(Filter{FinderEmail: "eva@example.com"})
	theirs := n.Subscribe(Filter{FinderEmail: "other@example.com"})

	n.Publish(Event{ItemID: "i1", FinderEmail: "eva@example.com", OldStatus: "found", NewStatus: "pending"})

	ev := <-all.C
	assert.Equal(t, "i1", ev.ItemID)

	ev = <-mine.C
	assert.Equal(t, "eva@example.com", ev.FinderEmail)

	select {
	case ev := <-theirs.C:
		t.Fatalf("filtered subscriber received %+v", ev)
	default:
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	n := New()
	t.Cleanup(n.Close)

	sub := n.Subscribe(Filter{})
	n.Unsubscribe(sub)

	_, open := <-sub.C
	require.False(t, open, "channel should be closed after unsubscribe")

	// Unsubscribing twice is harmless.
	n.Unsubscribe(sub)

	// Publishing after unsubscribe must not panic or deliver.
	n.Publish(Event{ItemID: "i1"})
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	n := New()
	t.Cleanup(n.Close)

	sub := n.Subscribe(Filter{})

	// Overfill the buffer; Publish must never block.
	for i := 0; i < subscriptionBuffer*2; i++ {
		n.Publish(Event{ItemID: "i1", NewStatus: "pending"})
	}

	received := 0
	for {
		select {
		case <-sub.C:
			received++
			continue
		default:
		}
		break
	}
	assert.Equal(t, subscriptionBuffer, received)
}

func TestEventsForOneItemArriveInPublishOrder(t *testing.T) {
	n := New()
	t.Cleanup(n.Close)

	sub := n.Subscribe(Filter{})

	n.Publish(Event{ItemID: "i1", OldStatus: "found", NewStatus: "pending"})
	n.Publish(Event{ItemID: "i1", OldStatus: "pending", NewStatus: "claimed"})

	first := <-sub.C
	second := <-sub.C
	assert.Equal(t, "pending", first.NewStatus)
	assert.Equal(t, "claimed", second.NewStatus)
}

func TestCloseDropsSubscriptions(t *testing.T) {
	n := New()

	sub := n.Subscribe(Filter{})
	n.Close()

	_, open := <-sub.C
	assert.False(t, open)

	// Subscribing after close yields an already-closed channel.
	late := n.Subscribe(Filter{})
	_, open = <-late.C
	assert.False(t, open)
}
