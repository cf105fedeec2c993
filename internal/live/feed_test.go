package live

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeed_PublishReachesSubscribers(t *testing.T) {
	feed := NewFeed()

	signals, cancel := feed.Subscribe("users/1/tasks")
	defer cancel()

	feed.Publish("users/1/tasks")

	select {
	case <-signals:
	default:
		t.Fatal("expected a change signal")
	}
}

func TestFeed_SignalsCoalesce(t *testing.T) {
	feed := NewFeed()

	signals, cancel := feed.Subscribe("users/1/tasks")
	defer cancel()

	// An undrained subscriber never queues more than one signal.
	feed.Publish("users/1/tasks")
	feed.Publish("users/1/tasks")
	feed.Publish("users/1/tasks")

	<-signals
	select {
	case <-signals:
		t.Fatal("signals should have coalesced into one")
	default:
	}
}

func TestFeed_PathsAreIndependent(t *testing.T) {
	feed := NewFeed()

	tasks, cancelTasks := feed.Subscribe("users/1/tasks")
	defer cancelTasks()
	leads, cancelLeads := feed.Subscribe("users/1/leads")
	defer cancelLeads()

	feed.Publish("users/1/tasks")

	select {
	case <-tasks:
	default:
		t.Fatal("expected a signal on the tasks path")
	}
	select {
	case <-leads:
		t.Fatal("leads path should not have been signalled")
	default:
	}
}

func TestFeed_PublishEmptyPathIsNoOp(t *testing.T) {
	feed := NewFeed()

	signals, cancel := feed.Subscribe("")
	defer cancel()

	feed.Publish("")

	select {
	case <-signals:
		t.Fatal("empty path must never be signalled")
	default:
	}
}

func TestFeed_CancelRemovesSubscription(t *testing.T) {
	feed := NewFeed()

	_, cancel := feed.Subscribe("users/1/tasks")
	require.Equal(t, 1, feed.SubscriberCount("users/1/tasks"))

	cancel()
	assert.Equal(t, 0, feed.SubscriberCount("users/1/tasks"))
}
