package memorybus

import "testing"

func TestBus_PrefixFilterAndClose(t *testing.T) {
	b := New()
	all, cancelAll := b.Subscribe()
	defer cancelAll()
	sess, cancelSess := b.SubscribePrefix("session.")
	defer cancelSess()

	b.Publish("session.loaded", []byte(`{}`))
	b.Publish("feed.cached", nil)

	if len(all) != 2 {
		t.Fatalf("unfiltered subscriber: want 2 events, got %d", len(all))
	}
	if len(sess) != 1 {
		t.Fatalf("prefixed subscriber: want 1 event, got %d", len(sess))
	}
	if evt := <-sess; evt.Topic != "session.loaded" {
		t.Fatalf("topic: got %q", evt.Topic)
	}

	b.Close()
	<-all
	<-all
	if _, ok := <-all; ok {
		t.Fatalf("channel should be closed after Close")
	}
	b.Publish("session.loaded", nil)

	late, _ := b.Subscribe()
	if _, ok := <-late; ok {
		t.Fatalf("subscribing to a closed bus should yield a closed channel")
	}
}

func TestBus_SlowSubscriberDropsEvents(t *testing.T) {
	b := New()
	ch, cancel := b.Subscribe()
	defer cancel()
	for i := 0; i < subscriberBuffer+10; i++ {
		b.Publish("session.selection", nil)
	}
	if len(ch) != subscriberBuffer {
		t.Fatalf("buffer: want %d, got %d", subscriberBuffer, len(ch))
	}
}
