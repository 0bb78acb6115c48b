// ABOUTME: Tests for the signal bus
// ABOUTME: Covers zero-subscriber publish, fan-out, unsubscribe and name isolation

package signal

import "testing"

func TestBus_PublishWithoutSubscribers(t *testing.T) {
	var b Bus

	// Must not panic
	b.Publish(OpenContact)
	New().Publish("anything")
}

func TestBus_TwoSubscribersCalledOnce(t *testing.T) {
	b := New()

	first, second := 0, 0
	b.Subscribe(OpenContact, func() { first++ })
	b.Subscribe(OpenContact, func() { second++ })

	b.Publish(OpenContact)

	if first != 1 || second != 1 {
		t.Errorf("after one publish: first=%d second=%d, want 1 and 1", first, second)
	}

	b.Publish(OpenContact)

	if first != 2 || second != 2 {
		t.Errorf("after two publishes: first=%d second=%d, want 2 and 2", first, second)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	b := New()

	calls := 0
	unsubscribe := b.Subscribe(OpenContact, func() { calls++ })

	unsubscribe()
	unsubscribe() // idempotent

	b.Publish(OpenContact)

	if calls != 0 {
		t.Errorf("handler called %d times after unsubscribe", calls)
	}

	if n := b.Subscribers(OpenContact); n != 0 {
		t.Errorf("Subscribers() = %d, want 0", n)
	}
}

func TestBus_NoCrossTalk(t *testing.T) {
	b := New()

	contact, other := 0, 0
	b.Subscribe(OpenContact, func() { contact++ })
	b.Subscribe("close-menu", func() { other++ })

	b.Publish(OpenContact)

	if contact != 1 || other != 0 {
		t.Errorf("contact=%d other=%d, want 1 and 0", contact, other)
	}
}

func TestBus_HandlerMaySubscribe(t *testing.T) {
	b := New()

	nested := 0
	b.Subscribe(OpenContact, func() {
		b.Subscribe("nested", func() { nested++ })
	})

	b.Publish(OpenContact)
	b.Publish("nested")

	if nested != 1 {
		t.Errorf("nested handler called %d times, want 1", nested)
	}
}
