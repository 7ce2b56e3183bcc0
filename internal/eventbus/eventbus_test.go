package eventbus

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suggestbox/internal/domain"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan domain.Suggestion, 1)
	b.Subscribe(EventSelectionCommitted, func(e DomainEvent) {
		if ev, ok := e.(SelectionCommittedEvent); ok {
			got <- ev.Suggestion
		}
	})

	b.Publish(SelectionCommittedEvent{Suggestion: domain.Suggestion{Text: "apple", ID: "1"}})

	select {
	case s := <-got:
		assert.Equal(t, "apple", s.Text)
		assert.Equal(t, domain.ItemID("1"), s.ID)
	case <-time.After(time.Second):
		t.Fatal("handler was not called")
	}
}

func TestSubscribersOnlySeeTheirType(t *testing.T) {
	b := New()
	defer b.Close()

	failed := make(chan struct{}, 1)
	submitted := make(chan string, 1)
	b.Subscribe(EventFetchFailed, func(DomainEvent) { failed <- struct{}{} })
	b.Subscribe(EventInputSubmitted, func(e DomainEvent) {
		submitted <- e.(InputSubmittedEvent).Text
	})

	b.Publish(InputSubmittedEvent{Text: "raw"})

	select {
	case text := <-submitted:
		assert.Equal(t, "raw", text)
	case <-time.After(time.Second):
		t.Fatal("submitted handler was not called")
	}
	select {
	case <-failed:
		t.Fatal("fetch-failed handler must not see submit events")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()
	defer b.Close()

	calls := make(chan struct{}, 4)
	unsubscribe := b.Subscribe(EventFetchFailed, func(DomainEvent) { calls <- struct{}{} })
	keep := make(chan struct{}, 4)
	b.Subscribe(EventFetchFailed, func(DomainEvent) { keep <- struct{}{} })

	unsubscribe()
	b.Publish(FetchFailedEvent{Query: "x", Err: errors.New("boom")})

	select {
	case <-keep:
	case <-time.After(time.Second):
		t.Fatal("remaining subscriber was not called")
	}
	assert.Len(t, calls, 0)
}

func TestHandlerPanicDoesNotStopBus(t *testing.T) {
	b := New()
	defer b.Close()

	ok := make(chan struct{}, 1)
	b.Subscribe(EventInputSubmitted, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventInputSubmitted, func(DomainEvent) { ok <- struct{}{} })

	b.Publish(InputSubmittedEvent{Text: "a"})
	b.Publish(InputSubmittedEvent{Text: "b"})

	for i := 0; i < 2; i++ {
		select {
		case <-ok:
		case <-time.After(time.Second):
			t.Fatal("bus stopped after handler panic")
		}
	}
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	b := New()
	called := make(chan struct{}, 1)
	b.Subscribe(EventInputSubmitted, func(DomainEvent) { called <- struct{}{} })
	b.Close()

	require.NotPanics(t, func() {
		b.Publish(InputSubmittedEvent{Text: "late"})
	})
	select {
	case <-called:
		t.Fatal("closed bus delivered an event")
	case <-time.After(50 * time.Millisecond):
	}
}
