package runtime

import (
	"context"
	"poker-lab/contract"
	"poker-lab/domain/event"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type Sink struct {
	name string
}

func (s *Sink) Consume(ctx context.Context, e event.Event) error {
	return nil
}

func TestRegistry_Subscribe_One_Subscriber(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	subscriberID := uuid.NewString()
	sink := &Sink{}

	// Given no subscriber is connected
	req.Zero(registry.Count())
	req.Empty(registry.All())

	// When a subscriber connects
	registry.Subscribe(subscriberID, sink)

	// Then
	req.Equal(1, registry.Count())
	req.Equal([]contract.EventSink{sink}, registry.All())
	req.Equal([]contract.EventSink{sink}, registry.SinksFor([]string{subscriberID}))
}

func TestRegistry_All_PreservesSubscribeOrder(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	first := &Sink{name: "first"}
	second := &Sink{name: "second"}
	third := &Sink{name: "third"}

	// When subscribers connect one after another
	registry.Subscribe("a", first)
	registry.Subscribe("b", second)
	registry.Subscribe("c", third)

	// Then All iterates in subscribe order
	req.Equal([]contract.EventSink{first, second, third}, registry.All())
}

func TestRegistry_Unsubscribe(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	subscriberID1 := uuid.NewString()
	subscriberID2 := uuid.NewString()
	sink1 := &Sink{name: "one"}
	sink2 := &Sink{name: "two"}

	// Given two connected subscribers
	registry.Subscribe(subscriberID1, sink1)
	registry.Subscribe(subscriberID2, sink2)

	// When the first one disconnects
	registry.Unsubscribe(subscriberID1)

	// Then only the second remains
	req.Equal(1, registry.Count())
	req.Equal([]contract.EventSink{sink2}, registry.All())

	// And unsubscribing again is harmless
	registry.Unsubscribe(subscriberID1)
	req.Equal(1, registry.Count())
}

func TestRegistry_SinksFor_SkipsGoneSubscribers(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	sink := &Sink{}
	registry.Subscribe("present", sink)

	// When resolving a mix of live and vanished subscribers
	sinks := registry.SinksFor([]string{"vanished", "present"})

	// Then the vanished one is silently skipped
	req.Equal([]contract.EventSink{sink}, sinks)
}
