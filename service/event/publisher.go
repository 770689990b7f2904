package event

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/viant/kernel/service/messaging"
)

var errNilEvent = errors.New("event: nil event")

// Publisher enqueues events of one payload type. Every event also goes to the
// kernel-wide mirror queue, stamped with a sequence number shared by all
// publishers of a Service so listeners can restore emission order.
type Publisher[T any] struct {
	queue  messaging.Queue[Event[T]]
	mirror messaging.Queue[Event[any]]
	seq    *atomic.Uint64
}

func newPublisher[T any](queue messaging.Queue[Event[T]], mirror messaging.Queue[Event[any]], seq *atomic.Uint64) *Publisher[T] {
	return &Publisher[T]{queue: queue, mirror: mirror, seq: seq}
}

// Publish stamps event and enqueues it on the mirror, then on the typed queue.
func (p *Publisher[T]) Publish(ctx context.Context, event *Event[T]) error {
	if event == nil {
		return errNilEvent
	}
	event.Seq = p.seq.Add(1)
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	if p.mirror != nil {
		if err := p.mirror.Publish(ctx, event.untyped()); err != nil {
			return fmt.Errorf("failed to mirror event %d: %w", event.Seq, err)
		}
	}
	if err := p.queue.Publish(ctx, event); err != nil {
		return fmt.Errorf("failed to publish event %d: %w", event.Seq, err)
	}
	return nil
}

// next blocks for the following event and acknowledges it.
func (p *Publisher[T]) next(ctx context.Context) (*Event[T], error) {
	msg, err := p.queue.Consume(ctx)
	if err != nil || msg == nil {
		return nil, err
	}
	if err = msg.Ack(); err != nil {
		return nil, err
	}
	return msg.T(), nil
}
