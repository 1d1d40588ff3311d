package sweep

import (
	"context"
	"fmt"
)

// Subscriber receives completed recordings. Implementations must not mutate
// the recording; it is shared across the fan-out.
type Subscriber interface {
	Name() string
	Notify(ctx context.Context, r *Recording) error
}

// Notifier fans completed recordings out to an explicit, ordered subscriber
// list. There is no process-wide registry: whoever owns the notifier decides
// who listens.
type Notifier struct {
	subs []Subscriber
}

// Subscribe appends a subscriber. Delivery happens in registration order.
func (n *Notifier) Subscribe(s Subscriber) {
	n.subs = append(n.subs, s)
}

// Publish delivers the recording to every subscriber synchronously, in
// registration order. Delivery is authoritative: the first subscriber error
// aborts the remaining fan-out and is returned to the caller.
func (n *Notifier) Publish(ctx context.Context, r *Recording) error {
	for _, s := range n.subs {
		if err := s.Notify(ctx, r); err != nil {
			return fmt.Errorf("subscriber %q failed on recording %d: %w", s.Name(), r.RecordingID, err)
		}
	}
	return nil
}
