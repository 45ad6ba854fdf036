package directory

import "encoding/json"

// Waiter is a one-shot completion handle for a parked long-poll. The transport
// blocks on Done while the directory keeps the handle in the owning user's
// pending slot; fulfilling it releases a batch into the channel.
//
// All fulfillment paths run under the directory lock and clear the pending
// slot in the same critical section, so each Waiter is fulfilled at most once.
// The non-blocking send is a guard against a superseded handle firing twice.
type Waiter struct {
	ch chan []json.RawMessage
}

func newWaiter() *Waiter {
	return &Waiter{ch: make(chan []json.RawMessage, 1)}
}

// fulfill resolves the waiter with the given batch. An empty batch signals
// supersession or directory removal rather than delivery.
func (w *Waiter) fulfill(batch []json.RawMessage) {
	select {
	case w.ch <- batch:
	default:
	}
}

// Done returns the channel that receives the batch once the waiter is
// fulfilled. A caller abandoning the wait must call Directory.CancelWait so
// the pending slot is cleared.
func (w *Waiter) Done() <-chan []json.RawMessage {
	return w.ch
}
