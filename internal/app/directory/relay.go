/*
Package directory contains the core logic of the signaling service.

This file implements the message relay: enqueueing into per-user FIFO queues,
draining a queue into a parked long-poll slot, and slot installation with
supersession. The relay is the only place queued messages are released, which
guarantees at-most-once delivery in FIFO order within a batch.
*/
package directory

import (
	"encoding/json"

	"lansignal/internal/pkg/errs"
)

// Enqueue appends a message to the user's queue without attempting delivery.
// Fails when the user is not registered.
func (d *Directory) Enqueue(userID string, msg Message) *errs.CustomError {
	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.users[userID]
	if !ok {
		return errs.NewError(errs.ErrUnknownUserID)
	}

	d.enqueueLocked(u, msg)
	return nil
}

// Deliver attempts delivery for the user: if a long-poll is parked and the
// queue is non-empty, the queue is drained into it as one batch.
func (d *Directory) Deliver(userID string) *errs.CustomError {
	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.users[userID]
	if !ok {
		return errs.NewError(errs.ErrUnknownUserID)
	}

	d.deliverLocked(u)
	return nil
}

func (d *Directory) enqueueLocked(u *User, msg Message) {
	u.queue = append(u.queue, msg)
}

// deliverLocked packages the entire queue as one batch, fulfills the pending
// slot with it, and clears both. A no-op unless a slot is parked and the queue
// is non-empty.
func (d *Directory) deliverLocked(u *User) {
	if u.pending == nil || len(u.queue) == 0 {
		return
	}

	batch := drainLocked(u)
	u.pending.fulfill(batch)
	u.pending = nil

	d.logger.Debug().
		Str("user_id", u.ID).
		Int("batch_size", len(batch)).
		Msg("Delivered batch into parked long-poll.")
}

// drainLocked empties the user's queue and returns the payloads in insertion
// order. The result is never nil so it marshals as a JSON array.
func drainLocked(u *User) []json.RawMessage {
	batch := make([]json.RawMessage, 0, len(u.queue))
	for _, msg := range u.queue {
		batch = append(batch, msg.Payload)
	}
	u.queue = nil
	return batch
}

// registerWaitLocked installs a fresh long-poll slot for the user and returns
// it. An already-parked slot is first fulfilled with an empty batch, telling
// that older poll it has been superseded.
func (d *Directory) registerWaitLocked(u *User) *Waiter {
	if u.pending != nil {
		u.pending.fulfill([]json.RawMessage{})
		u.pending = nil

		d.logger.Debug().
			Str("user_id", u.ID).
			Msg("Superseded an older parked long-poll.")
	}

	w := newWaiter()
	u.pending = w
	return w
}

// CancelWait clears the user's pending slot, but only if it still identifies
// this exact waiter instance. A newer wait may already have replaced it, in
// which case the stale cancellation is a no-op. Called by the transport when
// the underlying connection drops before fulfillment.
func (d *Directory) CancelWait(userID string, w *Waiter) {
	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.users[userID]
	if !ok {
		return
	}

	if u.pending == w {
		u.pending = nil

		d.logger.Debug().
			Str("user_id", userID).
			Msg("Cancelled parked long-poll after connection loss.")
	}
}
