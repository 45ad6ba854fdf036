/*
Package directory contains the core logic of the signaling service.

This file implements the broadcast dispatcher: fan-out of directory-change
events to every registered user except the acting one.
*/
package directory

import "encoding/json"

// broadcastLocked enqueues payload for every registered user except excludeID
// and attempts delivery for each. It runs with the directory lock already held
// and only touches other users' queues and slots, so no further locking is
// involved and a fan-out triggered from inside an operation cannot deadlock.
//
// Delivery order across recipients is unspecified; for a single recipient the
// enqueue keeps FIFO order relative to that user's other messages.
func (d *Directory) broadcastLocked(kind Kind, payload json.RawMessage, excludeID string) {
	count := 0
	for id, u := range d.users {
		if id == excludeID {
			continue
		}

		d.enqueueLocked(u, Message{Kind: kind, Payload: payload})
		d.deliverLocked(u)
		count++
	}

	d.logger.Debug().
		Str("kind", string(kind)).
		Str("excluded_id", excludeID).
		Int("recipients", count).
		Msg("Broadcast fan-out complete.")
}
