/*
Package directory contains the core logic of the signaling service.

This file defines the User record and its public projection.
*/
package directory

import (
	"encoding/json"
	"time"
)

// User is the authoritative record for one registered participant.
// queue and pending are only touched while holding the directory lock; in
// steady state they are never both non-empty, since delivery drains the queue
// into the pending slot whenever both are present.
type User struct {
	// ID is the opaque, stable identifier (caller-supplied or generated).
	ID string

	// Name is the display name, unique case-insensitively among active users.
	Name string

	// Time is the moment of the last register or rename.
	Time time.Time

	// seq is the registration order, used as a stable sort tie-breaker.
	seq uint64

	// queue holds pending message payloads in FIFO order.
	queue []Message

	// pending is the at-most-one outstanding long-poll handle.
	pending *Waiter
}

// Projection is the public view of a user, as carried in all_users lists and
// directory-change events. OldName is set only for the renamed user itself.
type Projection struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	OldName string `json:"old_name,omitempty"`
}

// WaitResult is the response body of a fulfilled wait: the drained batch.
type WaitResult struct {
	Messages []json.RawMessage `json:"messages"`
}
