/*
Package directory contains the core logic of the signaling service: the
in-memory user directory, the per-user message queues, and the long-poll
delivery engine that pushes asynchronous events to clients over plain
request/response exchanges.
*/
package directory

import "encoding/json"

// Kind tags a relayed message by the operation or event that produced it.
// The payload itself is opaque to the server.
type Kind string

const (
	KindOffer      Kind = "offer"
	KindAnswer     Kind = "answer"
	KindReject     Kind = "reject"
	KindRegister   Kind = "register"
	KindUnregister Kind = "unregister"
)

// Message is a single pending item in a user's delivery queue. Messages are
// never delivered individually; the whole queue is released as one batch.
type Message struct {
	Kind    Kind
	Payload json.RawMessage
}
