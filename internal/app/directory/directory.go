/*
Package directory contains the core logic of the signaling service.

This file defines the Directory struct and the six state-mutating operations:
Register, Unregister, Offer, Answer, Reject, and Wait. Every operation
validates its input first and fails fast without side effects; mutations are
serialized under one directory-wide lock.
*/
package directory

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"lansignal/internal/pkg/errs"
	"lansignal/internal/pkg/logx"
	"lansignal/internal/pkg/randx"
)

// Directory is the authoritative in-memory store of registered users. It is
// the sole shared mutable structure of the service; every read-modify-write
// happens under mu, including fulfillment and cancellation of parked
// long-poll slots.
type Directory struct {
	mu sync.Mutex

	// users maps user id to the user record.
	users map[string]*User

	// seq assigns registration order, used as a stable sort tie-breaker.
	seq uint64

	// structured logger with Directory context.
	logger zerolog.Logger
}

// New constructs an empty Directory.
func New() *Directory {
	dirLogger := logx.Logger().With().Str("component", "Directory").Logger()

	return &Directory{
		users:  make(map[string]*User),
		logger: dirLogger,
	}
}

// RegisterResult is the response of a successful register, and also the event
// broadcast to every other user when the directory changed.
type RegisterResult struct {
	Self     Projection   `json:"self"`
	AllUsers []Projection `json:"all_users"`
}

// UnregisterEvent is the directory-change event broadcast to all remaining
// users when a registration is removed.
type UnregisterEvent struct {
	Unregister Projection   `json:"unregister"`
	AllUsers   []Projection `json:"all_users"`
}

// relayed payload shapes. The reject shape is nested while offer and answer
// are flat; clients depend on that asymmetry, so it is kept as is.
type offerRelay struct {
	Offer json.RawMessage `json:"offer"`
	Name  string          `json:"name"`
}

type answerRelay struct {
	Answer json.RawMessage `json:"answer"`
	Name   string          `json:"name"`
}

type rejectRelay struct {
	Reject rejectBody `json:"reject"`
}

type rejectBody struct {
	Name string `json:"name"`
}

// Register adds a user to the directory or renames an existing one.
//
// A missing id produces a freshly generated identifier. A name held
// case-insensitively by a different id is rejected; a user re-asserting their
// own name (changed or not) is allowed. On a rename, old_name appears both in
// the caller's response and in the event broadcast to the other users. The
// broadcast fires only for a new registration or an actual name change.
func (d *Directory) Register(id, name string) (*RegisterResult, *errs.CustomError) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.NewError(errs.ErrNameEmpty)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.nameInUseLocked(name, id) {
		return nil, errs.NewError(errs.ErrNameInUse)
	}

	if id == "" {
		id = randx.UserID()
	}

	now := time.Now()
	oldName := ""
	changed := false

	u, exists := d.users[id]
	if exists {
		if u.Name != name {
			oldName = u.Name
			u.Name = name
			changed = true
		}
		u.Time = now
	} else {
		d.seq++
		u = &User{ID: id, Name: name, Time: now, seq: d.seq}
		d.users[id] = u
		changed = true
	}

	result := &RegisterResult{
		Self:     Projection{ID: u.ID, Name: u.Name, OldName: oldName},
		AllUsers: d.publicListLocked(u.ID, oldName),
	}

	if changed {
		if payload, err := json.Marshal(result); err != nil {
			d.logger.Error().Err(err).Str("user_id", u.ID).Msg("Failed to marshal register event. Broadcast skipped.")
		} else {
			d.broadcastLocked(KindRegister, payload, u.ID)
		}
	}

	d.logger.Info().
		Str("user_id", u.ID).
		Str("name", u.Name).
		Str("old_name", oldName).
		Bool("new_registration", !exists).
		Msg("User registered.")

	return result, nil
}

// Unregister removes a user from the directory. An unknown id is a no-op that
// still reports success, making retries by clients harmless. A parked
// long-poll of the removed user is flushed with an empty batch, and all
// remaining users are notified of the directory change.
func (d *Directory) Unregister(id string) *errs.CustomError {
	if id == "" {
		return errs.NewError(errs.ErrInvalidParams)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.users[id]
	if !ok {
		return nil
	}

	delete(d.users, id)

	if u.pending != nil {
		u.pending.fulfill([]json.RawMessage{})
		u.pending = nil
	}

	event := UnregisterEvent{
		Unregister: Projection{Name: u.Name},
		AllUsers:   d.publicListLocked("", ""),
	}

	if payload, err := json.Marshal(event); err != nil {
		d.logger.Error().Err(err).Str("user_id", id).Msg("Failed to marshal unregister event. Broadcast skipped.")
	} else {
		d.broadcastLocked(KindUnregister, payload, id)
	}

	d.logger.Info().
		Str("user_id", id).
		Str("name", u.Name).
		Msg("User unregistered.")

	return nil
}

// Offer relays an opaque offer payload from the sender identified by id to
// the user holding the target name. Fire-and-forget: the caller gets an empty
// success whether or not the target is currently polling.
func (d *Directory) Offer(id string, offer json.RawMessage, name string) *errs.CustomError {
	if id == "" || name == "" || len(offer) == 0 {
		return errs.NewError(errs.ErrInvalidParams)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	sender, ok := d.users[id]
	if !ok {
		return errs.NewError(errs.ErrUnknownUserID)
	}

	target := d.lookupByNameLocked(name)
	if target == nil {
		return errs.NewError(errs.ErrNameNotFound)
	}

	payload, err := json.Marshal(offerRelay{Offer: offer, Name: sender.Name})
	if err != nil {
		return errs.NewError(errs.ErrUnknown, err)
	}

	d.enqueueLocked(target, Message{Kind: KindOffer, Payload: payload})
	d.deliverLocked(target)

	return nil
}

// Answer relays an opaque answer payload, symmetric to Offer.
func (d *Directory) Answer(id string, answer json.RawMessage, name string) *errs.CustomError {
	if id == "" || name == "" || len(answer) == 0 {
		return errs.NewError(errs.ErrInvalidParams)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	sender, ok := d.users[id]
	if !ok {
		return errs.NewError(errs.ErrUnknownUserID)
	}

	target := d.lookupByNameLocked(name)
	if target == nil {
		return errs.NewError(errs.ErrNameNotFound)
	}

	payload, err := json.Marshal(answerRelay{Answer: answer, Name: sender.Name})
	if err != nil {
		return errs.NewError(errs.ErrUnknown, err)
	}

	d.enqueueLocked(target, Message{Kind: KindAnswer, Payload: payload})
	d.deliverLocked(target)

	return nil
}

// Reject notifies the target that the sender declined their offer. The
// payload nests the sender name under a reject object.
func (d *Directory) Reject(id, name string) *errs.CustomError {
	if id == "" || name == "" {
		return errs.NewError(errs.ErrInvalidParams)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	sender, ok := d.users[id]
	if !ok {
		return errs.NewError(errs.ErrUnknownUserID)
	}

	target := d.lookupByNameLocked(name)
	if target == nil {
		return errs.NewError(errs.ErrNameNotFound)
	}

	payload, err := json.Marshal(rejectRelay{Reject: rejectBody{Name: sender.Name}})
	if err != nil {
		return errs.NewError(errs.ErrUnknown, err)
	}

	d.enqueueLocked(target, Message{Kind: KindReject, Payload: payload})
	d.deliverLocked(target)

	return nil
}

// Wait either drains the user's queue immediately or parks a long-poll slot.
//
// With queued messages present, the batch is returned at once and the waiter
// is nil. Otherwise a fresh Waiter is installed (superseding any older one
// with an empty batch) and returned; the transport blocks on it and must call
// CancelWait with the same instance if its connection drops first. The server
// itself never times a wait out.
func (d *Directory) Wait(id string) ([]json.RawMessage, *Waiter, *errs.CustomError) {
	if id == "" {
		return nil, nil, errs.NewError(errs.ErrInvalidParams)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.users[id]
	if !ok {
		return nil, nil, errs.NewError(errs.ErrUnknownUserID)
	}

	if len(u.queue) > 0 {
		return drainLocked(u), nil, nil
	}

	return nil, d.registerWaitLocked(u), nil
}

// Len returns the number of currently registered users.
func (d *Directory) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.users)
}

// Shutdown flushes every parked long-poll with an empty batch so in-flight
// wait requests complete and the HTTP server can drain during shutdown.
func (d *Directory) Shutdown() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, u := range d.users {
		if u.pending != nil {
			u.pending.fulfill([]json.RawMessage{})
			u.pending = nil
		}
	}

	d.logger.Info().Msg("Directory shutdown complete. All parked long-polls flushed.")
}
