/*
Package directory contains the core logic of the signaling service.

This file holds the registry helpers: lookups, the case-insensitive name
conflict scan, and construction of the sorted public user list. All helpers
suffixed Locked require the directory lock to be held by the caller.
*/
package directory

import (
	"sort"
	"strings"
)

// lookupByNameLocked finds a user by exact name match via linear scan.
// Returns nil when no user holds the name.
func (d *Directory) lookupByNameLocked(name string) *User {
	for _, u := range d.users {
		if u.Name == name {
			return u
		}
	}
	return nil
}

// nameInUseLocked reports whether name is already held, case-insensitively,
// by a user other than excludeID. A user re-asserting their own name is not a
// conflict.
func (d *Directory) nameInUseLocked(name string, excludeID string) bool {
	folded := strings.ToLower(name)
	for _, u := range d.users {
		if u.ID == excludeID {
			continue
		}
		if strings.ToLower(u.Name) == folded {
			return true
		}
	}
	return false
}

// publicListLocked builds the {name} projections of all registered users,
// sorted case-insensitively by name with ties resolved by registration order.
// When selfID matches a user and oldName is non-empty, that user's entry
// additionally carries old_name (a rename being announced).
func (d *Directory) publicListLocked(selfID, oldName string) []Projection {
	users := make([]*User, 0, len(d.users))
	for _, u := range d.users {
		users = append(users, u)
	}

	sort.Slice(users, func(i, j int) bool {
		ni := strings.ToLower(users[i].Name)
		nj := strings.ToLower(users[j].Name)
		if ni != nj {
			return ni < nj
		}
		return users[i].seq < users[j].seq
	})

	list := make([]Projection, 0, len(users))
	for _, u := range users {
		p := Projection{Name: u.Name}
		if oldName != "" && u.ID == selfID {
			p.OldName = oldName
		}
		list = append(list, p)
	}
	return list
}
