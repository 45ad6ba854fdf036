/*
Package randx provides generation of unique identifiers.

User ids are standard UUID v4 strings. Ids supplied by clients are opaque to
the server and pass through unchanged.
*/
package randx

import "github.com/google/uuid"

// UserID generates a fresh globally-unique user identifier.
func UserID() string {
	return uuid.New().String()
}
