/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific request-handling or directory errors both
internally within the server and in responses to clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body is not well-formed JSON.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing content after the JSON document.
	ErrExtraContentInBody = 1004

	// ErrRequestEntityTooLarge indicates that the request body exceeded the server limit.
	ErrRequestEntityTooLarge = 1005

	// ErrRateLimitExceeded indicates that the request rate exceeded the configured limit.
	ErrRateLimitExceeded = 1006

	// ErrUnknownOperation indicates that no recognized operation key was present
	// in the signal envelope.
	ErrUnknownOperation = 1007
)

// 2xxx: Directory and Signaling Business Logic Errors
const (
	// ErrNameEmpty indicates a register call with a missing or blank name.
	ErrNameEmpty = 2101

	// ErrNameInUse indicates that the requested name is held by a different user.
	ErrNameInUse = 2102

	// ErrNameNotFound indicates that no registered user holds the target name.
	ErrNameNotFound = 2103

	// ErrUnknownUserID indicates that the supplied id does not resolve to a
	// registered user.
	ErrUnknownUserID = 2104
)

// 4xxx: Routing Errors
const (
	// ErrRouteNotFound indicates that the request path matched no registered route.
	ErrRouteNotFound = 4001
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000
)
