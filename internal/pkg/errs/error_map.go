/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to
standardize HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every
// application error code. The key is the error code (int), and the value
// carries the user message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Request body is not valid JSON.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large.", Status: http.StatusRequestEntityTooLarge},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},
	ErrUnknownOperation:      {Code: ErrUnknownOperation, Message: "unknown request parameters", Status: http.StatusBadRequest},

	// 2xxx: Directory and Signaling Business Logic Errors
	ErrNameEmpty:     {Code: ErrNameEmpty, Message: "name missing or empty", Status: http.StatusBadRequest},
	ErrNameInUse:     {Code: ErrNameInUse, Message: "name in use", Status: http.StatusBadRequest},
	ErrNameNotFound:  {Code: ErrNameNotFound, Message: "name not found", Status: http.StatusBadRequest},
	ErrUnknownUserID: {Code: ErrUnknownUserID, Message: "unknown user id", Status: http.StatusBadRequest},

	// 4xxx: Routing Errors
	ErrRouteNotFound: {Code: ErrRouteNotFound, Message: "Not found.", Status: http.StatusNotFound},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
