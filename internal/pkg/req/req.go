/*
Package req provides helper functions for HTTP request parsing and data binding.

It encapsulates JSON body decoding with a hard size limit and classifies parse
failures into the application error taxonomy.
*/
package req

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"lansignal/internal/pkg/errs"
)

// MaxRequestBodySize defines the maximum allowed size (1 MiB) for a request
// body. Oversized bodies are rejected and the connection is closed by
// http.MaxBytesReader.
const MaxRequestBodySize int64 = 1 << 20 // 1 MiB

// BindJSON decodes the JSON request body into the destination dst, enforcing
// MaxRequestBodySize. dst may be any JSON-decodable value, including an
// open-keyed map for envelope-style requests.
func BindJSON(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)

	decoder := json.NewDecoder(r.Body)

	if err := decoder.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return errs.NewError(errs.ErrRequestEntityTooLarge)
		}

		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}
