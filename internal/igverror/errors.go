// Package igverror defines the fault taxonomy shared by the range
// translator, the stream relay, and the object store, plus helpers for
// writing the terminal HTTP responses each fault maps to.
//
// Faults split into two classes with materially different handling:
// pre-header faults produce a well-formed HTTP error response, while
// post-header faults can only abort the connection, since the status
// line is already committed.
package igverror

import (
	"errors"
	"fmt"
	"net/http"
)

// Pre-header fault values surfaced by the object store.
var (
	// ErrObjectNotFound means the target object is absent in the store.
	ErrObjectNotFound = errors.New("object not found")

	// ErrUpstreamFailure means the store failed before any client byte
	// was written. Not retried within the request; ranged GET is
	// idempotent so the client owns retry.
	ErrUpstreamFailure = errors.New("upstream store failure")
)

// Post-header fault values surfaced by the stream relay.
var (
	// ErrClientDisconnect means a write to the client failed. Benign:
	// the relay stops, the upstream read is abandoned, nothing is
	// reported to a client that is already gone.
	ErrClientDisconnect = errors.New("client disconnected during relay")
)

// ShortReadError reports that the upstream stream ended before the
// committed Content-Length was transferred. The connection must be
// aborted since the success status is already on the wire.
type ShortReadError struct {
	Want int64
	Got  int64
}

func (e *ShortReadError) Error() string {
	return fmt.Sprintf("upstream short read: got %d of %d bytes", e.Got, e.Want)
}

// NotFound writes the terminal 404 response: empty body, regardless of
// any Range header on the request.
func NotFound(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNotFound)
}

// UnsatisfiableRange writes the terminal 416 response with the
// Content-Range form RFC 7233 requires for an unsatisfiable range.
func UnsatisfiableRange(writer http.ResponseWriter, size int64) {
	writer.Header().Set("Content-Range", fmt.Sprintf("bytes */%d", size))
	writer.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
}

// BadGateway writes the terminal 502 response. Only valid before any
// body byte has been committed.
func BadGateway(writer http.ResponseWriter, msg *string) {
	if msg != nil {
		http.Error(writer, *msg, http.StatusBadGateway)
		return
	}
	writer.WriteHeader(http.StatusBadGateway)
}
