package igvproxy

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/umccr/igv-server/internal/igverror"
)

// Relay drives exactly want bytes from the upstream stream to the
// client connection in chunkSize increments, in ascending offset
// order. The whole range is never materialized; each chunk is read and
// written before the next is requested, which is what propagates
// client backpressure to the upstream read.
//
// chunkTimeout bounds how long a single chunk may take on either side:
// a write deadline is armed per chunk, and a stalled upstream read is
// broken by closing src, which fails the pending Read.
//
// Return values classify the fault per the two post-header classes:
// igverror.ErrClientDisconnect when the client side fails (benign),
// *igverror.ShortReadError when upstream ends before want bytes.
// Relay does not close src on normal return; the caller owns it.
func Relay(w http.ResponseWriter, src io.ReadCloser, want int64, chunkSize int, chunkTimeout time.Duration) (int64, error) {
	rc := http.NewResponseController(w)
	buf := make([]byte, chunkSize)

	var written int64
	for written < want {
		limit := int64(chunkSize)
		if rem := want - written; rem < limit {
			limit = rem
		}

		guard := time.AfterFunc(chunkTimeout, func() { src.Close() })
		n, readErr := src.Read(buf[:limit])
		guard.Stop()

		if n > 0 {
			// deadline errors are best effort: not every
			// ResponseWriter supports deadlines
			_ = rc.SetWriteDeadline(time.Now().Add(chunkTimeout))
			wn, writeErr := w.Write(buf[:n])
			written += int64(wn)
			if writeErr != nil {
				return written, igverror.ErrClientDisconnect
			}
			if flushErr := rc.Flush(); flushErr != nil && !errors.Is(flushErr, http.ErrNotSupported) {
				return written, igverror.ErrClientDisconnect
			}
		}

		if readErr != nil {
			if readErr == io.EOF && written == want {
				break
			}
			return written, &igverror.ShortReadError{Want: want, Got: written}
		}
	}

	return written, nil
}
