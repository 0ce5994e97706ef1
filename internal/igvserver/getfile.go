package igvserver

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/umccr/igv-server/internal/igvconstants"
	"github.com/umccr/igv-server/internal/igverror"
	"github.com/umccr/igv-server/internal/igvlog"
	"github.com/umccr/igv-server/internal/igvmetrics"
	"github.com/umccr/igv-server/internal/igvproxy"
)

// getFile is the byte-range proxy: translate the Range header against
// the object's current size, open a bounded upstream read, commit the
// response headers, then relay. Faults before the headers are
// committed get a well-formed error status; faults after can only
// abort the connection.
func (s *Server) getFile(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	key := chi.URLParam(request, "*")
	if key == "" {
		igverror.NotFound(writer)
		return
	}

	size, err := s.store.HeadObject(ctx, key)
	if err != nil {
		if errors.Is(err, igverror.ErrObjectNotFound) {
			igvlog.Debug("%s: not found", key)
			igverror.NotFound(writer)
			return
		}
		igvlog.Error("%s: head failed: %v", key, err)
		igverror.BadGateway(writer, nil)
		return
	}

	rangeHeader := request.Header.Get(igvconstants.HeaderRange)
	igvlog.Debug("%s: range=%q size=%d", key, rangeHeader, size)

	writer.Header().Set(igvconstants.HeaderAcceptRanges, "bytes")
	writer.Header().Set(igvconstants.HeaderContentType, igvconstants.ContentTypeBinary)

	translation := igvproxy.Translate(rangeHeader, size)
	if !translation.Satisfiable() {
		igverror.UnsatisfiableRange(writer, size)
		return
	}

	// open upstream before committing the status line so a failed
	// open can still surface as 502
	var body io.ReadCloser
	if translation.ContentLength > 0 {
		body, err = s.store.GetObjectRange(ctx, key, translation.Spec.Start, translation.Spec.End)
		if err != nil {
			if errors.Is(err, igverror.ErrObjectNotFound) {
				igverror.NotFound(writer)
				return
			}
			igvlog.Error("%s: open range %d-%d failed: %v", key, translation.Spec.Start, translation.Spec.End, err)
			igverror.BadGateway(writer, nil)
			return
		}
		defer body.Close()
	}

	if translation.ContentRange != "" {
		writer.Header().Set(igvconstants.HeaderContentRange, translation.ContentRange)
	}
	writer.Header().Set(igvconstants.HeaderContentLength, strconv.FormatInt(translation.ContentLength, 10))
	writer.WriteHeader(translation.Status)

	if translation.ContentLength == 0 {
		return
	}

	written, err := igvproxy.Relay(writer, body, translation.ContentLength, s.cfg.ChunkSize, s.cfg.ChunkTimeout)
	igvmetrics.BytesRelayed.Add(float64(written))

	switch {
	case err == nil:
		igvlog.Debug("%s: relayed %d bytes", key, written)
	case errors.Is(err, igverror.ErrClientDisconnect):
		// expected and benign: the client went away, stop quietly
		igvmetrics.RelayFaults.WithLabelValues("client_disconnect").Inc()
		igvlog.Debug("%s: client disconnected after %d of %d bytes", key, written, translation.ContentLength)
	default:
		// short read or stalled upstream: the success status is
		// already on the wire, so the only correct move is to
		// abort the connection
		igvmetrics.RelayFaults.WithLabelValues("short_read").Inc()
		igvlog.Error("%s: %v", key, err)
		panic(http.ErrAbortHandler)
	}
}

// headFile answers the browser's size probe with the object's full
// length and range support, no body.
func (s *Server) headFile(writer http.ResponseWriter, request *http.Request) {
	key := chi.URLParam(request, "*")
	if key == "" {
		igverror.NotFound(writer)
		return
	}

	size, err := s.store.HeadObject(request.Context(), key)
	if err != nil {
		if errors.Is(err, igverror.ErrObjectNotFound) {
			igverror.NotFound(writer)
			return
		}
		igvlog.Error("%s: head failed: %v", key, err)
		igverror.BadGateway(writer, nil)
		return
	}

	writer.Header().Set(igvconstants.HeaderAcceptRanges, "bytes")
	writer.Header().Set(igvconstants.HeaderContentType, igvconstants.ContentTypeBinary)
	writer.Header().Set(igvconstants.HeaderContentLength, strconv.FormatInt(size, 10))
	writer.WriteHeader(http.StatusOK)
}
