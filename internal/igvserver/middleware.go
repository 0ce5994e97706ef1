package igvserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/umccr/igv-server/internal/igvlog"
	"github.com/umccr/igv-server/internal/igvmetrics"
)

// metaWriter captures the committed status and body size for logging
// and metrics. Unwrap keeps http.ResponseController working through
// the wrapper.
type metaWriter struct {
	http.ResponseWriter
	status int
	size   int64
}

func (m *metaWriter) WriteHeader(code int) {
	if m.status == 0 {
		m.status = code
	}
	m.ResponseWriter.WriteHeader(code)
}

func (m *metaWriter) Write(b []byte) (int, error) {
	if m.status == 0 {
		m.status = http.StatusOK
	}
	n, err := m.ResponseWriter.Write(b)
	m.size += int64(n)
	return n, err
}

func (m *metaWriter) Unwrap() http.ResponseWriter {
	return m.ResponseWriter
}

// requestLogger tags each request with an id, logs start/finish, and
// records the request metrics.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		start := time.Now()

		igvmetrics.InFlight.Inc()
		defer igvmetrics.InFlight.Dec()

		mw := &metaWriter{ResponseWriter: w}
		defer func() {
			// runs on the panic path too, so aborted relays are
			// still counted before Recoverer re-panics
			pattern := chi.RouteContext(r.Context()).RoutePattern()
			igvmetrics.RequestsTotal.WithLabelValues(pattern, strconv.Itoa(mw.status)).Inc()
			igvlog.Info("req_id=%s method=%s path=%q status=%d size=%d duration_ms=%d",
				reqID, r.Method, r.URL.Path, mw.status, mw.size, time.Since(start).Milliseconds())
		}()

		next.ServeHTTP(mw, r)
	})
}
