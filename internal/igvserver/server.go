// Package igvserver wires the HTTP surface: the byte-range file proxy,
// the menu endpoints the genome browser loads, and the operational
// endpoints (service info, metrics, liveness).
package igvserver

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/umccr/igv-server/internal/igvconfig"
	"github.com/umccr/igv-server/internal/igvlog"
)

// ObjectStore is the minimal object-store capability the proxy
// consumes: size lookup and a streaming ranged read. Nothing else
// (listing, tags, versioning) is depended on.
type ObjectStore interface {
	HeadObject(ctx context.Context, key string) (int64, error)
	GetObjectRange(ctx context.Context, key string, start, end int64) (io.ReadCloser, error)
}

// MenuService supplies the rendered browser menus.
type MenuService interface {
	Registry(ctx context.Context) (string, error)
	ExperimentXML(ctx context.Context, experiment string) ([]byte, error)
}

type Server struct {
	cfg    *igvconfig.Config
	store  ObjectStore
	menu   MenuService
	server *http.Server
}

func New(cfg *igvconfig.Config, store ObjectStore, menu MenuService) *Server {
	s := &Server{cfg: cfg, store: store, menu: menu}
	s.server = &http.Server{
		Addr:    cfg.Addr,
		Handler: s.router(),
		// no WriteTimeout: BAM streams run for minutes; stalls are
		// bounded per chunk inside the relay instead
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
	return s
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Run() {
	igvlog.Info("listening on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		igvlog.Error("server: %v", err)
	}
}

func (s *Server) Close(ctx context.Context) {
	if err := s.server.Shutdown(ctx); err != nil {
		igvlog.Error("forced to shutdown: %v", err)
		return
	}
	igvlog.Info("exited gracefully")
}
