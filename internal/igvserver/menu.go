package igvserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/umccr/igv-server/internal/igvconstants"
	"github.com/umccr/igv-server/internal/igvlog"
	"github.com/umccr/igv-server/internal/igvmenu"
)

// getDataRegistry is the browser's entry point: a newline-separated
// list of per-experiment menu URLs.
func (s *Server) getDataRegistry(writer http.ResponseWriter, request *http.Request) {
	registry, err := s.menu.Registry(request.Context())
	if err != nil {
		igvlog.Error("data registry: %v", err)
		http.Error(writer, "metadata store unavailable", http.StatusBadGateway)
		return
	}
	writer.Header().Set(igvconstants.HeaderContentType, igvconstants.ContentTypeText)
	_, _ = writer.Write([]byte(registry))
}

// getExperimentXML serves the resource menu for one experiment.
func (s *Server) getExperimentXML(writer http.ResponseWriter, request *http.Request) {
	experiment := chi.URLParam(request, "experiment")

	doc, err := s.menu.ExperimentXML(request.Context(), experiment)
	if err != nil {
		if errors.Is(err, igvmenu.ErrExperimentNotFound) {
			http.Error(writer, fmt.Sprintf("Experiment %s not found", experiment), http.StatusNotFound)
			return
		}
		igvlog.Error("experiment menu %s: %v", experiment, err)
		http.Error(writer, "metadata store unavailable", http.StatusBadGateway)
		return
	}

	writer.Header().Set(igvconstants.HeaderContentType, igvconstants.ContentTypeXML)
	_, _ = writer.Write(doc)
}
