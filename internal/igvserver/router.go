package igvserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/umccr/igv-server/internal/igvconstants"
)

func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.Origins(),
		AllowedMethods: []string{igvconstants.GetMethod, igvconstants.HeadMethod},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{
			igvconstants.HeaderContentRange,
			igvconstants.HeaderContentLength,
			igvconstants.HeaderAcceptRanges,
		},
	}))

	r.Get(igvconstants.APIEndpointFiles, s.getFile)
	r.Head(igvconstants.APIEndpointFiles, s.headFile)
	r.Get(igvconstants.APIEndpointExperimentXML, s.getExperimentXML)
	r.Get(igvconstants.APIEndpointDataRegistry, s.getDataRegistry)
	r.Get(igvconstants.APIEndpointServiceInfo, s.getServiceInfo)
	r.Method(igvconstants.GetMethod, igvconstants.APIEndpointMetrics, promhttp.Handler())
	r.Get(igvconstants.APIEndpointLiveness, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}
