package igvserver

import (
	"encoding/json"
	"net/http"

	"github.com/umccr/igv-server/internal/igvconstants"
	"github.com/umccr/igv-server/internal/igvlog"
)

type serviceInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
}

func (s *Server) getServiceInfo(writer http.ResponseWriter, _ *http.Request) {
	info := serviceInfo{
		ID:          "org.umccr.igv-server",
		Name:        "IGV menu and BAM range proxy",
		Description: "Serves IGV experiment menus and streams ranged reads of BAM objects from S3",
		Version:     "1.0.0",
	}

	writer.Header().Set(igvconstants.HeaderContentType, igvconstants.ContentTypeJSON)
	if err := json.NewEncoder(writer).Encode(info); err != nil {
		igvlog.Error("service info: %v", err)
	}
}
