package igvconstants

import "time"

// HTTP methods used by the router.
const (
	GetMethod  = "GET"
	HeadMethod = "HEAD"
)

// Header names.
const (
	HeaderRange         = "Range"
	HeaderAcceptRanges  = "Accept-Ranges"
	HeaderContentRange  = "Content-Range"
	HeaderContentLength = "Content-Length"
	HeaderContentType   = "Content-Type"
)

// Content types.
const (
	ContentTypeBinary = "application/octet-stream"
	ContentTypeXML    = "application/xml"
	ContentTypeJSON   = "application/json"
	ContentTypeText   = "text/plain; charset=utf-8"
)

// BAMIndexSuffix is appended to a BAM object key to name its index
// object, as is standard practice.
const BAMIndexSuffix = ".bai"

// Relay defaults. The chunk size bounds per-request memory; the chunk
// timeout bounds how long a stalled peer can hold a connection.
const (
	DefaultChunkSize    = 64 * 1024
	DefaultChunkTimeout = 30 * time.Second
)

// DefaultMenuTTL matches the original menu cache lifetime.
const DefaultMenuTTL = 24 * time.Hour

// API endpoints.
const (
	APIEndpointFiles         = "/files/*"
	APIEndpointExperimentXML = "/xml/{experiment}"
	APIEndpointDataRegistry  = "/data_registry"
	APIEndpointServiceInfo   = "/service-info"
	APIEndpointMetrics       = "/metrics"
	APIEndpointLiveness      = "/livez"
)
