package igvmenu

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/umccr/igv-server/internal/awsutils"
)

// ErrExperimentNotFound is returned when the named experiment does not
// exist in the metadata store.
var ErrExperimentNotFound = errors.New("experiment not found")

// MetadataStore is the tabular metadata capability the menu needs.
type MetadataStore interface {
	ListExperiments(ctx context.Context) ([]Experiment, error)
	ListSamples(ctx context.Context, experiment string) ([]Sample, error)
}

// Service renders the IGV data registry and per-experiment resource
// menus, caching rendered menus so the metadata store is not hit on
// every browser refresh.
type Service struct {
	meta    MetadataStore
	baseURL string
	cache   *gocache.Cache
}

// NewService builds a menu service. baseURL is the public URL of this
// server, without a trailing slash; ttl bounds how stale a rendered
// menu may be.
func NewService(meta MetadataStore, baseURL string, ttl time.Duration) *Service {
	return &Service{
		meta:    meta,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		cache:   gocache.New(ttl, 2*ttl),
	}
}

type resourceXML struct {
	XMLName     xml.Name `xml:"Resource"`
	Name        string   `xml:"name,attr"`
	Path        string   `xml:"path,attr"`
	Index       string   `xml:"index,attr,omitempty"`
	Description string   `xml:"description,attr,omitempty"`
}

type globalXML struct {
	XMLName     xml.Name      `xml:"Global"`
	Name        string        `xml:"name,attr"`
	Description string        `xml:"description,attr,omitempty"`
	Version     string        `xml:"version,attr"`
	Resources   []resourceXML `xml:"Resource"`
}

// Registry returns the browser's entry point: one /xml/<experiment>
// URL per experiment, newline joined.
func (s *Service) Registry(ctx context.Context) (string, error) {
	expts, err := s.meta.ListExperiments(ctx)
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(expts))
	for _, expt := range expts {
		lines = append(lines, s.baseURL+"/xml/"+url.PathEscape(expt.Name))
	}
	return strings.Join(lines, "\n"), nil
}

// ExperimentXML renders the resource menu for one experiment: every
// sample's BAM as a Resource pointing back through the proxy, with the
// index sibling alongside, sorted by sample name. Rendered documents
// are cached.
func (s *Service) ExperimentXML(ctx context.Context, experiment string) ([]byte, error) {
	if doc, found := s.cache.Get(experiment + "_xml"); found {
		return doc.([]byte), nil
	}

	expts, err := s.meta.ListExperiments(ctx)
	if err != nil {
		return nil, err
	}
	var expt *Experiment
	for i := range expts {
		if expts[i].Name == experiment {
			expt = &expts[i]
			break
		}
	}
	if expt == nil {
		return nil, ErrExperimentNotFound
	}

	samples, err := s.meta.ListSamples(ctx, experiment)
	if err != nil {
		return nil, err
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].Name < samples[j].Name })

	menu := globalXML{
		Name:        expt.Name,
		Description: expt.Description,
		Version:     "1",
	}
	for _, sample := range samples {
		key, err := objectKey(sample.BAM)
		if err != nil || key == "" {
			continue
		}
		menu.Resources = append(menu.Resources, resourceXML{
			Name:        sample.Name,
			Path:        s.baseURL + "/files/" + key,
			Index:       s.baseURL + "/files/" + awsutils.IndexKey(key),
			Description: sample.Description,
		})
	}

	body, err := xml.MarshalIndent(menu, "", "  ")
	if err != nil {
		return nil, err
	}
	doc := append([]byte(xml.Header), body...)

	s.cache.SetDefault(experiment+"_xml", doc)
	return doc, nil
}

// objectKey extracts the object key from an S3 url such as
// s3://bucket/path/to/sample.bam.
func objectKey(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing BAM url %q: %w", raw, err)
	}
	return strings.TrimPrefix(u.Path, "/"), nil
}
