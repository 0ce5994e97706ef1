// Package igvmenu builds the hierarchical experiment/sample menus the
// genome browser loads, from an Airtable metadata base. The proxy core
// has no dependency on this package; the menu only hands the browser
// proxy URLs to fetch.
package igvmenu

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/umccr/igv-server/internal/igvlog"
)

// Experiment is one row of the experiments table.
type Experiment struct {
	Name        string
	Description string
}

// Sample is one row of the samples table. BAM holds the S3 url of the
// sample's alignment file.
type Sample struct {
	Name        string
	Description string
	BAM         string
}

// AirtableClient talks to the Airtable REST API with bearer auth.
type AirtableClient struct {
	endpoint         string
	apiKey           string
	experimentsTable string
	samplesTable     string
	experimentField  string
	client           *http.Client
}

func NewAirtableClient(endpoint, apiKey, experimentsTable, samplesTable, experimentField string) *AirtableClient {
	return &AirtableClient{
		endpoint:         endpoint,
		apiKey:           apiKey,
		experimentsTable: experimentsTable,
		samplesTable:     samplesTable,
		experimentField:  experimentField,
		client:           &http.Client{Timeout: 15 * time.Second},
	}
}

type airtableFields struct {
	Name        string `json:"Name"`
	Description string `json:"Description"`
	BAM         string `json:"BAM"`
}

type airtableRecord struct {
	Fields airtableFields `json:"fields"`
}

type airtablePage struct {
	Records []airtableRecord `json:"records"`
}

func (c *AirtableClient) get(ctx context.Context, table string, params url.Values) (*airtablePage, error) {
	reqURL := c.endpoint + table + "/"
	if enc := params.Encode(); enc != "" {
		reqURL += "?" + enc
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("airtable %s returned %d", table, res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	page := new(airtablePage)
	if err := json.Unmarshal(body, page); err != nil {
		return nil, err
	}
	return page, nil
}

// ListExperiments retrieves every experiment's name and description.
func (c *AirtableClient) ListExperiments(ctx context.Context) ([]Experiment, error) {
	params := url.Values{}
	params.Add("fields[]", "Name")
	params.Add("fields[]", "Description")

	page, err := c.get(ctx, c.experimentsTable, params)
	if err != nil {
		return nil, err
	}

	expts := make([]Experiment, 0, len(page.Records))
	for _, rec := range page.Records {
		expts = append(expts, Experiment{
			Name:        rec.Fields.Name,
			Description: rec.Fields.Description,
		})
	}
	igvlog.Debug("airtable returned %d experiments", len(expts))
	return expts, nil
}

// ListSamples retrieves the samples linked to one experiment.
func (c *AirtableClient) ListSamples(ctx context.Context, experiment string) ([]Sample, error) {
	params := url.Values{}
	params.Set("filterByFormula", fmt.Sprintf("{%s} = %q", c.experimentField, experiment))
	params.Add("fields[]", "Name")
	params.Add("fields[]", "Description")
	params.Add("fields[]", "BAM")

	page, err := c.get(ctx, c.samplesTable, params)
	if err != nil {
		return nil, err
	}

	samples := make([]Sample, 0, len(page.Records))
	for _, rec := range page.Records {
		samples = append(samples, Sample{
			Name:        rec.Fields.Name,
			Description: rec.Fields.Description,
			BAM:         rec.Fields.BAM,
		})
	}
	igvlog.Debug("airtable returned %d samples for experiment %s", len(samples), experiment)
	return samples, nil
}
