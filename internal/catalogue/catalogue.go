// Package catalogue serves the read-only description of the API's endpoints.
package catalogue

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed endpoints.json
var endpointsJSON []byte

// Endpoint describes one route.
type Endpoint struct {
	Description     string          `json:"description"`
	Queries         []string        `json:"queries,omitempty"`
	BodyFormat      json.RawMessage `json:"bodyFormat,omitempty"`
	ExampleResponse json.RawMessage `json:"exampleResponse,omitempty"`
}

var (
	once      sync.Once
	endpoints map[string]Endpoint
	loadErr   error
)

// Endpoints returns the catalogue keyed by "METHOD /path". The embedded
// document is decoded once.
func Endpoints() (map[string]Endpoint, error) {
	once.Do(func() {
		endpoints, loadErr = parse(endpointsJSON)
	})
	return endpoints, loadErr
}

func parse(data []byte) (map[string]Endpoint, error) {
	var out map[string]Endpoint
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode endpoint catalogue: %w", err)
	}
	for name, ep := range out {
		if ep.Description == "" {
			return nil, fmt.Errorf("endpoint %q has no description", name)
		}
	}
	return out, nil
}
