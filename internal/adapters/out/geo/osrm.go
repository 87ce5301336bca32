// Package geo resolves drivable routes through an OSRM routing server.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"brewride/internal/core/domain/model/kernel"
)

// OsrmRoutePlanner implements RoutePlanner against the OSRM HTTP API.
// Routing is decoration on the tracking screen, so the client carries a
// short timeout and callers treat failures as "no route".
type OsrmRoutePlanner struct {
	baseURL    string
	httpClient *http.Client
}

// NewOsrmRoutePlanner creates a planner for the given OSRM base URL,
// e.g. "https://router.project-osrm.org". A nil client gets a default
// with a 5 second timeout.
func NewOsrmRoutePlanner(baseURL string, client *http.Client) *OsrmRoutePlanner {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}

	return &OsrmRoutePlanner{
		baseURL:    baseURL,
		httpClient: client,
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry struct {
			// Coordinates come back as lng/lat pairs per the GeoJSON spec.
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// Route returns the drivable path between two points as a polyline.
func (p *OsrmRoutePlanner) Route(ctx context.Context, start, end kernel.GeoPoint) ([]kernel.GeoPoint, error) {
	url := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=full&geometries=geojson",
		p.baseURL, start.Lng(), start.Lat(), end.Lng(), end.Lat())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("osrm returned status %d", resp.StatusCode)
	}

	var body osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	if body.Code != "Ok" || len(body.Routes) == 0 {
		return nil, fmt.Errorf("osrm found no route: %s", body.Code)
	}

	coordinates := body.Routes[0].Geometry.Coordinates
	route := make([]kernel.GeoPoint, 0, len(coordinates))
	for _, pair := range coordinates {
		if len(pair) != 2 {
			return nil, fmt.Errorf("osrm returned malformed coordinate pair")
		}

		point, err := kernel.NewGeoPoint(pair[1], pair[0])
		if err != nil {
			return nil, err
		}
		route = append(route, point)
	}

	return route, nil
}
