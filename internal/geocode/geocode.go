// Package geocode resolves free-text place names and "lat,lon" literals to
// geographic coordinates. The network path uses the public Nominatim API.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/SimosManiatis/vitrify/internal/engine"
	"github.com/SimosManiatis/vitrify/internal/logging"
)

// ErrNotFound is returned when the geocoder has no match for the query.
var ErrNotFound = errors.New("location not found")

// Resolver turns a location description into coordinates.
type Resolver interface {
	Resolve(ctx context.Context, query string) (engine.Location, error)
}

// ParseLatLon parses a "lat,lon" literal. It reports ok=false for anything
// that is not two comma-separated floats, so callers can fall through to a
// place-name lookup.
func ParseLatLon(s string) (engine.Location, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return engine.Location{}, false
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return engine.Location{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return engine.Location{}, false
	}

	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return engine.Location{}, false
	}

	return engine.Location{Lat: lat, Lon: lon}, true
}

const (
	defaultBaseURL = "https://nominatim.openstreetmap.org"
	userAgent      = "vitrify/1.0 (IGU recovery emissions estimator)"
	defaultTimeout = 10 * time.Second
)

// NominatimResolver resolves place names via the Nominatim search API.
// The zero value is not usable; construct with NewNominatimResolver.
type NominatimResolver struct {
	baseURL string
	client  *http.Client
}

// Option configures a NominatimResolver.
type Option func(*NominatimResolver)

// WithBaseURL overrides the API endpoint (tests, self-hosted instances).
func WithBaseURL(u string) Option {
	return func(r *NominatimResolver) { r.baseURL = u }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(r *NominatimResolver) { r.client = c }
}

// NewNominatimResolver constructs a resolver against the public Nominatim
// endpoint with a request timeout.
func NewNominatimResolver(opts ...Option) *NominatimResolver {
	r := &NominatimResolver{
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type nominatimHit struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Resolve looks the query up, short-circuiting on "lat,lon" literals without
// touching the network.
func (r *NominatimResolver) Resolve(ctx context.Context, query string) (engine.Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return engine.Location{}, fmt.Errorf("%w: empty query", ErrNotFound)
	}

	if loc, ok := ParseLatLon(query); ok {
		return loc, nil
	}

	log := logging.FromContext(ctx)
	log.Debug().
		Str("component", "geocode").
		Str("query", query).
		Msg("resolving place name")

	u := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", r.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return engine.Location{}, fmt.Errorf("building geocode request: %w", err)
	}
	// Nominatim's usage policy requires an identifying user agent.
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return engine.Location{}, fmt.Errorf("geocoding %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return engine.Location{}, fmt.Errorf("geocoding %q: unexpected status %s", query, resp.Status)
	}

	var hits []nominatimHit
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		return engine.Location{}, fmt.Errorf("decoding geocode response for %q: %w", query, err)
	}

	if len(hits) == 0 {
		return engine.Location{}, fmt.Errorf("%w: %q", ErrNotFound, query)
	}

	lat, err := strconv.ParseFloat(hits[0].Lat, 64)
	if err != nil {
		return engine.Location{}, fmt.Errorf("parsing geocode latitude %q: %w", hits[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(hits[0].Lon, 64)
	if err != nil {
		return engine.Location{}, fmt.Errorf("parsing geocode longitude %q: %w", hits[0].Lon, err)
	}

	loc := engine.Location{Lat: lat, Lon: lon}
	log.Debug().
		Str("component", "geocode").
		Str("query", query).
		Float64("lat", loc.Lat).
		Float64("lon", loc.Lon).
		Msg("resolved")

	return loc, nil
}

// StaticResolver resolves from a fixed table. Used in tests and for offline
// runs.
type StaticResolver map[string]engine.Location

// Resolve returns the table entry or ErrNotFound, after trying the "lat,lon"
// literal form.
func (s StaticResolver) Resolve(_ context.Context, query string) (engine.Location, error) {
	if loc, ok := ParseLatLon(query); ok {
		return loc, nil
	}
	if loc, ok := s[strings.ToLower(strings.TrimSpace(query))]; ok {
		return loc, nil
	}
	return engine.Location{}, fmt.Errorf("%w: %q", ErrNotFound, query)
}
