// Package geocode implements the external geocoding provider client.
package geocode

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"starburger/config"
	"starburger/internal/domain/service"
	"starburger/internal/errors"

	"github.com/paulmach/orb"
)

const defaultTimeout = 10 * time.Second

// client talks to a Yandex-style geocoding HTTP API. The API key and
// base URL come from the injected config, never from process globals.
type client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient is the constructor for the geocoding provider client.
func NewClient(cfg *config.GeocoderConfig, logger *slog.Logger) service.Geocoder {
	timeout := defaultTimeout
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}

	return &client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// geocodeResponse mirrors the provider's JSON document down to the one
// field this client needs.
type geocodeResponse struct {
	Response struct {
		GeoObjectCollection struct {
			FeatureMember []struct {
				GeoObject struct {
					Point struct {
						Pos string `json:"pos"` // Space-separated "<longitude> <latitude>".
					} `json:"Point"`
				} `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

// Fetch asks the provider for the most relevant candidate for the address.
// A (nil, nil) return means the provider answered and found nothing;
// every transport or protocol failure wraps service.ErrProviderUnavailable
// so callers never mistake an outage for a confirmed no-match.
func (c *client) Fetch(ctx context.Context, address string) (*orb.Point, error) {
	query := url.Values{}
	query.Set("geocode", address)
	query.Set("apikey", c.apiKey)
	query.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build geocode request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(service.ErrProviderUnavailable, "geocode request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Wrapf(service.ErrProviderUnavailable, "geocode provider returned status %d", resp.StatusCode)
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, errors.Wrapf(service.ErrProviderUnavailable, "malformed geocode response: %v", err)
	}

	candidates := decoded.Response.GeoObjectCollection.FeatureMember
	if len(candidates) == 0 {
		c.logger.Debug("geocode provider found no match", slog.String("address", address))

		return nil, nil
	}

	point, err := parsePos(candidates[0].GeoObject.Point.Pos)
	if err != nil {
		return nil, errors.Wrapf(service.ErrProviderUnavailable, "malformed geocode point: %v", err)
	}

	return point, nil
}

// parsePos parses the provider's "<longitude> <latitude>" pair.
// Longitude comes first on the wire.
func parsePos(pos string) (*orb.Point, error) {
	fields := strings.Fields(pos)
	if len(fields) != 2 {
		return nil, errors.Errorf("expected 2 coordinates, got %d", len(fields))
	}

	lng, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return nil, errors.Wrap(err, "parse longitude")
	}

	lat, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return nil, errors.Wrap(err, "parse latitude")
	}

	point := orb.Point{lng, lat}

	return &point, nil
}
