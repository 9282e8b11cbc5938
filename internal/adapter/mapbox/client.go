package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/fbp-service/internal/observability"
)

// DefaultBaseURL is the Tilequery endpoint for the Mapbox Terrain tileset.
const DefaultBaseURL = "https://api.mapbox.com/v4/mapbox.mapbox-terrain-v2/tilequery"

// Client implements domain.ElevationSource using the Mapbox Tilequery API.
// Elevation is read from the terrain tileset's contour layer.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Mapbox elevation client.
func NewClient(token string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: DefaultBaseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// Elevation returns the ground elevation in metres at lat/lon. The point
// lies inside every contour polygon at or below its height, so the highest
// returned contour is used. found is false when the tile has no contours
// there (open water, missing coverage).
func (c *Client) Elevation(ctx context.Context, lat, lon float64) (float64, bool, error) {
	// Mapbox uses lon,lat order.
	u := fmt.Sprintf("%s/%.6f,%.6f.json", c.baseURL, lon, lat)
	params := url.Values{
		"access_token": {c.token},
		"layers":       {"contour"},
		"limit":        {"50"},
	}

	start := time.Now()
	resp, err := c.doRequest(ctx, u+"?"+params.Encode())
	c.metrics.ElevationAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.ElevationRequests.WithLabelValues("error").Inc()
		return 0, false, err
	}

	elev, found := highestContour(resp)
	if !found {
		c.metrics.ElevationRequests.WithLabelValues("empty").Inc()
		c.logger.Debug("no contour at location", "lat", lat, "lon", lon)
		return 0, false, nil
	}
	c.metrics.ElevationRequests.WithLabelValues("success").Inc()
	return elev, true, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (tilequeryResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return tilequeryResponse{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return tilequeryResponse{}, fmt.Errorf("tilequery request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		return tilequeryResponse{}, fmt.Errorf("mapbox API error: status %d: %s", resp.StatusCode, body)
	}

	var out tilequeryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return tilequeryResponse{}, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}

func highestContour(resp tilequeryResponse) (float64, bool) {
	var best float64
	found := false
	for _, f := range resp.Features {
		if f.Properties.Ele == nil {
			continue
		}
		if !found || *f.Properties.Ele > best {
			best = *f.Properties.Ele
			found = true
		}
	}
	return best, found
}

// Mapbox Tilequery response types.

type tilequeryResponse struct {
	Features []feature `json:"features"`
}

type feature struct {
	Properties featureProperties `json:"properties"`
}

type featureProperties struct {
	Ele *float64 `json:"ele"` // metres
}
