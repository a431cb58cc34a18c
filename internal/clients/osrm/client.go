// Package osrm is a client for the OSRM match API, used to snap loosely
// drawn route traces onto the underlying road network.
//
// Large traces are split into overlapping windows because OSRM rejects
// requests with too many coordinates. A window that fails to match is
// retried with progressively smaller sub-windows before the whole call
// is given up on. Match failures are soft: callers are expected to fall
// back to local interpolation, so every failure surfaces as ErrNoMatch
// rather than a hard transport error.
package osrm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/twpayne/go-polyline"
	"go.uber.org/zap"

	"github.com/davaotransit/routekit/internal/lib/geo"
)

const (
	// DefaultChunkSize keeps each request comfortably under OSRM's
	// 100-coordinate limit.
	DefaultChunkSize = 80

	// DefaultTimeout bounds a single match request. A hung OSRM server
	// shows up as a match failure, not a stuck run.
	DefaultTimeout = 60 * time.Second

	// chunkOverlap is the number of points shared between adjacent
	// windows so OSRM has context to match the seam consistently.
	chunkOverlap = 5

	// retryFloor is the window size below which a failed match is no
	// longer split further.
	retryFloor = 20

	// matchRadiusM is the per-point search radius sent to OSRM.
	matchRadiusM = 50
)

// ErrNoMatch indicates OSRM could not produce a road-snapped geometry
// for the trace. All client failures, transport errors included, wrap
// this sentinel so callers can treat them uniformly as "fall back".
var ErrNoMatch = errors.New("osrm: no match for trace")

// GeometryFormat selects how OSRM encodes matched geometries.
type GeometryFormat string

const (
	// GeometryGeoJSON requests plain coordinate lists.
	GeometryGeoJSON GeometryFormat = "geojson"
	// GeometryPolyline requests Google encoded polylines (OSRM's
	// native default), decoded with twpayne/go-polyline.
	GeometryPolyline GeometryFormat = "polyline"
)

// HTTPDoer abstracts the HTTP client for testing.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client calls an OSRM-compatible match endpoint.
type Client struct {
	baseURL string
	http    HTTPDoer
	log     *zap.Logger

	// ChunkSize is the maximum coordinates per request.
	ChunkSize int
	// Profile is the OSRM routing profile, normally "driving".
	Profile string
	// Geometries selects the response geometry encoding.
	Geometries GeometryFormat
}

// NewClient creates a client for the OSRM server at baseURL.
func NewClient(baseURL string, log *zap.Logger) *Client {
	return NewClientWithHTTPDoer(baseURL, &http.Client{Timeout: DefaultTimeout}, log)
}

// NewClientWithHTTPDoer creates a client with a caller-supplied HTTP
// implementation, used by tests to stub the server.
func NewClientWithHTTPDoer(baseURL string, doer HTTPDoer, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		http:       doer,
		log:        log,
		ChunkSize:  DefaultChunkSize,
		Profile:    "driving",
		Geometries: GeometryGeoJSON,
	}
}

// Match snaps an ordered coordinate trace onto the road network and
// returns the dense matched geometry. Traces longer than ChunkSize are
// matched in overlapping windows and stitched back together without
// duplicate seam points. Any failure returns an error wrapping
// ErrNoMatch.
func (c *Client) Match(ctx context.Context, coords []geo.Point) ([]geo.Point, error) {
	if len(coords) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 coordinates, got %d", ErrNoMatch, len(coords))
	}
	chunkSize := c.ChunkSize
	if chunkSize <= chunkOverlap {
		// The window loop only advances while windows are larger than
		// the overlap.
		chunkSize = DefaultChunkSize
	}
	return c.matchSpan(ctx, coords, chunkSize)
}

// matchSpan matches coords using windows of at most chunkSize points.
// A failed window larger than retryFloor is re-matched with the window
// size halved; the explicit shrinking size parameter bounds the
// recursion depth.
func (c *Client) matchSpan(ctx context.Context, coords []geo.Point, chunkSize int) ([]geo.Point, error) {
	if len(coords) <= chunkSize {
		return c.matchOnce(ctx, coords)
	}

	var merged []geo.Point
	for i := 0; i < len(coords); {
		end := i + chunkSize
		if end > len(coords) {
			end = len(coords)
		}
		window := coords[i:end]

		leg, err := c.matchOnce(ctx, window)
		if err != nil {
			if len(window) <= retryFloor {
				return nil, err
			}
			c.log.Warn("match window failed, splitting",
				zap.Int("start", i), zap.Int("end", end), zap.Int("retry_size", len(window)/2))
			leg, err = c.matchSpan(ctx, window, len(window)/2)
			if err != nil {
				return nil, err
			}
		}

		// Windows overlap, so drop points that repeat the last one
		// already stitched in.
		for _, p := range leg {
			if len(merged) == 0 || merged[len(merged)-1] != p {
				merged = append(merged, p)
			}
		}

		if end < len(coords) {
			i = end - chunkOverlap
		} else {
			i = end
		}
	}

	if len(merged) == 0 {
		return nil, ErrNoMatch
	}
	return merged, nil
}

// matchOnce issues a single match request for a trace that fits in one
// window.
func (c *Client) matchOnce(ctx context.Context, coords []geo.Point) ([]geo.Point, error) {
	if len(coords) < 2 {
		return nil, fmt.Errorf("%w: window too small", ErrNoMatch)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.matchURL(coords), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoMatch, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("osrm request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrNoMatch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status %d", ErrNoMatch, resp.StatusCode)
	}

	var body matchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoMatch, err)
	}
	if body.Code != "Ok" || len(body.Matchings) == 0 {
		return nil, fmt.Errorf("%w: code %q, %d matchings", ErrNoMatch, body.Code, len(body.Matchings))
	}

	// A single trace may split into several matched sub-paths; stitch
	// them into one polyline, collapsing duplicate boundary points.
	var geom []geo.Point
	for _, m := range body.Matchings {
		pts, err := c.decodeGeometry(m.Geometry)
		if err != nil {
			return nil, err
		}
		for _, p := range pts {
			if len(geom) == 0 || geom[len(geom)-1] != p {
				geom = append(geom, p)
			}
		}
	}
	if len(geom) == 0 {
		return nil, fmt.Errorf("%w: empty geometry", ErrNoMatch)
	}
	return geom, nil
}

// matchURL builds the request URL. OSRM takes lon,lat pairs in the path
// and a per-coordinate search radius.
func (c *Client) matchURL(coords []geo.Point) string {
	pairs := make([]string, len(coords))
	radiuses := make([]string, len(coords))
	for i, p := range coords {
		pairs[i] = strconv.FormatFloat(p.Lon, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lat, 'f', -1, 64)
		radiuses[i] = strconv.Itoa(matchRadiusM)
	}
	return fmt.Sprintf("%s/match/v1/%s/%s?geometries=%s&overview=full&radiuses=%s",
		c.baseURL, c.Profile, strings.Join(pairs, ";"), c.Geometries, strings.Join(radiuses, ";"))
}

func (c *Client) decodeGeometry(raw json.RawMessage) ([]geo.Point, error) {
	if c.Geometries == GeometryPolyline {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return nil, fmt.Errorf("%w: polyline geometry: %v", ErrNoMatch, err)
		}
		coords, _, err := polyline.DecodeCoords([]byte(encoded))
		if err != nil {
			return nil, fmt.Errorf("%w: polyline decode: %v", ErrNoMatch, err)
		}
		pts := make([]geo.Point, len(coords))
		for i, pair := range coords {
			pts[i] = geo.Point{Lat: pair[0], Lon: pair[1]}
		}
		return pts, nil
	}

	var line lineString
	if err := json.Unmarshal(raw, &line); err != nil {
		return nil, fmt.Errorf("%w: geojson geometry: %v", ErrNoMatch, err)
	}
	pts := make([]geo.Point, 0, len(line.Coordinates))
	for _, pair := range line.Coordinates {
		if len(pair) < 2 {
			continue
		}
		// GeoJSON is lon,lat
		pts = append(pts, geo.Point{Lat: pair[1], Lon: pair[0]})
	}
	return pts, nil
}

// matchResponse is the subset of the OSRM match response the client
// consumes.
type matchResponse struct {
	Code      string     `json:"code"`
	Matchings []matching `json:"matchings"`
}

type matching struct {
	Geometry   json.RawMessage `json:"geometry"`
	Confidence float64         `json:"confidence"`
}

type lineString struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}
