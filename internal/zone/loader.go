package zone

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// maxDatasetBytes bounds a downloaded boundary dataset.
const maxDatasetBytes = 256 << 20

// Load parses a GeoJSON FeatureCollection and indexes its Polygon and
// MultiPolygon features under the given id property. Other geometry types are
// skipped. Numeric ids are rendered without a fraction ("5", not "5.0").
func Load(r io.Reader, idProperty string) (*Index, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read boundary dataset: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode boundary dataset: %w", err)
	}

	zones := make([]Zone, 0, len(fc.Features))
	for i, f := range fc.Features {
		var polys orb.MultiPolygon
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			polys = orb.MultiPolygon{g}
		case orb.MultiPolygon:
			polys = g
		default:
			continue
		}

		id, ok := propertyID(f.Properties, idProperty)
		if !ok {
			return nil, fmt.Errorf("feature %d: missing or empty property %q", i, idProperty)
		}
		zones = append(zones, Zone{ID: id, Polygons: polys})
	}
	return New(zones)
}

// LoadFile loads a dataset from disk.
func LoadFile(path, idProperty string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open boundary dataset: %w", err)
	}
	defer f.Close()

	ix, err := Load(f, idProperty)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ix, nil
}

// LoadURL fetches a dataset over HTTP(S).
func LoadURL(ctx context.Context, client *http.Client, url, idProperty string) (*Index, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch boundary dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch boundary dataset: status %d: %s", resp.StatusCode, body)
	}

	ix, err := Load(io.LimitReader(resp.Body, maxDatasetBytes), idProperty)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	return ix, nil
}

// Open loads from a URL when source starts with http:// or https://, and from
// a file otherwise.
func Open(ctx context.Context, source, idProperty string, timeout time.Duration) (*Index, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return LoadURL(ctx, &http.Client{Timeout: timeout}, source, idProperty)
	}
	return LoadFile(source, idProperty)
}

func propertyID(props geojson.Properties, key string) (string, bool) {
	switch v := props[key].(type) {
	case string:
		v = strings.TrimSpace(v)
		return v, v != ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	default:
		return "", false
	}
}
