// Package geo loads the state boundary polygons used by the choropleth.
package geo

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb/geojson"
)

// NameProperty is the feature property joined against state names.
const NameProperty = "name"

// Sentinel kinds for boundary loading errors.
var (
	ErrLoad        = errors.New("load boundaries failed")
	ErrMissingName = errors.New("feature has no name property")
)

// Boundaries is a read-only polygon collection keyed by feature name.
type Boundaries struct {
	fc    *geojson.FeatureCollection
	names map[string]struct{}
}

// Load reads a GeoJSON FeatureCollection from path.
func Load(ctx context.Context, path string) (*Boundaries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Parse decodes a FeatureCollection. Every feature must carry a string name.
func Parse(data []byte) (*Boundaries, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return New(fc)
}

// New wraps an already decoded collection.
func New(fc *geojson.FeatureCollection) (*Boundaries, error) {
	b := &Boundaries{fc: fc, names: make(map[string]struct{}, len(fc.Features))}
	for i, f := range fc.Features {
		name, ok := Name(f)
		if !ok {
			return nil, fmt.Errorf("%w: feature %d", ErrMissingName, i)
		}
		b.names[name] = struct{}{}
	}
	return b, nil
}

// Name returns the feature's name property.
func Name(f *geojson.Feature) (string, bool) {
	v, ok := f.Properties[NameProperty].(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Len returns the number of features.
func (b *Boundaries) Len() int { return len(b.fc.Features) }

// Has reports whether a polygon with that name exists.
func (b *Boundaries) Has(name string) bool {
	_, ok := b.names[name]
	return ok
}

// Names returns feature names in collection order.
func (b *Boundaries) Names() []string {
	out := make([]string, 0, len(b.fc.Features))
	for _, f := range b.fc.Features {
		name, _ := Name(f)
		out = append(out, name)
	}
	return out
}

// Clone returns a copy whose features have their own property maps.
// Geometries are shared; they are never written.
func (b *Boundaries) Clone() *geojson.FeatureCollection {
	out := geojson.NewFeatureCollection()
	out.BBox = b.fc.BBox
	for _, f := range b.fc.Features {
		out.Append(&geojson.Feature{
			ID:         f.ID,
			Type:       f.Type,
			BBox:       f.BBox,
			Geometry:   f.Geometry,
			Properties: f.Properties.Clone(),
		})
	}
	return out
}
