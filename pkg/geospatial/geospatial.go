package geospatial

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
)

// ErrNoGeometry is returned when a GeoJSON document carries no geometry
var ErrNoGeometry = errors.New("invalid GeoJSON: no geometry")

// ParseBoundary parses a GeoJSON Feature, FeatureCollection or bare geometry.
// Feature collections are merged into a single MultiPolygon of their areal
// members.
func ParseBoundary(geojsonStr string) (orb.Geometry, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal([]byte(geojsonStr), &probe); err != nil {
		return nil, err
	}

	switch probe.Type {
	case "Feature":
		feature, err := geojson.UnmarshalFeature([]byte(geojsonStr))
		if err != nil {
			return nil, err
		}
		if feature.Geometry == nil {
			return nil, ErrNoGeometry
		}
		return feature.Geometry, nil
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection([]byte(geojsonStr))
		if err != nil {
			return nil, err
		}
		var merged orb.MultiPolygon
		for _, f := range fc.Features {
			switch g := f.Geometry.(type) {
			case orb.Polygon:
				merged = append(merged, g)
			case orb.MultiPolygon:
				merged = append(merged, g...)
			}
		}
		if len(merged) == 0 {
			return nil, ErrNoGeometry
		}
		return merged, nil
	case "":
		return nil, fmt.Errorf("invalid GeoJSON: missing type")
	default:
		geometry, err := geojson.UnmarshalGeometry([]byte(geojsonStr))
		if err != nil {
			return nil, err
		}
		if geometry.Coordinates == nil {
			return nil, ErrNoGeometry
		}
		return geometry.Coordinates, nil
	}
}

// CalculateArea returns the geodesic area in square meters of a lon/lat geometry
func CalculateArea(geometry orb.Geometry) float64 {
	return geo.Area(geometry)
}

// ConvertToHectares converts square meters to hectares
func ConvertToHectares(sqMeters float64) float64 {
	return sqMeters / 10000
}

// AreaHectares parses a boundary and returns its area in hectares
func AreaHectares(geojsonStr string) (float64, error) {
	geometry, err := ParseBoundary(geojsonStr)
	if err != nil {
		return 0, err
	}
	return ConvertToHectares(CalculateArea(geometry)), nil
}
