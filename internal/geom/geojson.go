package geom

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"citymap/internal/catalog"
	"citymap/internal/scene"
)

// ReadGeoJSON extracts typed points from GeoJSON.
// Supports: Point, MultiPoint, Feature, FeatureCollection. The object type
// comes from the feature's "type" (or "kind") property; features without a
// known type are skipped.
func ReadGeoJSON(r io.Reader) ([]scene.Object, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}
	t, _ := raw["type"].(string)
	if t == "" {
		return nil, fmt.Errorf("geojson: missing type")
	}

	var recs []record
	parsePoint := func(v any) (pt [2]float64, ok bool) {
		if a, ok := v.([]any); ok && len(a) >= 2 {
			x, xok := a[0].(float64)
			y, yok := a[1].(float64)
			if xok && yok {
				return [2]float64{x, y}, true
			}
		}
		return [2]float64{}, false
	}
	parseMulti := func(v any) (pts [][2]float64) {
		arr, _ := v.([]any)
		for _, el := range arr {
			if pt, ok := parsePoint(el); ok {
				pts = append(pts, pt)
			}
		}
		return pts
	}
	walkFeature := func(fm map[string]any) {
		props, _ := fm["properties"].(map[string]any)
		typ, ok := featureType(props)
		if !ok {
			return
		}
		id := featureID(fm, props)
		g, _ := fm["geometry"].(map[string]any)
		gt, _ := g["type"].(string)
		switch gt {
		case "Point":
			if pt, ok := parsePoint(g["coordinates"]); ok {
				recs = append(recs, record{id: id, typ: typ, x: pt[0], y: pt[1]})
			}
		case "MultiPoint":
			// ids only identify single points
			for _, pt := range parseMulti(g["coordinates"]) {
				recs = append(recs, record{typ: typ, x: pt[0], y: pt[1]})
			}
		}
	}

	switch t {
	// bare geometry has no properties; treat it as houses
	case "Point":
		if pt, ok := parsePoint(raw["coordinates"]); ok {
			recs = append(recs, record{typ: catalog.House, x: pt[0], y: pt[1]})
		}
	case "MultiPoint":
		for _, pt := range parseMulti(raw["coordinates"]) {
			recs = append(recs, record{typ: catalog.House, x: pt[0], y: pt[1]})
		}
	case "Feature":
		walkFeature(raw)
	case "FeatureCollection":
		fs, _ := raw["features"].([]any)
		for _, f := range fs {
			if fm, ok := f.(map[string]any); ok {
				walkFeature(fm)
			}
		}
	default:
		return nil, fmt.Errorf("geojson: unsupported type %q", t)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("geojson: %w", ErrNoObjects)
	}
	return build(recs), nil
}

func featureType(props map[string]any) (catalog.Type, bool) {
	for _, k := range []string{"type", "kind"} {
		if s, ok := props[k].(string); ok {
			if t, err := catalog.Parse(strings.ToLower(strings.TrimSpace(s))); err == nil {
				return t, true
			}
		}
	}
	return "", false
}

func featureID(fm, props map[string]any) int64 {
	for _, v := range []any{fm["id"], props["id"]} {
		if f, ok := v.(float64); ok && f == math.Trunc(f) && f > 0 {
			return int64(f)
		}
	}
	return 0
}

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string         `json:"type"`
	ID         int64          `json:"id"`
	Geometry   pointGeometry  `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type pointGeometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// WriteGeoJSON writes objs as a FeatureCollection of Points in canvas units.
func WriteGeoJSON(w io.Writer, objs []scene.Object) error {
	fc := featureCollection{Type: "FeatureCollection", Features: make([]feature, 0, len(objs))}
	for _, o := range objs {
		fc.Features = append(fc.Features, feature{
			Type:     "Feature",
			ID:       o.ID,
			Geometry: pointGeometry{Type: "Point", Coordinates: [2]float64{o.X, o.Y}},
			Properties: map[string]any{
				"type":  string(o.Type),
				"label": o.Label,
				"color": o.Color,
				"size":  o.Size,
			},
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(fc)
}
