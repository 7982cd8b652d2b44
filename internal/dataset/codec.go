package dataset

import (
	"fmt"
	"math"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Reserved GeoJSON property keys. Every other property is a tag.
const (
	PropID       = "@id"
	PropVersion  = "@version"
	PropDeleted  = "@deleted"
	PropModified = "@modified"
)

// Decode parses a GeoJSON FeatureCollection into a dataset.
//
// Polygons without holes and LineStrings become footprints; a LineString is
// only closed when its last point repeats the first. Other features are kept
// and written back unchanged, after the footprints, by Encode. Features
// without an ID get a fresh local (negative) ID below every ID in the file.
func Decode(data []byte) (*Dataset, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feature collection: %w", err)
	}

	ds := &Dataset{index: make(map[int64]int)}
	var (
		decoded []*Footprint
		pending []bool
		lowest  int64
	)

	for i, f := range fc.Features {
		ring, ok := footprintRing(f.Geometry)
		if !ok {
			ds.extras = append(ds.extras, f)
			continue
		}

		fp := &Footprint{Ring: ring, Tags: make(map[string]string)}
		id, hasID, err := featureID(f)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		fp.ID = id
		if hasID && id < lowest {
			lowest = id
		}

		for key, value := range f.Properties {
			switch key {
			case PropID:
			case PropVersion:
				fp.Version = f.Properties.MustInt(PropVersion, 0)
			case PropDeleted:
				fp.Deleted = f.Properties.MustBool(PropDeleted, false)
			case PropModified:
				fp.Modified = f.Properties.MustBool(PropModified, false)
			default:
				fp.Tags[key] = tagValue(value)
			}
		}

		decoded = append(decoded, fp)
		pending = append(pending, !hasID)
	}

	for i, fp := range decoded {
		if pending[i] {
			lowest--
			fp.ID = lowest
		}
		if err := ds.Add(fp); err != nil {
			return nil, err
		}
	}

	return ds, nil
}

// Encode writes the dataset as a GeoJSON FeatureCollection.
func Encode(ds *Dataset) ([]byte, error) {
	fc := geojson.NewFeatureCollection()

	for _, fp := range ds.footprints {
		var geom orb.Geometry = orb.LineString(fp.Ring)
		if fp.IsClosed() {
			geom = orb.Polygon{fp.Ring}
		}

		f := geojson.NewFeature(geom)
		f.ID = fp.ID
		for key, value := range fp.Tags {
			f.Properties[key] = value
		}
		if fp.Version > 0 {
			f.Properties[PropVersion] = fp.Version
		}
		if fp.Deleted {
			f.Properties[PropDeleted] = true
		}
		if fp.Modified {
			f.Properties[PropModified] = true
		}
		fc.Append(f)
	}

	for _, f := range ds.extras {
		fc.Append(f)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode feature collection: %w", err)
	}
	return data, nil
}

// footprintRing extracts a ring from geometries that can be footprints.
func footprintRing(g orb.Geometry) (orb.Ring, bool) {
	switch geom := g.(type) {
	case orb.Polygon:
		if len(geom) != 1 {
			return nil, false
		}
		return CloneRing(geom[0]), true
	case orb.Ring:
		return CloneRing(geom), true
	case orb.LineString:
		return CloneRing(orb.Ring(geom)), true
	default:
		return nil, false
	}
}

// featureID reads the record identity from the feature id or the @id property.
func featureID(f *geojson.Feature) (int64, bool, error) {
	raw := f.ID
	if raw == nil {
		raw = f.Properties[PropID]
	}

	switch v := raw.(type) {
	case nil:
		return 0, false, nil
	case float64:
		if v != math.Trunc(v) {
			return 0, false, fmt.Errorf("non-integer id %v", v)
		}
		return int64(v), true, nil
	case int:
		return int64(v), true, nil
	case int64:
		return v, true, nil
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false, fmt.Errorf("invalid id %q: %w", v, err)
		}
		return id, true, nil
	default:
		return 0, false, fmt.Errorf("unsupported id type %T", raw)
	}
}

func tagValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
