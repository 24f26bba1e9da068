package model

import (
	"github.com/venicegeo/geojson-go/geojson"
)

// GeoJSONFeatureCreator is an interface for data that can convert itself to a GeoJSON feature
type GeoJSONFeatureCreator interface {
	GeoJSONFeature() (*geojson.Feature, error)
}

// GeoJSONFeatureCollectionCreator is an interface for data that can convert itself to a GeoJSON feature collection
type GeoJSONFeatureCollectionCreator interface {
	GeoJSONFeatureCollection() (*geojson.FeatureCollection, error)
}

// GeoJSONFeature implements the GeoJSONFeatureCreator interface
func (fp Footprint) GeoJSONFeature() (*geojson.Feature, error) {
	geometry, err := geojson.Parse(fp.Geometry)
	if err != nil {
		return nil, err
	}
	f := geojson.NewFeature(geometry, fp.GranuleID, map[string]interface{}{
		"acquiredDate":    fp.AcquiredDate.Format(StandardTimeLayout),
		"flightDirection": string(fp.FlightDirection),
		"platform":        fp.Platform,
	})
	f.Bbox = f.ForceBbox()
	return f, nil
}

// GeoJSONFeature implements the GeoJSONFeatureCreator interface
func (sf ShrunkFootprint) GeoJSONFeature() (*geojson.Feature, error) {
	raw, err := sf.Geometry.GeoJSON()
	if err != nil {
		return nil, err
	}
	geometry, err := geojson.Parse(raw)
	if err != nil {
		return nil, err
	}
	f := geojson.NewFeature(geometry, sf.SourceID, map[string]interface{}{
		"acquiredDate": sf.AcquiredDate.Format(StandardTimeLayout),
		"sourceID":     sf.SourceID,
	})
	f.Bbox = f.ForceBbox()
	return f, nil
}

// MultiFootprintResult is a container type for bundling multiple footprints
// together, e.g. as the output of a search or planning operation
type MultiFootprintResult struct {
	FeatureCreators []GeoJSONFeatureCreator
}

// GeoJSONFeatureCollection implements the GeoJSONFeatureCollectionCreator interface
func (result MultiFootprintResult) GeoJSONFeatureCollection() (*geojson.FeatureCollection, error) {
	var err error
	features := make([]*geojson.Feature, len(result.FeatureCreators))
	for i, creator := range result.FeatureCreators {
		features[i], err = creator.GeoJSONFeature()
		if err != nil {
			return nil, err
		}
	}

	return geojson.NewFeatureCollection(features), nil
}
