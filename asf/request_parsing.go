package asf

import (
	"encoding/json"
	"fmt"

	"github.com/venicegeo/bf-s1-mosaic/model"
	"github.com/venicegeo/bf-s1-mosaic/util"
	"github.com/venicegeo/geojson-go/geojson"
)

func parseSearchResults(context *Context, body []byte) ([]model.Footprint, error) {
	featureCollection, err := asfRawBytesToFeatureCollection(context, body)
	if err != nil {
		return nil, err
	}

	footprints := make([]model.Footprint, 0, len(featureCollection.Features))
	for _, feature := range featureCollection.Features {
		footprint, err := footprintFromFeature(feature)
		if err != nil {
			return nil, util.LogSimpleErr(context, "Failed to parse an ASF scene record.", err)
		}
		footprints = append(footprints, *footprint)
	}

	return footprints, nil
}

func asfRawBytesToFeatureCollection(context *Context, body []byte) (*geojson.FeatureCollection, error) {
	var (
		parsed interface{}
		fc     *geojson.FeatureCollection
		ok     bool
		err    error
	)
	if parsed, err = geojson.Parse(body); err != nil {
		err = util.LogSimpleErr(context, fmt.Sprintf("Failed to parse GeoJSON.\n%v", string(body)), err)
		return nil, err
	}
	if fc, ok = parsed.(*geojson.FeatureCollection); !ok {
		asfErr := util.Error{SimpleMsg: fmt.Sprintf("Expected a FeatureCollection and got %T", parsed),
			Response: string(body)}
		err = asfErr.Log(context, "")
		return nil, err
	}
	return fc, nil
}

func footprintFromFeature(feature *geojson.Feature) (*model.Footprint, error) {
	granuleID := feature.PropertyString("sceneName")
	if granuleID == "" {
		granuleID = feature.PropertyString("fileID")
	}
	if granuleID == "" {
		return nil, fmt.Errorf("scene record has neither sceneName nor fileID")
	}

	acquiredDate, err := model.ParseASFTime(feature.PropertyString("startTime"))
	if err != nil {
		return nil, fmt.Errorf("scene %v: %v", granuleID, err)
	}

	flightDirection, err := model.ParseFlightDirection(feature.PropertyString("flightDirection"))
	if err != nil {
		return nil, fmt.Errorf("scene %v: %v", granuleID, err)
	}

	rawGeometry, err := json.Marshal(feature.Geometry)
	if err != nil {
		return nil, fmt.Errorf("scene %v: %v", granuleID, err)
	}

	return &model.Footprint{
		GranuleID:       granuleID,
		Geometry:        rawGeometry,
		AcquiredDate:    acquiredDate,
		FlightDirection: flightDirection,
		Platform:        feature.PropertyString("platform"),
	}, nil
}
