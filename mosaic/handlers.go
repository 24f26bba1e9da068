package mosaic

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/venicegeo/bf-s1-mosaic/asf"
	"github.com/venicegeo/bf-s1-mosaic/geometry"
	"github.com/venicegeo/bf-s1-mosaic/model"
	"github.com/venicegeo/bf-s1-mosaic/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// DiscoverHandler is a handler for /discover
// @Title discoverHandler
// @Description discovers Sentinel-1 scene footprints from the ASF catalog
// @Accept  plain
// @Param   bbox            query   string  true         "The bounding box, as a GeoJSON Bounding box (x1,y1,x2,y2)"
// @Param   acquiredDate    query   string  true         "The minimum (earliest) acquired date, as RFC 3339"
// @Param   maxAcquiredDate query   string  true         "The maximum acquired date, as RFC 3339"
// @Param   flightDirection query   string  false        "ASCENDING or DESCENDING"
// @Success 200 {object}  geojson.FeatureCollection
// @Failure 400 {object}  string
// @Router /discover [get]
type DiscoverHandler struct {
	Context    *Context
	ASFContext *asf.Context
}

// NewDiscoverHandler creates a new handler using configuration from
// environment variables
func NewDiscoverHandler() *DiscoverHandler {
	return &DiscoverHandler{
		Context:    &Context{},
		ASFContext: &asf.Context{BaseASFURL: util.GetASFAPIURL()},
	}
}

// ServeHTTP implements the http.Handler interface for the DiscoverHandler type
func (h DiscoverHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	options, _, err := searchOptionsFromRequest(r)
	if err != nil {
		util.LogSimpleErr(h.Context, "Invalid discover request.", err)
		util.HTTPError(r, w, h.Context, err.Error(), http.StatusBadRequest)
		return
	}

	footprints, err := asf.GetScenes(*options, h.ASFContext)
	if err != nil {
		message := fmt.Sprintf("Error searching for scenes: %v", err)
		util.LogSimpleErr(h.Context, message, err)
		util.HTTPError(r, w, h.Context, message, http.StatusBadGateway)
		return
	}

	creators := make([]model.GeoJSONFeatureCreator, len(footprints))
	for i, footprint := range footprints {
		creators[i] = footprint
	}
	writeFeatureCollection(w, r, h.Context, model.MultiFootprintResult{FeatureCreators: creators})
}

// PlanHandler is a handler for /plan
// @Title planHandler
// @Description plans a minimal full-coverage scene selection for the bbox region
// @Accept  plain
// @Param   bbox            query   string  true         "The target region bounding box (x1,y1,x2,y2)"
// @Param   acquiredDate    query   string  true         "The minimum (earliest) acquired date, as RFC 3339"
// @Param   maxAcquiredDate query   string  true         "The maximum acquired date, as RFC 3339"
// @Param   margin          query   string  false        "Shrink margin in meters per side (default 3000)"
// @Param   budget          query   string  false        "Solver iteration budget"
// @Success 200 {object}  geojson.FeatureCollection
// @Failure 409 {object}  string
// @Router /plan [get]
type PlanHandler struct {
	Context    *Context
	ASFContext *asf.Context
}

// NewPlanHandler creates a new handler using configuration from environment
// variables
func NewPlanHandler() *PlanHandler {
	return &PlanHandler{
		Context:    &Context{},
		ASFContext: &asf.Context{BaseASFURL: util.GetASFAPIURL()},
	}
}

// ServeHTTP implements the http.Handler interface for the PlanHandler type
func (h PlanHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	options, bbox, err := searchOptionsFromRequest(r)
	if err != nil {
		util.LogSimpleErr(h.Context, "Invalid plan request.", err)
		util.HTTPError(r, w, h.Context, err.Error(), http.StatusBadRequest)
		return
	}

	planContext := *h.Context
	if marginStr := r.FormValue("margin"); marginStr != "" {
		if planContext.MarginMeters, err = strconv.ParseFloat(marginStr, 64); err != nil || planContext.MarginMeters < 0 {
			message := fmt.Sprintf("The margin value of %v is invalid", marginStr)
			util.HTTPError(r, w, h.Context, message, http.StatusBadRequest)
			return
		}
	}
	if budgetStr := r.FormValue("budget"); budgetStr != "" {
		if planContext.MaxIterations, err = strconv.Atoi(budgetStr); err != nil || planContext.MaxIterations < 0 {
			message := fmt.Sprintf("The budget value of %v is invalid", budgetStr)
			util.HTTPError(r, w, h.Context, message, http.StatusBadRequest)
			return
		}
	}
	planner := NewPlanner(&planContext)

	footprints, err := asf.GetScenes(*options, h.ASFContext)
	if err != nil {
		message := fmt.Sprintf("Error searching for scenes: %v", err)
		util.LogSimpleErr(h.Context, message, err)
		util.HTTPError(r, w, h.Context, message, http.StatusBadGateway)
		return
	}

	region, err := RegionFromBoundingBox(planner.Context.Engine, bbox)
	if err != nil {
		util.LogSimpleErr(h.Context, "Could not build a region from the bbox.", err)
		util.HTTPError(r, w, h.Context, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := planner.Plan(r.Context(), region, options.TimeWindow, footprints)
	if coverageErr, ok := err.(*CoverageError); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":        coverageErr.Error(),
			"reason":       string(coverageErr.Reason),
			"residualArea": coverageErr.ResidualArea,
			"residual":     json.RawMessage(coverageErr.ResidualGeoJSON),
		})
		return
	}
	if err != nil {
		message := fmt.Sprintf("Error planning coverage: %v", err)
		util.LogSimpleErr(h.Context, message, err)
		util.HTTPError(r, w, h.Context, message, http.StatusInternalServerError)
		return
	}

	creators := make([]model.GeoJSONFeatureCreator, len(result.SelectedFootprints))
	for i, footprint := range result.SelectedFootprints {
		creators[i] = footprint
	}
	writeFeatureCollection(w, r, h.Context, model.MultiFootprintResult{FeatureCreators: creators})
}

func searchOptionsFromRequest(r *http.Request) (*asf.SearchOptions, geojson.BoundingBox, error) {
	bbox, err := geojson.NewBoundingBox(r.FormValue("bbox"))
	if err != nil {
		return nil, nil, fmt.Errorf("the bbox value of %v is invalid: %v", r.FormValue("bbox"), err)
	}

	window := model.TimeWindow{}
	if window.Start, err = time.Parse(time.RFC3339, r.FormValue("acquiredDate")); err != nil {
		return nil, nil, fmt.Errorf("the acquiredDate value of %v is invalid: %v", r.FormValue("acquiredDate"), err)
	}
	if window.End, err = time.Parse(time.RFC3339, r.FormValue("maxAcquiredDate")); err != nil {
		return nil, nil, fmt.Errorf("the maxAcquiredDate value of %v is invalid: %v", r.FormValue("maxAcquiredDate"), err)
	}
	if err = window.Validate(); err != nil {
		return nil, nil, err
	}

	options := asf.NewSearchOptions(bbox, window)
	if raw := r.FormValue("flightDirection"); raw != "" {
		if options.FlightDirection, err = model.ParseFlightDirection(raw); err != nil {
			return nil, nil, err
		}
	}
	if raw := r.FormValue("maxResults"); raw != "" {
		if options.MaxResults, err = strconv.Atoi(raw); err != nil {
			return nil, nil, fmt.Errorf("the maxResults value of %v is invalid", raw)
		}
	}
	return &options, bbox, nil
}

// RegionFromBoundingBox builds the rectangular target region geometry
// implied by a bounding box
func RegionFromBoundingBox(engine geometry.Engine, bbox geojson.BoundingBox) (geometry.Geometry, error) {
	if len(bbox) < 4 {
		return nil, fmt.Errorf("bounding box must have four values, got %v", bbox)
	}
	west, south, east, north := bbox[0], bbox[1], bbox[2], bbox[3]
	polygon := geojson.NewPolygon([][][]float64{{
		{west, south}, {east, south}, {east, north}, {west, north}, {west, south},
	}})
	raw, err := json.Marshal(polygon)
	if err != nil {
		return nil, err
	}
	return engine.ParseGeoJSON(raw)
}

func writeFeatureCollection(w http.ResponseWriter, r *http.Request, logContext util.LogContext, creator model.GeoJSONFeatureCollectionCreator) {
	featureCollection, err := creator.GeoJSONFeatureCollection()
	if err != nil {
		message := fmt.Sprintf("Error converting to feature collection: %v", err)
		util.LogSimpleErr(logContext, message, err)
		util.HTTPError(r, w, logContext, message, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(featureCollection.String()))
}
