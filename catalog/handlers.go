package catalog

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/venicegeo/bf-s1-mosaic/catalog/db"
	"github.com/venicegeo/bf-s1-mosaic/model"
	"github.com/venicegeo/bf-s1-mosaic/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// DiscoverHandler is a handler for /localindex/discover
// @Title localIndexDiscoverHandler
// @Description discovers scene footprints from the local index
// @Accept  plain
// @Param   bbox            query   string  true         "The bounding box, as a GeoJSON Bounding box (x1,y1,x2,y2)"
// @Param   acquiredDate    query   string  true         "The minimum (earliest) acquired date, as RFC 3339"
// @Param   maxAcquiredDate query   string  true         "The maximum acquired date, as RFC 3339"
// @Success 200 {object}  geojson.FeatureCollection
// @Failure 400 {object}  string
// @Router /localindex/discover [get]
type DiscoverHandler struct {
	Context Context
}

// NewDiscoverHandler creates a new handler using the given DB connection
// provider
func NewDiscoverHandler(connectionProvider db.ConnectionProvider) (*DiscoverHandler, error) {
	database, err := connectionProvider(&util.BasicLogContext{})
	if err != nil {
		return nil, err
	}
	return &DiscoverHandler{Context: Context{DB: database}}, nil
}

// ServeHTTP implements the http.Handler interface for the DiscoverHandler type
func (h DiscoverHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	bbox, err := geojson.NewBoundingBox(r.FormValue("bbox"))
	if err != nil {
		message := fmt.Sprintf("The bbox value of %v is invalid", r.FormValue("bbox"))
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
		return
	}

	window := model.TimeWindow{}
	if window.Start, err = time.Parse(time.RFC3339, r.FormValue("acquiredDate")); err != nil {
		message := fmt.Sprintf("Acquired date value of %v is invalid.", r.FormValue("acquiredDate"))
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
		return
	}
	if window.End, err = time.Parse(time.RFC3339, r.FormValue("maxAcquiredDate")); err != nil {
		message := fmt.Sprintf("Acquired date value of %v is invalid.", r.FormValue("maxAcquiredDate"))
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
		return
	}

	tx, err := h.Context.DB.Begin()
	if err != nil {
		message := fmt.Sprintf("Could not begin DB transaction: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}
	defer tx.Commit()

	footprints, err := DiscoverScenes(tx, bbox, window)
	if err != nil {
		message := fmt.Sprintf("Error searching for scenes: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		tx.Rollback()
		return
	}

	creators := make([]model.GeoJSONFeatureCreator, len(footprints))
	for i, footprint := range footprints {
		creators[i] = footprint
	}
	featureCollection, err := model.MultiFootprintResult{FeatureCreators: creators}.GeoJSONFeatureCollection()
	if err != nil {
		message := fmt.Sprintf("Error converting to feature collection: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(featureCollection.String()))
}

// MetadataHandler is a handler for /localindex/{id}
// @Title localIndexMetadataHandler
// @Description returns a single indexed scene footprint
// @Accept  plain
// @Param   id            path   string  true         "The granule ID of the requested scene"
// @Success 200 {object}  geojson.Feature
// @Failure 404 {object}  string
// @Router /localindex/{id} [get]
type MetadataHandler struct {
	Context Context
}

// NewMetadataHandler creates a new handler using the given DB connection
// provider
func NewMetadataHandler(connectionProvider db.ConnectionProvider) (*MetadataHandler, error) {
	database, err := connectionProvider(&util.BasicLogContext{})
	if err != nil {
		return nil, err
	}
	return &MetadataHandler{Context: Context{DB: database}}, nil
}

// ServeHTTP implements the http.Handler interface for the MetadataHandler type
func (h MetadataHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	granuleID, ok := mux.Vars(r)["id"]
	if !ok {
		message := "No granule ID found in URL"
		util.LogAlert(&h.Context, message)
		util.HTTPError(r, w, &h.Context, message, http.StatusNotFound)
		return
	}

	tx, err := h.Context.DB.Begin()
	if err != nil {
		message := fmt.Sprintf("Could not begin DB transaction: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}
	defer tx.Commit()

	footprint, err := GetScene(tx, granuleID)
	if err == sql.ErrNoRows {
		message := fmt.Sprintf("Scene not found: %s", granuleID)
		util.LogInfo(&h.Context, message)
		util.HTTPError(r, w, &h.Context, message, http.StatusNotFound)
		tx.Rollback()
		return
	}
	if err != nil {
		message := fmt.Sprintf("Server error searching for scene: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		tx.Rollback()
		return
	}

	feature, err := footprint.GeoJSONFeature()
	if err != nil {
		message := fmt.Sprintf("Error converting metadata to geojson: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(feature.String()))
}
