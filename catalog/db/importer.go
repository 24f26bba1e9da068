package db

import (
	"fmt"

	"github.com/venicegeo/bf-s1-mosaic/asf"
	"github.com/venicegeo/bf-s1-mosaic/model"
	"github.com/venicegeo/bf-s1-mosaic/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// Importer pulls scene footprints from the ASF catalog into the local index
// so that repeated planning runs over the same area do not re-query the
// remote service.
type Importer struct {
	asfContext     *asf.Context
	dbConnProvider ConnectionProvider
}

// NewImporter initializes a new importer.
func NewImporter(asfContext *asf.Context, dbConnProvider ConnectionProvider) *Importer {
	return &Importer{
		asfContext:     asfContext,
		dbConnProvider: dbConnProvider,
	}
}

// Import searches ASF for every scene intersecting the bounding box in the
// time window and upserts the results. Returns the number of scenes
// imported.
func (imp *Importer) Import(bbox geojson.BoundingBox, window model.TimeWindow) (int, error) {
	logContext := &util.BasicLogContext{}

	footprints, err := asf.GetScenes(asf.NewSearchOptions(bbox, window), imp.asfContext)
	if err != nil {
		return 0, err
	}
	if len(footprints) == 0 {
		util.LogInfo(logContext, "No scenes found to import.")
		return 0, nil
	}

	// The database connection is opened right before the ingest, and
	// closed immediately after.
	database, err := imp.dbConnProvider(logContext)
	if err != nil {
		return 0, fmt.Errorf("could not open database connection: %v", err)
	}
	defer database.Close()

	tx, err := database.Begin()
	if err != nil {
		return 0, err
	}
	for _, footprint := range footprints {
		if err = UpsertScene(tx, footprint); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("could not upsert scene %v: %v", footprint.GranuleID, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}

	util.LogInfo(logContext, fmt.Sprintf("Imported %d scene footprint(s) into the local index.", len(footprints)))
	return len(footprints), nil
}
