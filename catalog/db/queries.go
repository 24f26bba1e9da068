package db

import (
	"database/sql"

	"github.com/venicegeo/bf-s1-mosaic/model"
	"github.com/venicegeo/geojson-go/geojson"
)

// GetSceneByID returns a single indexed scene
func GetSceneByID(tx *sql.Tx, granuleID string) (*IndexedScene, error) {
	scene := IndexedScene{}

	rows, err := tx.Query(`
		SELECT granule_id, acquired_date, flight_direction, platform, ST_AsGeoJSON(footprint)
		FROM public.s1_scenes
		WHERE granule_id=$1
		LIMIT 1`,
		granuleID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, sql.ErrNoRows
	}

	err = rows.Scan(&scene.GranuleID, &scene.AcquiredDate, &scene.FlightDirection, &scene.Platform, &scene.FootprintGeometry)
	if err != nil {
		return nil, err
	}

	return &scene, nil
}

// SearchScenes returns every indexed scene intersecting the bounding box and
// acquired inside the time window
func SearchScenes(tx *sql.Tx, bbox geojson.BoundingBox, window model.TimeWindow) ([]IndexedScene, error) {
	rows, err := tx.Query(`
		SELECT granule_id, acquired_date, flight_direction, platform, ST_AsGeoJSON(footprint)
		FROM public.s1_scenes
		WHERE acquired_date BETWEEN $1 AND $2
		AND ST_Intersects(footprint, ST_MakeEnvelope($3, $4, $5, $6, 4326))
		ORDER BY acquired_date, granule_id`,
		window.Start, window.End, bbox[0], bbox[1], bbox[2], bbox[3],
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scenes := []IndexedScene{}
	for rows.Next() {
		scene := IndexedScene{}
		if err = rows.Scan(&scene.GranuleID, &scene.AcquiredDate, &scene.FlightDirection, &scene.Platform, &scene.FootprintGeometry); err != nil {
			return nil, err
		}
		scenes = append(scenes, scene)
	}
	return scenes, rows.Err()
}

// UpsertScene inserts or refreshes an indexed scene record
func UpsertScene(tx *sql.Tx, footprint model.Footprint) error {
	_, err := tx.Exec(`
		INSERT INTO public.s1_scenes (granule_id, acquired_date, flight_direction, platform, footprint)
		VALUES ($1, $2, $3, $4, ST_SetSRID(ST_GeomFromGeoJSON($5), 4326))
		ON CONFLICT (granule_id) DO UPDATE SET
			acquired_date=EXCLUDED.acquired_date,
			flight_direction=EXCLUDED.flight_direction,
			platform=EXCLUDED.platform,
			footprint=EXCLUDED.footprint`,
		footprint.GranuleID, footprint.AcquiredDate, string(footprint.FlightDirection),
		footprint.Platform, string(footprint.Geometry),
	)
	return err
}
