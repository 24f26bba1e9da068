package db

import (
	"database/sql"
	"time"

	"github.com/venicegeo/bf-s1-mosaic/model"
	"github.com/venicegeo/bf-s1-mosaic/util"
)

// ConnectionProvider is a function that can provide a database connection.
type ConnectionProvider func(util.LogContext) (*sql.DB, error)

// IndexedScene is a Sentinel-1 scene record in the local footprint index
type IndexedScene struct {
	GranuleID         string
	AcquiredDate      time.Time
	FlightDirection   string
	Platform          string
	FootprintGeometry []byte
}

// Footprint converts the index record into a catalog footprint
func (scene IndexedScene) Footprint() (model.Footprint, error) {
	flightDirection, err := model.ParseFlightDirection(scene.FlightDirection)
	if err != nil {
		return model.Footprint{}, err
	}
	return model.Footprint{
		GranuleID:       scene.GranuleID,
		Geometry:        scene.FootprintGeometry,
		AcquiredDate:    scene.AcquiredDate,
		FlightDirection: flightDirection,
		Platform:        scene.Platform,
	}, nil
}
