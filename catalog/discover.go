// Package catalog serves scene footprints from the local postgres index as
// an alternative to querying the remote ASF catalog on every planning run.
package catalog

import (
	"database/sql"

	"github.com/venicegeo/bf-s1-mosaic/catalog/db"
	"github.com/venicegeo/bf-s1-mosaic/model"
	"github.com/venicegeo/bf-s1-mosaic/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// Context is the context for a local index operation
type Context struct {
	DB        *sql.DB
	sessionID string
}

// AppName returns the overall application name
func (c *Context) AppName() string {
	return "bf-s1-mosaic"
}

// SessionID returns a session ID, creating one if needed
func (c *Context) SessionID() string {
	if c.sessionID == "" {
		c.sessionID = util.NewSessionID()
	}
	return c.sessionID
}

// LogRootDir returns an empty string
func (c *Context) LogRootDir() string {
	return ""
}

// DiscoverScenes returns the raw footprints of every indexed scene
// intersecting the bounding box and acquired inside the time window
func DiscoverScenes(tx *sql.Tx, bbox geojson.BoundingBox, window model.TimeWindow) ([]model.Footprint, error) {
	scenes, err := db.SearchScenes(tx, bbox, window)
	if err != nil {
		return nil, err
	}

	footprints := make([]model.Footprint, len(scenes))
	for i, scene := range scenes {
		if footprints[i], err = scene.Footprint(); err != nil {
			return nil, err
		}
	}
	return footprints, nil
}

// GetScene returns a single indexed scene as a raw footprint
func GetScene(tx *sql.Tx, granuleID string) (*model.Footprint, error) {
	scene, err := db.GetSceneByID(tx, granuleID)
	if err != nil {
		return nil, err
	}
	footprint, err := scene.Footprint()
	if err != nil {
		return nil, err
	}
	return &footprint, nil
}
