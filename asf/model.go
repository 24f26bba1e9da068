package asf

import (
	"github.com/venicegeo/bf-s1-mosaic/model"
	"github.com/venicegeo/bf-s1-mosaic/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// Context is the context for an Alaska Satellite Facility operation
type Context struct {
	BaseASFURL string
	sessionID  string
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

// SearchOptions are the options for an ASF granule search
type SearchOptions struct {
	Bbox            geojson.BoundingBox
	TimeWindow      model.TimeWindow
	Platform        string
	ProcessingLevel string
	Polarization    string
	FlightDirection model.FlightDirection
	MaxResults      int
}

// Defaults matching the Sentinel-1 GRD mosaic workflow
const (
	DefaultPlatform        = "Sentinel-1"
	DefaultProcessingLevel = "GRD_HD"
	DefaultPolarization    = "VV+VH"
)

// NewSearchOptions returns SearchOptions preconfigured for Sentinel-1 GRD
// scenes intersecting the given bounding box inside the time window
func NewSearchOptions(bbox geojson.BoundingBox, window model.TimeWindow) SearchOptions {
	return SearchOptions{
		Bbox:            bbox,
		TimeWindow:      window,
		Platform:        DefaultPlatform,
		ProcessingLevel: DefaultProcessingLevel,
		Polarization:    DefaultPolarization,
	}
}
