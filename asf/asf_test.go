package asf

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/bf-s1-mosaic/model"
	"github.com/venicegeo/bf-s1-mosaic/util"
	"github.com/venicegeo/geojson-go/geojson"
)

var testWindow = model.TimeWindow{
	Start: time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
	End:   time.Date(2020, 6, 30, 0, 0, 0, 0, time.UTC),
}

var testBbox = geojson.BoundingBox{10, 40, 12, 42}

const sampleSearchResponse = `{"type":"FeatureCollection","features":[
	{"type":"Feature",
	 "geometry":{"type":"Polygon","coordinates":[[[10,40],[12,40.2],[11.8,42.2],[9.8,42],[10,40]]]},
	 "properties":{
		"sceneName":"S1A_IW_GRDH_1SDV_20200605T123045",
		"startTime":"2020-06-05T12:30:45.123456",
		"flightDirection":"ASCENDING",
		"platform":"Sentinel-1"}}]}`

func TestBuildSearchURL(t *testing.T) {
	// Mock
	context := &Context{BaseASFURL: "https://asf.localdomain/services/search/param"}
	options := NewSearchOptions(testBbox, testWindow)
	options.FlightDirection = model.Descending
	options.MaxResults = 25

	// Tested code
	searchURL, err := buildSearchURL(options, context)

	// Asserts
	assert.Nil(t, err)
	parsed, parseErr := url.Parse(searchURL)
	assert.Nil(t, parseErr)
	params := parsed.Query()
	assert.Equal(t, "Sentinel-1", params.Get("platform"))
	assert.Equal(t, "GRD_HD", params.Get("processingLevel"))
	assert.Equal(t, "VV+VH", params.Get("polarization"))
	assert.Equal(t, "DESCENDING", params.Get("flightDirection"))
	assert.Equal(t, "25", params.Get("maxResults"))
	assert.Equal(t, "geojson", params.Get("output"))
	assert.Equal(t, "2020-06-01T00:00:00UTC", params.Get("start"))
	assert.Equal(t, "2020-06-30T00:00:00UTC", params.Get("end"))
	assert.Equal(t, "polygon((10 40,12 40,12 42,10 42,10 40))", params.Get("intersectsWith"))
}

func TestBuildSearchURL_OmitsUnsetOptionals(t *testing.T) {
	// Mock
	context := &Context{BaseASFURL: "https://asf.localdomain/services/search/param"}
	options := NewSearchOptions(testBbox, testWindow)

	// Tested code
	searchURL, err := buildSearchURL(options, context)

	// Asserts
	assert.Nil(t, err)
	parsed, _ := url.Parse(searchURL)
	params := parsed.Query()
	assert.Empty(t, params.Get("flightDirection"))
	assert.Empty(t, params.Get("maxResults"))
}

func TestBuildSearchURL_InvalidInputs(t *testing.T) {
	// Mock
	context := &Context{BaseASFURL: "https://asf.localdomain/services/search/param"}
	shortBbox := NewSearchOptions(geojson.BoundingBox{10, 40}, testWindow)
	backwards := NewSearchOptions(testBbox, model.TimeWindow{Start: testWindow.End, End: testWindow.Start})

	// Tested code
	_, shortBboxErr := buildSearchURL(shortBbox, context)
	_, backwardsErr := buildSearchURL(backwards, context)

	// Asserts
	assert.NotNil(t, shortBboxErr)
	assert.NotNil(t, backwardsErr)
}

func TestGetScenes_Success(t *testing.T) {
	// Mock
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleSearchResponse))
	}))
	defer server.Close()
	context := &Context{BaseASFURL: server.URL}

	// Tested code
	footprints, err := GetScenes(NewSearchOptions(testBbox, testWindow), context)

	// Asserts
	assert.Nil(t, err)
	assert.Len(t, footprints, 1)
	assert.Equal(t, "S1A_IW_GRDH_1SDV_20200605T123045", footprints[0].GranuleID)
	assert.Equal(t, model.Ascending, footprints[0].FlightDirection)
	assert.Equal(t, "Sentinel-1", footprints[0].Platform)
	assert.Equal(t, time.Date(2020, 6, 5, 12, 30, 45, 123456000, time.UTC), footprints[0].AcquiredDate)
	assert.NotEmpty(t, footprints[0].Geometry)
}

func TestGetScenes_ClientError(t *testing.T) {
	// Mock
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer server.Close()
	context := &Context{BaseASFURL: server.URL}

	// Tested code
	_, err := GetScenes(NewSearchOptions(testBbox, testWindow), context)

	// Asserts
	assert.NotNil(t, err)
	httpErr, ok := err.(util.HTTPErr)
	assert.True(t, ok, "expected a util.HTTPErr, got %T", err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestGetScenes_ServerError(t *testing.T) {
	// Mock
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()
	context := &Context{BaseASFURL: server.URL}

	// Tested code
	_, err := GetScenes(NewSearchOptions(testBbox, testWindow), context)

	// Asserts
	assert.NotNil(t, err)
}
