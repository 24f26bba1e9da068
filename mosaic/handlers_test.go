package mosaic

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/bf-s1-mosaic/asf"
	"github.com/venicegeo/geojson-go/geojson"
)

// sceneResponse mocks an ASF search result with one real-scale scene spanning
// the given longitudes between 45.5 and 47.5 degrees north
func sceneResponse(minLon, maxLon float64) string {
	return fmt.Sprintf(`{"type":"FeatureCollection","features":[
		{"type":"Feature",
		 "geometry":{"type":"Polygon","coordinates":[[[%v,45.5],[%v,45.5],[%v,47.5],[%v,47.5],[%v,45.5]]]},
		 "properties":{
			"sceneName":"S1A_IW_GRDH_MOCK",
			"startTime":"2020-06-05T12:30:45",
			"flightDirection":"ASCENDING",
			"platform":"Sentinel-1"}}]}`,
		minLon, maxLon, maxLon, minLon, minLon)
}

func mockASFServer(body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
}

func TestDiscoverHandler_Success(t *testing.T) {
	// Mock
	server := mockASFServer(sceneResponse(10.5, 12.5))
	defer server.Close()
	handler := DiscoverHandler{Context: &Context{}, ASFContext: &asf.Context{BaseASFURL: server.URL}}
	request := httptest.NewRequest("GET",
		"/discover?bbox=11,46,12,47&acquiredDate=2020-06-01T00:00:00Z&maxAcquiredDate=2020-06-30T00:00:00Z",
		strings.NewReader(""))
	response := httptest.NewRecorder()

	// Tested code
	handler.ServeHTTP(response, request)

	// Asserts
	assert.Equal(t, http.StatusOK, response.Code)
	parsed, err := geojson.Parse(response.Body.Bytes())
	assert.Nil(t, err)
	featureCollection, ok := parsed.(*geojson.FeatureCollection)
	assert.True(t, ok)
	assert.Len(t, featureCollection.Features, 1)
	assert.Equal(t, "S1A_IW_GRDH_MOCK", featureCollection.Features[0].ID)
}

func TestDiscoverHandler_BadBbox(t *testing.T) {
	// Mock
	handler := DiscoverHandler{Context: &Context{}, ASFContext: &asf.Context{BaseASFURL: "https://asf.localdomain"}}
	request := httptest.NewRequest("GET", "/discover?bbox=banana", strings.NewReader(""))
	response := httptest.NewRecorder()

	// Tested code
	handler.ServeHTTP(response, request)

	// Asserts
	assert.Equal(t, http.StatusBadRequest, response.Code)
}

func TestPlanHandler_FullCoverageAtDefaultMargin(t *testing.T) {
	// Mock: a real-scale covering scene and no margin parameter, so the
	// default metric margin applies to the lon/lat geometry
	server := mockASFServer(sceneResponse(10.5, 12.5))
	defer server.Close()
	handler := PlanHandler{Context: &Context{}, ASFContext: &asf.Context{BaseASFURL: server.URL}}
	request := httptest.NewRequest("GET",
		"/plan?bbox=11,46,12,47&acquiredDate=2020-06-01T00:00:00Z&maxAcquiredDate=2020-06-30T00:00:00Z",
		strings.NewReader(""))
	response := httptest.NewRecorder()

	// Tested code
	handler.ServeHTTP(response, request)

	// Asserts
	assert.Equal(t, http.StatusOK, response.Code)
	parsed, err := geojson.Parse(response.Body.Bytes())
	assert.Nil(t, err)
	featureCollection, ok := parsed.(*geojson.FeatureCollection)
	assert.True(t, ok)
	assert.Len(t, featureCollection.Features, 1)
}

func TestPlanHandler_CoverageConflict(t *testing.T) {
	// Mock: the only scene reaches 11.5 degrees east, leaving the eastern
	// half of the bbox bare
	server := mockASFServer(sceneResponse(10.5, 11.5))
	defer server.Close()
	handler := PlanHandler{Context: &Context{}, ASFContext: &asf.Context{BaseASFURL: server.URL}}
	request := httptest.NewRequest("GET",
		"/plan?bbox=11,46,12,47&acquiredDate=2020-06-01T00:00:00Z&maxAcquiredDate=2020-06-30T00:00:00Z",
		strings.NewReader(""))
	response := httptest.NewRecorder()

	// Tested code
	handler.ServeHTTP(response, request)

	// Asserts
	assert.Equal(t, http.StatusConflict, response.Code)
	var body map[string]interface{}
	assert.Nil(t, json.Unmarshal(response.Body.Bytes(), &body))
	assert.Equal(t, "coverage_not_achievable", body["reason"])
	assert.True(t, body["residualArea"].(float64) > 0)
}

func TestPlanHandler_InvalidMargin(t *testing.T) {
	// Mock
	handler := PlanHandler{Context: &Context{}, ASFContext: &asf.Context{BaseASFURL: "https://asf.localdomain"}}
	request := httptest.NewRequest("GET",
		"/plan?bbox=11,46,12,47&acquiredDate=2020-06-01T00:00:00Z&maxAcquiredDate=2020-06-30T00:00:00Z&margin=-5",
		strings.NewReader(""))
	response := httptest.NewRecorder()

	// Tested code
	handler.ServeHTTP(response, request)

	// Asserts
	assert.Equal(t, http.StatusBadRequest, response.Code)
}

func TestSearchOptionsFromRequest_WindowTooLong(t *testing.T) {
	// Mock
	request := httptest.NewRequest("GET",
		"/plan?bbox=11,46,12,47&acquiredDate=2020-01-01T00:00:00Z&maxAcquiredDate=2020-06-30T00:00:00Z",
		strings.NewReader(""))

	// Tested code
	_, _, err := searchOptionsFromRequest(request)

	// Asserts
	assert.NotNil(t, err)
}
