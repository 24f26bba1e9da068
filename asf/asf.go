// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package asf queries the Alaska Satellite Facility search API for scene
// footprints. Network and auth failures are surfaced to the caller
// unmodified; this layer performs no retries.
package asf

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/venicegeo/bf-s1-mosaic/model"
	"github.com/venicegeo/bf-s1-mosaic/util"
)

// ASF expects timestamps in this layout in search parameters
const asfParamTimeLayout = "2006-01-02T15:04:05UTC"

// GetScenes returns the raw footprints of all scenes matching the search
// options
func GetScenes(options SearchOptions, context *Context) ([]model.Footprint, error) {
	searchURL, err := buildSearchURL(options, context)
	if err != nil {
		return nil, util.LogSimpleErr(context, "Failed to build ASF search URL.", err)
	}

	util.LogAudit(context, util.LogAuditInput{Actor: "asf/GetScenes", Action: "GET", Actee: searchURL, Message: "Searching ASF for scene footprints", Severity: util.INFO})
	response, err := util.HTTPClient().Get(searchURL)
	if err != nil {
		return nil, util.LogSimpleErr(context, fmt.Sprintf("Failed to complete ASF API request %v.", searchURL), err)
	}
	defer response.Body.Close()
	util.LogAudit(context, util.LogAuditInput{Actor: searchURL, Action: "GET response", Actee: "asf/GetScenes", Message: "Receiving data from ASF API", Severity: util.INFO})

	switch {
	case (response.StatusCode >= 400) && (response.StatusCode < 500):
		message := fmt.Sprintf("Failed to discover scenes from ASF API: %v. ", response.Status)
		err := util.HTTPErr{Status: response.StatusCode, Message: message}
		util.LogAlert(context, message)
		return nil, err
	case response.StatusCode >= 500:
		return nil, util.LogSimpleErr(context, "Failed to discover scenes from ASF API.", errors.New(response.Status))
	default:
		//no op
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, util.LogSimpleErr(context, "Failed to read ASF API response.", err)
	}

	return parseSearchResults(context, body)
}

// buildSearchURL assembles the parameter search URL the way the ASF API
// expects it, including the WKT-style intersectsWith polygon derived from
// the bounding box
func buildSearchURL(options SearchOptions, context *Context) (string, error) {
	if len(options.Bbox) < 4 {
		return "", fmt.Errorf("bounding box must have four values, got %v", options.Bbox)
	}
	if err := options.TimeWindow.Validate(); err != nil {
		return "", err
	}

	params := url.Values{}
	if options.ProcessingLevel != "" {
		params.Set("processingLevel", options.ProcessingLevel)
	}
	if options.Polarization != "" {
		params.Set("polarization", options.Polarization)
	}
	params.Set("start", options.TimeWindow.Start.UTC().Format(asfParamTimeLayout))
	params.Set("end", options.TimeWindow.End.UTC().Format(asfParamTimeLayout))
	params.Set("intersectsWith", bboxPolygonWKT(options.Bbox))
	params.Set("platform", options.Platform)
	if options.FlightDirection != "" {
		params.Set("flightDirection", string(options.FlightDirection))
	}
	if options.MaxResults > 0 {
		params.Set("maxResults", strconv.Itoa(options.MaxResults))
	}
	params.Set("output", "geojson")

	return context.BaseASFURL + "?" + params.Encode(), nil
}

// bboxPolygonWKT renders a closed counter-clockwise polygon over the
// bounding box corners
func bboxPolygonWKT(bbox []float64) string {
	west, south, east, north := bbox[0], bbox[1], bbox[2], bbox[3]
	return fmt.Sprintf("polygon((%v %v,%v %v,%v %v,%v %v,%v %v))",
		west, south, east, south, east, north, west, north, west, south)
}
