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

package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/venicegeo/bf-s1-mosaic/asf"
	"github.com/venicegeo/bf-s1-mosaic/catalog"
	"github.com/venicegeo/bf-s1-mosaic/download"
	"github.com/venicegeo/bf-s1-mosaic/model"
	"github.com/venicegeo/bf-s1-mosaic/mosaic"
	"github.com/venicegeo/bf-s1-mosaic/util"
	"github.com/venicegeo/geojson-go/geojson"
	cli "gopkg.in/urfave/cli.v1"
)

var planFlags = []cli.Flag{
	cli.StringFlag{Name: "bbox", Usage: "Target region bounding box, as west,south,east,north"},
	cli.StringFlag{Name: "start", Usage: "Earliest acquired date (YYYY-MM-DD or RFC 3339)"},
	cli.StringFlag{Name: "end", Usage: "Latest acquired date (YYYY-MM-DD or RFC 3339)"},
	cli.StringFlag{Name: "flight-dir", Usage: "Restrict to ASCENDING or DESCENDING passes"},
	cli.Float64Flag{Name: "margin", Usage: "Footprint shrink margin in meters per side (default 3000)"},
	cli.IntFlag{Name: "budget", Usage: "Solver iteration budget (default: twice the candidate count)"},
	cli.IntFlag{Name: "max-results", Usage: "Maximum number of scenes to request from ASF"},
	cli.BoolFlag{Name: "local", Usage: "Read scene footprints from the local index instead of ASF"},
}

var mosaicFlags = append([]cli.Flag{
	cli.StringFlag{Name: "outpath", Usage: "Directory to download the selected granules into"},
	cli.StringFlag{Name: "credentials", Usage: "Path to the EARTHDATA credentials file"},
}, planFlags...)

// planAction runs the coverage planner and prints the selected scenes without
// downloading anything
func planAction(c *cli.Context) error {
	return runPlan(c, nil)
}

// mosaicAction runs the coverage planner, then downloads the selected
// granules to the outpath directory
func mosaicAction(c *cli.Context) error {
	if c.String("outpath") == "" {
		return fmt.Errorf("the mosaic command requires --outpath")
	}
	downloader := download.NewAria2Downloader()
	if credentials := c.String("credentials"); credentials != "" {
		downloader.CredentialsPath = credentials
	}
	return runPlan(c, downloader)
}

func runPlan(c *cli.Context, downloader download.Downloader) error {
	logContext := &util.BasicLogContext{}

	bbox, err := geojson.NewBoundingBox(c.String("bbox"))
	if err != nil {
		return fmt.Errorf("the bbox value of %v is invalid: %v", c.String("bbox"), err)
	}
	window, err := parseTimeWindow(c)
	if err != nil {
		return err
	}

	footprints, err := fetchFootprints(c, bbox, window)
	if err != nil {
		return util.LogSimpleErr(logContext, "Error searching for scenes.", err)
	}

	planContext := &mosaic.Context{
		Downloader:    downloader,
		DownloadDir:   c.String("outpath"),
		MarginMeters:  c.Float64("margin"),
		MaxIterations: c.Int("budget"),
	}
	planner := mosaic.NewPlanner(planContext)

	region, err := mosaic.RegionFromBoundingBox(planContext.Engine, bbox)
	if err != nil {
		return err
	}

	result, err := planner.Plan(context.Background(), region, window, footprints)
	if coverageErr, ok := err.(*mosaic.CoverageError); ok {
		fmt.Printf("Uncovered residual (GeoJSON): %s\n", coverageErr.ResidualGeoJSON)
		return coverageErr
	}
	if err != nil {
		return err
	}

	fmt.Printf("Scene(s) %v cover the target region.\n", strings.Join(result.Selected, ", "))
	for _, status := range result.Downloads {
		fmt.Printf("Downloaded %v to %v\n", status.GranuleID, status.Path)
	}
	return nil
}

// fetchFootprints loads candidate scene footprints from either the remote ASF
// catalog or the local index, per the --local flag
func fetchFootprints(c *cli.Context, bbox geojson.BoundingBox, window model.TimeWindow) ([]model.Footprint, error) {
	if c.Bool("local") {
		database, err := getDbConnectionFunc(&util.BasicLogContext{})
		if err != nil {
			return nil, err
		}
		defer database.Close()
		tx, err := database.Begin()
		if err != nil {
			return nil, err
		}
		defer tx.Commit()
		return catalog.DiscoverScenes(tx, bbox, window)
	}

	options := asf.NewSearchOptions(bbox, window)
	if raw := c.String("flight-dir"); raw != "" {
		var err error
		if options.FlightDirection, err = model.ParseFlightDirection(raw); err != nil {
			return nil, err
		}
	}
	if c.Int("max-results") > 0 {
		options.MaxResults = c.Int("max-results")
	}
	return asf.GetScenes(options, &asf.Context{BaseASFURL: util.GetASFAPIURL()})
}

func parseTimeWindow(c *cli.Context) (model.TimeWindow, error) {
	window := model.TimeWindow{}
	var err error
	if window.Start, err = parseDateFlag(c.String("start")); err != nil {
		return window, fmt.Errorf("the start value of %v is invalid: %v", c.String("start"), err)
	}
	if window.End, err = parseDateFlag(c.String("end")); err != nil {
		return window, fmt.Errorf("the end value of %v is invalid: %v", c.String("end"), err)
	}
	// A date-only end means the whole of that day.
	if len(c.String("end")) == len("2006-01-02") {
		window.End = window.End.Add(24*time.Hour - time.Second)
	}
	return window, window.Validate()
}

func parseDateFlag(raw string) (time.Time, error) {
	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		return parsed, nil
	}
	return time.Parse(time.RFC3339, raw)
}
