package main

import (
	"fmt"
	"log"

	"github.com/venicegeo/bf-s1-mosaic/asf"
	"github.com/venicegeo/bf-s1-mosaic/catalog/db"
	"github.com/venicegeo/bf-s1-mosaic/util"
	"github.com/venicegeo/geojson-go/geojson"
	cli "gopkg.in/urfave/cli.v1"
)

var ingestFlags = []cli.Flag{
	cli.StringFlag{Name: "bbox", Usage: "Bounding box to ingest, as west,south,east,north"},
	cli.StringFlag{Name: "start", Usage: "Earliest acquired date (YYYY-MM-DD or RFC 3339)"},
	cli.StringFlag{Name: "end", Usage: "Latest acquired date (YYYY-MM-DD or RFC 3339)"},
}

//ingestAction runs a single catalog import for the given region and window.
func ingestAction(c *cli.Context) error {
	bbox, err := geojson.NewBoundingBox(c.String("bbox"))
	if err != nil {
		return fmt.Errorf("the bbox value of %v is invalid: %v", c.String("bbox"), err)
	}
	window, err := parseTimeWindow(c)
	if err != nil {
		return err
	}

	importer := db.NewImporter(&asf.Context{BaseASFURL: util.GetASFAPIURL()}, getDbConnectionFunc)
	count, err := importer.Import(bbox, window)
	if err != nil {
		return err
	}
	log.Printf("Ingested %d scene footprint(s).", count)
	return nil
}
