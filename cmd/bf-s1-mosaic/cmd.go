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
	"fmt"

	cli "gopkg.in/urfave/cli.v1"
)

var commands = cli.Commands{
	cli.Command{
		Name:    "plan",
		Aliases: []string{"p"},
		Usage:   "Select a minimal set of Sentinel-1 scenes covering the bbox region",
		Flags:   planFlags,
		Action:  planAction,
	},
	cli.Command{
		Name:   "mosaic",
		Usage:  "Plan coverage for the bbox region, then download the selected granules",
		Flags:  mosaicFlags,
		Action: mosaicAction,
	},
	cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Launch the bf-s1-mosaic webserver",
		Action:  serveAction,
	},
	cli.Command{
		Name:    "ingest",
		Aliases: []string{"i"},
		Usage:   "Update the local index with the latest Sentinel-1 entries",
		Flags:   ingestFlags,
		Action:  ingestAction,
	},
	cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Update database schema",
		Action:  migrateDatabaseAction,
	},
	cli.Command{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "Print the version number of the bf-s1-mosaic CLI",
		Action:  versionAction,
	},
}

func createCliApp() (app *cli.App) {
	app = cli.NewApp()
	app.Name = "bf-s1-mosaic"
	app.Usage = "Plan and assemble minimal full-coverage Sentinel-1 mosaics"
	app.Commands = commands
	return
}

var version = "0.1.0"

func versionAction(*cli.Context) {
	fmt.Println(version)
}
