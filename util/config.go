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

package util

import (
	"os"
	"strconv"
)

// Environment variables
const (
	ASF_API_URL           = "ASF_API_URL"
	EARTHDATA_CREDENTIALS = "EARTHDATA_CREDENTIALS"
	SHRINK_MARGIN_METERS  = "SHRINK_MARGIN_METERS"
	SOLVER_MAX_ITERATIONS = "SOLVER_MAX_ITERATIONS"
)

const defaultASFAPIURL = "https://api.daac.asf.alaska.edu/services/search/param"

// DefaultShrinkMarginMeters is the footprint correction applied in range
// direction on each side, compensating for Sentinel-1 border noise
const DefaultShrinkMarginMeters = 3000.0

// GetASFAPIURL returns the base URL of the ASF search API
func GetASFAPIURL() string {
	asfURL, ok := os.LookupEnv(ASF_API_URL)
	if !ok {
		LogInfo(&BasicLogContext{}, "Did not get explicit ASF API URL from the environment. Using default URL.")
		asfURL = defaultASFAPIURL
	}
	return asfURL
}

// GetEarthdataCredentialsPath returns the path of the NASA EARTHDATA
// credentials file used by the download collaborator
func GetEarthdataCredentialsPath() string {
	path, ok := os.LookupEnv(EARTHDATA_CREDENTIALS)
	if !ok {
		LogAlert(&BasicLogContext{}, "Did not get EARTHDATA credentials path from the environment. Downloads will not be available.")
	}
	return path
}

// GetShrinkMarginMeters returns the configured footprint shrink margin,
// falling back to the default of 3 km per side
func GetShrinkMarginMeters() float64 {
	if raw, ok := os.LookupEnv(SHRINK_MARGIN_METERS); ok {
		if margin, err := strconv.ParseFloat(raw, 64); err == nil && margin >= 0 {
			return margin
		}
		LogAlert(&BasicLogContext{}, "Invalid SHRINK_MARGIN_METERS value in environment; using default.")
	}
	return DefaultShrinkMarginMeters
}

// GetSolverMaxIterations returns the configured solver iteration budget, or
// 0 when the solver should choose its own bound
func GetSolverMaxIterations() int {
	if raw, ok := os.LookupEnv(SOLVER_MAX_ITERATIONS); ok {
		if budget, err := strconv.Atoi(raw); err == nil && budget > 0 {
			return budget
		}
		LogAlert(&BasicLogContext{}, "Invalid SOLVER_MAX_ITERATIONS value in environment; ignoring.")
	}
	return 0
}
