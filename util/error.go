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
	"fmt"
	"net/http"
	"time"
)

// Error is a rich error containing both an operator-facing log message and a
// simple user-facing message, plus any HTTP details available
type Error struct {
	LogMsg     string
	SimpleMsg  string
	Response   string
	URL        string
	HTTPStatus int
}

// Error implements the error interface
func (e Error) Error() string {
	if e.SimpleMsg != "" {
		return e.SimpleMsg
	}
	return e.LogMsg
}

// Log writes the full detail of the error to the log and returns an error
// carrying the simple message
func (e Error) Log(context LogContext, prefix string) error {
	message := e.LogMsg
	if prefix != "" {
		message = prefix + ": " + message
	}
	if e.URL != "" {
		message += fmt.Sprintf(" url=%v", e.URL)
	}
	if e.HTTPStatus != 0 {
		message += fmt.Sprintf(" status=%v", e.HTTPStatus)
	}
	if e.Response != "" {
		message += "\nresponse: " + e.Response
	}
	logMessage(context, ERROR, message)
	return e
}

// HTTPErr is a simple error bearing an HTTP status code
type HTTPErr struct {
	Status  int
	Message string
}

// Error implements the error interface
func (e HTTPErr) Error() string {
	return e.Message
}

// HTTPError writes an error message and status to an HTTP response
func HTTPError(r *http.Request, w http.ResponseWriter, context LogContext, message string, status int) {
	http.Error(w, message, status)
}

var httpClient = &http.Client{Timeout: 120 * time.Second}

// HTTPClient returns the shared HTTP client for outbound requests
func HTTPClient() *http.Client {
	return httpClient
}
