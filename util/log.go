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
	"log"

	"github.com/google/uuid"
)

// Severity indicates the importance of a log message
type Severity int

// Log severities, ordered per RFC 5424
const (
	FATAL  Severity = 2
	ERROR  Severity = 3
	WARN   Severity = 4
	NOTICE Severity = 5
	INFO   Severity = 6
	DEBUG  Severity = 7
)

var severityNames = map[Severity]string{
	FATAL:  "FATAL",
	ERROR:  "ERROR",
	WARN:   "WARN",
	NOTICE: "NOTICE",
	INFO:   "INFO",
	DEBUG:  "DEBUG",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SEVERITY(%d)", int(s))
}

// LogContext is the context for a log message
type LogContext interface {
	AppName() string
	SessionID() string
	LogRootDir() string
}

// BasicLogContext is a minimal LogContext for operations that have no
// richer context of their own
type BasicLogContext struct {
	sessionID string
}

// AppName returns the overall application name
func (c *BasicLogContext) AppName() string {
	return "bf-s1-mosaic"
}

// SessionID returns a session ID, creating one if needed
func (c *BasicLogContext) SessionID() string {
	if c.sessionID == "" {
		c.sessionID = NewSessionID()
	}
	return c.sessionID
}

// LogRootDir returns an empty string
func (c *BasicLogContext) LogRootDir() string {
	return ""
}

// NewSessionID returns a fresh session identifier
func NewSessionID() string {
	return uuid.NewString()
}

// LogAuditInput is the set of inputs for an audit log message
type LogAuditInput struct {
	Actor    string
	Action   string
	Actee    string
	Message  string
	Severity Severity
}

func logMessage(context LogContext, severity Severity, message string) {
	log.Printf("[%v] %v session=%v %v", severity, context.AppName(), context.SessionID(), message)
}

// LogInfo logs an informational message
func LogInfo(context LogContext, message string) {
	logMessage(context, INFO, message)
}

// LogAlert logs a message that requires operator attention
func LogAlert(context LogContext, message string) {
	logMessage(context, WARN, message)
}

// LogSimpleErr logs a message and its underlying error, and returns an
// error suitable for returning up the call stack
func LogSimpleErr(context LogContext, message string, err error) error {
	logMessage(context, ERROR, fmt.Sprintf("%v :: %v", message, err))
	return Error{LogMsg: message, SimpleMsg: message}
}

// LogAudit logs an auditable actor/action/actee record
func LogAudit(context LogContext, input LogAuditInput) {
	logMessage(context, input.Severity, fmt.Sprintf("audit actor=%q action=%q actee=%q %v",
		input.Actor, input.Action, input.Actee, input.Message))
}
