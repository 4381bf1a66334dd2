// Package plugin implements UI side message channel: requests come in as
// JSON objects with "type" field, responses are sent back the same way.
package plugin

import (
	"varcss/exporter"
	"varcss/variables"
)

// Inbound message kinds.
const (
	KindCreateCSS = "create-css"
	KindParseCSS  = "parse-css"
	KindClose     = "close-plugin"
	KindReload    = "reload-plugin"
)

// Outbound message kinds.
const (
	KindInitData   = "init-data"
	KindDisplayCSS = "display-css"
	KindStatus     = "status"
	KindError      = "error"
)

// Status values of status message.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Request is any inbound message, fields not relevant to the kind are
// empty.
type Request struct {
	Type string `json:"type"`
	// create-css
	SelectedRoot  string `json:"selectedRoot,omitempty"`
	SelectedTheme string `json:"selectedTheme,omitempty"`
	UseCodeSyntax bool   `json:"useCodeSyntax,omitempty"`
	// parse-css
	CSSText string `json:"cssText,omitempty"`
}

// InitData carries everything UI needs to offer export.
type InitData struct {
	Type        string                 `json:"type"`
	Variables   []exporter.Display     `json:"variables"`
	Collections []variables.Collection `json:"collections"`
}

// DisplayCSS carries export result.
type DisplayCSS struct {
	Type string `json:"type"`
	CSS  string `json:"css"`
}

// Status reports import outcome.
type Status struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Error reports failure not tied to import.
type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func newInitData(vars []exporter.Display, colls []variables.Collection) InitData {
	if vars == nil {
		vars = []exporter.Display{}
	}
	if colls == nil {
		colls = []variables.Collection{}
	}
	return InitData{Type: KindInitData, Variables: vars, Collections: colls}
}

func newStatus(status, msg string) Status {
	return Status{Type: KindStatus, Message: msg, Status: status}
}

func newError(msg string) Error {
	return Error{Type: KindError, Message: msg}
}
