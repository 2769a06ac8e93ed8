package model

import "github.com/softscanner-sw/spa-multigraph/internal/origin"

// Service is identified by "<file>#<className>" (spec §3, "Service").
type Service struct {
	ID          string
	Name        string
	File        string
	ProvidedIn  string // e.g. "root"; empty when absent
	Origin      origin.Origin
}
