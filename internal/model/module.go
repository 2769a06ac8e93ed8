// Package model defines the algebraic data types for every entity the
// extraction pipeline produces (spec §3, "Data Model").
package model

import "github.com/softscanner-sw/spa-multigraph/internal/origin"

// ModuleRole classifies a module's position in the application (spec §4.4).
type ModuleRole string

const (
	RoleRoot              ModuleRole = "Root"
	RoleGlobalShared       ModuleRole = "GlobalShared"
	RoleFeature            ModuleRole = "Feature"
	RoleLazyFeature        ModuleRole = "LazyFeature"
	RoleDeadOrUnreachable  ModuleRole = "DeadOrUnreachable"
	RoleUnknown            ModuleRole = "Unknown"
)

// Module is identified by its source file path (spec §3, "Module").
type Module struct {
	ID   string // the declaring source file's path; module identity
	Name string // display name (the class name carrying the decorator)
	File string
	Role ModuleRole

	Imports      []string // sorted, deduplicated module names/specifiers
	Components   []string // declared component class names, sorted/deduplicated
	Providers     []string // provider class names, sorted/deduplicated
	Exports       []string // exported names, sorted/deduplicated

	// ImportOrigins/ExportOrigins retain the origin of each import/export
	// name so edges built from them carry real source refs (spec §3).
	ImportOrigins map[string]origin.Origin
	ExportOrigins map[string]origin.Origin

	// Bootstrap is true when the module's decorator declared a
	// `bootstrap` property (spec §4.4, Root classification).
	Bootstrap bool

	// OwnedRoutes is populated post-hoc by the orchestrator's
	// attachOwnedRoutes: the ids of routes this module's route array
	// declares at top level.
	OwnedRoutes []string

	Origin origin.Origin
}
