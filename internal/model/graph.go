package model

import "github.com/softscanner-sw/spa-multigraph/internal/origin"

// NodeKind discriminates the tagged Node variant (spec §3, "Multigraph").
type NodeKind string

const (
	NodeModule    NodeKind = "Module"
	NodeRoute     NodeKind = "Route"
	NodeComponent NodeKind = "Component"
	NodeWidget    NodeKind = "Widget"
	NodeService   NodeKind = "Service"
	NodeExternal  NodeKind = "External"
)

// Node is one entity in the multigraph. Metadata is kind-specific and
// carried as a plain map so the serializer's recursive key sort applies
// uniformly without a type switch at the JSON boundary.
type Node struct {
	ID       string
	Kind     NodeKind
	Label    string
	Refs     []origin.SourceRef // non-empty (spec invariant)
	Metadata map[string]any
}

// EdgeKind enumerates the 18 edge kinds, partitioned into 11 structural
// and 7 executable kinds (spec §3, "Edge").
type EdgeKind string

const (
	// Structural (11)
	EdgeModuleImportsModule       EdgeKind = "MODULE_IMPORTS_MODULE"
	EdgeModuleExportsModule       EdgeKind = "MODULE_EXPORTS_MODULE"
	EdgeModuleDeclaresComponent   EdgeKind = "MODULE_DECLARES_COMPONENT"
	EdgeModuleDeclaresRoute       EdgeKind = "MODULE_DECLARES_ROUTE"
	EdgeRouteHasChild             EdgeKind = "ROUTE_HAS_CHILD"
	EdgeRouteActivatesComponent   EdgeKind = "ROUTE_ACTIVATES_COMPONENT"
	EdgeComponentContainsWidget   EdgeKind = "COMPONENT_CONTAINS_WIDGET"
	EdgeWidgetComposesWidget      EdgeKind = "WIDGET_COMPOSES_WIDGET"
	EdgeComponentComposesComponent EdgeKind = "COMPONENT_COMPOSES_COMPONENT"
	EdgeModuleProvidesService     EdgeKind = "MODULE_PROVIDES_SERVICE"
	EdgeComponentProvidesService  EdgeKind = "COMPONENT_PROVIDES_SERVICE"

	// Executable (7)
	EdgeWidgetNavigatesRoute    EdgeKind = "WIDGET_NAVIGATES_ROUTE"
	EdgeWidgetNavigatesExternal EdgeKind = "WIDGET_NAVIGATES_EXTERNAL"
	EdgeWidgetTriggersHandler   EdgeKind = "WIDGET_TRIGGERS_HANDLER"
	EdgeWidgetSubmitsForm       EdgeKind = "WIDGET_SUBMITS_FORM"
	EdgeComponentCallsService   EdgeKind = "COMPONENT_CALLS_SERVICE"
	EdgeComponentNavigatesRoute EdgeKind = "COMPONENT_NAVIGATES_ROUTE"
	EdgeRouteRedirectsToRoute   EdgeKind = "ROUTE_REDIRECTS_TO_ROUTE"
)

// StructuralEdgeKinds is the fixed partition of structural edge kinds
// (spec §3). Order matches the spec's enumeration; used only for
// membership tests, never for iteration order elsewhere.
var StructuralEdgeKinds = map[EdgeKind]bool{
	EdgeModuleImportsModule:        true,
	EdgeModuleExportsModule:        true,
	EdgeModuleDeclaresComponent:    true,
	EdgeModuleDeclaresRoute:        true,
	EdgeRouteHasChild:              true,
	EdgeRouteActivatesComponent:    true,
	EdgeComponentContainsWidget:    true,
	EdgeWidgetComposesWidget:       true,
	EdgeComponentComposesComponent: true,
	EdgeModuleProvidesService:      true,
	EdgeComponentProvidesService:   true,
}

// IsStructural reports whether kind is one of the 11 structural kinds.
func (k EdgeKind) IsStructural() bool { return StructuralEdgeKinds[k] }

// IsExecutable reports whether kind is one of the 7 executable kinds.
func (k EdgeKind) IsExecutable() bool { return !StructuralEdgeKinds[k] }

// ConstraintSurface is a bounded summary of preconditions for an
// executable transition (spec §3, "ConstraintSurface"). All list fields
// are sorted/unique. Structural edges carry the zero value.
type ConstraintSurface struct {
	RequiredParams []string
	Guards         []string
	Roles          []string
	UIAtoms        []string
	Evidence       []string
}

// Trigger carries the triggering event name for an executable edge.
type Trigger struct {
	Event          string
	ViaRouterLink  bool
}

// Handler identifies the component method an edge's trigger resolved to.
type Handler struct {
	ComponentID string
	MethodName  string
}

// Edge is one relationship in the multigraph (spec §3, "Edge").
type Edge struct {
	ID   string
	Kind EdgeKind
	From string
	To   *string // nil iff TargetRouteID is nil

	Constraints ConstraintSurface
	Refs        []origin.SourceRef // non-empty

	IsSystem bool

	Trigger *Trigger
	Handler *Handler

	TargetRouteID *string
	TargetText    string // raw, unresolved navigation text; empty otherwise
}
