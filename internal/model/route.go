package model

import "github.com/softscanner-sw/spa-multigraph/internal/origin"

// RouteKind discriminates the tagged Route variant (spec §3, "Route").
type RouteKind string

const (
	RouteKindComponent RouteKind = "ComponentRoute"
	RouteKindRedirect  RouteKind = "RedirectRoute"
	RouteKindWildcard  RouteKind = "WildcardRoute"
)

// PathMatch is the redirect path-match mode.
type PathMatch string

const (
	PathMatchFull   PathMatch = "full"
	PathMatchPrefix PathMatch = "prefix"
)

// GuardKind enumerates the route-guard binding categories (spec §3).
type GuardKind string

const (
	GuardCanActivate      GuardKind = "canActivate"
	GuardCanLoad          GuardKind = "canLoad"
	GuardCanActivateChild GuardKind = "canActivateChild"
	GuardCanDeactivate    GuardKind = "canDeactivate"
)

// GuardBinding is one guard reference on a route.
type GuardBinding struct {
	Kind      GuardKind
	GuardName string
	Origin    origin.Origin
}

// RouteParams is the extracted/sorted/deduplicated set of `:param`
// segment names (spec §4.3, extractRouteParams).
type RouteParams struct {
	RouteParams []string
}

// Route is the tagged variant of {ComponentRoute, RedirectRoute,
// WildcardRoute} (spec §3). Shared fields live directly on Route;
// variant-specific fields are grouped so callers switch on Kind before
// touching them.
type Route struct {
	Kind RouteKind

	// ID is "<fullPath>@<moduleSourceFile>" (spec §3).
	ID string

	ModuleFile string
	RawPath    string
	FullPath   string

	ParentID *string
	ChildIDs []string // sorted

	Outlet string // named outlet, empty for the primary outlet

	Guards    []GuardBinding // sorted by (kind, guardName) after merge
	Resolvers map[string]string
	Data      map[string]string

	Params []string // sorted/deduplicated; spec §4.3 extractRouteParams

	// ComponentRoute / WildcardRoute
	ComponentID string // resolved/synthesized/sentinel; empty for RedirectRoute

	// RedirectRoute
	RedirectTo         string
	RedirectFullPath   string
	RedirectPathMatch  PathMatch

	IsTopLevel bool

	Origin origin.Origin
}

// RouteMap is the sorted, deduplicated set of all extracted routes plus
// an id index (spec §4.3, "Output").
type RouteMap struct {
	Routes []*Route   // sorted by FullPath
	ByID   map[string]*Route
}

// NewRouteMap builds an empty RouteMap.
func NewRouteMap() *RouteMap {
	return &RouteMap{ByID: make(map[string]*Route)}
}

// ComponentRouteMap wraps a RouteMap with a reverse index from component
// id to the routes that activate it (spec §4.3).
type ComponentRouteMap struct {
	RouteMap           *RouteMap
	RoutesByComponentID map[string][]*Route // inner lists sorted by FullPath
	ComponentUsageCount map[string]int
}
