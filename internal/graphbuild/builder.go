// Package graphbuild assembles the final Multigraph from every
// extraction stage's output (spec §4.8): it emits one Node per entity,
// resolves navigation targets to routes or external URLs, and assigns
// deterministic edge ids via a per-(from,kind,to) group-index counter.
package graphbuild

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/softscanner-sw/spa-multigraph/internal/components"
	"github.com/softscanner-sw/spa-multigraph/internal/guards"
	"github.com/softscanner-sw/spa-multigraph/internal/model"
	"github.com/softscanner-sw/spa-multigraph/internal/origin"
)

// BuilderOptions configures one graph-assembly run (functional-options
// shape, grounded on the teacher's graph.Builder).
type BuilderOptions struct {
	// GuardResolver summarizes a guard class's constraint surface;
	// WithGuardResolver overrides the default no-op resolver.
	GuardResolver func(guardName string) model.ConstraintSurface
}

// BuilderOption mutates BuilderOptions.
type BuilderOption func(*BuilderOptions)

// WithGuardResolver installs a guard-constraint resolver (spec §4.7/§4.8).
func WithGuardResolver(fn func(string) model.ConstraintSurface) BuilderOption {
	return func(o *BuilderOptions) { o.GuardResolver = fn }
}

func defaultOptions() BuilderOptions {
	return BuilderOptions{GuardResolver: func(string) model.ConstraintSurface { return model.ConstraintSurface{} }}
}

// Builder assembles the Multigraph from every stage's output.
type Builder struct {
	opts BuilderOptions

	modules    []*model.Module
	routeMap   *model.RouteMap
	compRoutes *model.ComponentRouteMap
	compResult []components.Result
	events     []*model.WidgetEvent
	services   []*model.Service

	externalIDs map[string]string // url -> node id
	edgeGroups  map[string]int    // "<from>::<kind>::<to|__null__>" -> next group index
}

// NewBuilder constructs a Builder (functional-options, grounded on the
// teacher's graph.NewBuilder).
func NewBuilder(
	modules []*model.Module,
	routeMap *model.RouteMap,
	compRoutes *model.ComponentRouteMap,
	compResult []components.Result,
	events []*model.WidgetEvent,
	serviceList []*model.Service,
	opts ...BuilderOption,
) *Builder {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return &Builder{
		opts:        o,
		modules:     modules,
		routeMap:    routeMap,
		compRoutes:  compRoutes,
		compResult:  compResult,
		events:      events,
		services:    serviceList,
		externalIDs: map[string]string{},
		edgeGroups:  map[string]int{},
	}
}

// Build assembles and returns the final Multigraph (spec §4.8).
func (b *Builder) Build() model.Multigraph {
	var g model.Multigraph

	componentByID := map[string]*model.Component{}
	widgetByID := map[string]*model.Widget{}
	for _, r := range b.compResult {
		componentByID[r.Component.ID] = r.Component
		for _, w := range r.Widgets {
			widgetByID[w.ID] = w
		}
	}
	serviceByName := map[string]*model.Service{}
	for _, s := range b.services {
		serviceByName[s.Name] = s
	}

	componentByName := map[string]string{}
	for _, r := range b.compResult {
		componentByName[r.Component.Name] = r.Component.ID
	}

	b.emitModuleNodes(&g)
	b.emitRouteNodes(&g)
	b.emitComponentNodes(&g)
	b.emitWidgetNodes(&g, widgetByID)
	b.emitServiceNodes(&g)

	b.emitModuleStructuralEdges(&g, serviceByName, componentByName)
	b.emitRouteStructuralEdges(&g)
	b.emitComponentStructuralEdges(&g, componentByID)
	b.emitNavigationAndHandlerEdges(&g, widgetByID, serviceByName)

	sort.Slice(g.Nodes, func(i, j int) bool { return g.Nodes[i].ID < g.Nodes[j].ID })
	sort.Slice(g.Edges, func(i, j int) bool {
		a, c := g.Edges[i], g.Edges[j]
		if a.From != c.From {
			return a.From < c.From
		}
		if a.Kind != c.Kind {
			return a.Kind < c.Kind
		}
		at, ct := toKey(a.To), toKey(c.To)
		if at != ct {
			return at < ct
		}
		return a.ID < c.ID
	})

	return g
}

func toKey(to *string) string {
	if to == nil {
		return "__null__"
	}
	return *to
}

func (b *Builder) emitModuleNodes(g *model.Multigraph) {
	for _, m := range b.modules {
		g.Nodes = append(g.Nodes, model.Node{
			ID:    m.ID,
			Kind:  model.NodeModule,
			Label: m.Name,
			Refs:  []origin.SourceRef{m.Origin.Ref()},
			Metadata: map[string]any{
				"role":       string(m.Role),
				"bootstrap":  m.Bootstrap,
				"imports":    m.Imports,
				"components": m.Components,
				"providers":  m.Providers,
				"exports":    m.Exports,
			},
		})
	}
}

func (b *Builder) emitRouteNodes(g *model.Multigraph) {
	for _, r := range b.routeMap.Routes {
		g.Nodes = append(g.Nodes, model.Node{
			ID:    r.ID,
			Kind:  model.NodeRoute,
			Label: r.FullPath,
			Refs:  []origin.SourceRef{r.Origin.Ref()},
			Metadata: map[string]any{
				"kind":        string(r.Kind),
				"fullPath":    r.FullPath,
				"componentId": r.ComponentID,
				"params":      r.Params,
				"isTopLevel":  r.IsTopLevel,
			},
		})
	}
}

func (b *Builder) emitComponentNodes(g *model.Multigraph) {
	for _, r := range b.compResult {
		c := r.Component
		g.Nodes = append(g.Nodes, model.Node{
			ID:    c.ID,
			Kind:  model.NodeComponent,
			Label: c.Name,
			Refs:  []origin.SourceRef{c.Origin.Ref()},
			Metadata: map[string]any{
				"selector":       c.Selector,
				"templateRef":    c.TemplateRef,
				"childSelectors": c.ChildSelectors,
			},
		})
	}
}

func (b *Builder) emitWidgetNodes(g *model.Multigraph, widgetByID map[string]*model.Widget) {
	ids := make([]string, 0, len(widgetByID))
	for id := range widgetByID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		w := widgetByID[id]
		g.Nodes = append(g.Nodes, model.Node{
			ID:    w.ID,
			Kind:  model.NodeWidget,
			Label: w.PathString,
			Refs:  []origin.SourceRef{w.Origin.Ref()},
			Metadata: map[string]any{
				"kind":        string(w.Kind),
				"tag":         w.Tag,
				"componentId": w.ComponentID,
				"attributes":  w.Attributes,
			},
		})
	}
}

func (b *Builder) emitServiceNodes(g *model.Multigraph) {
	for _, s := range b.services {
		g.Nodes = append(g.Nodes, model.Node{
			ID:    s.ID,
			Kind:  model.NodeService,
			Label: s.Name,
			Refs:  []origin.SourceRef{s.Origin.Ref()},
			Metadata: map[string]any{
				"providedIn": s.ProvidedIn,
			},
		})
	}
}

// addEdge appends an edge, deriving its id from a per-(from,kind,to)
// group-index counter: "<from>::<kind>::<to|__null__>::<groupIndex>"
// (spec §4.8).
func (b *Builder) addEdge(g *model.Multigraph, kind model.EdgeKind, from string, to *string, refs []origin.SourceRef, mutate func(*model.Edge)) {
	key := from + "::" + string(kind) + "::" + toKey(to)
	idx := b.edgeGroups[key]
	b.edgeGroups[key] = idx + 1

	e := model.Edge{
		ID:   key + "::" + strconv.Itoa(idx),
		Kind: kind,
		From: from,
		To:   to,
		Refs: refs,
	}
	if mutate != nil {
		mutate(&e)
	}
	g.Edges = append(g.Edges, e)
}

func (b *Builder) emitModuleStructuralEdges(g *model.Multigraph, serviceByName map[string]*model.Service, componentByName map[string]string) {
	byName := map[string]*model.Module{}
	for _, m := range b.modules {
		byName[m.Name] = m
	}
	for _, m := range b.modules {
		for _, className := range m.Components {
			if id, ok := componentByName[className]; ok {
				to := id
				b.addEdge(g, model.EdgeModuleDeclaresComponent, m.ID, &to, []origin.SourceRef{m.Origin.Ref()}, nil)
			}
		}
		for _, imp := range m.Imports {
			target, ok := byName[imp]
			if !ok {
				continue
			}
			to := target.ID
			b.addEdge(g, model.EdgeModuleImportsModule, m.ID, &to, []origin.SourceRef{m.ImportOrigins[imp].Ref()}, nil)
		}
		for _, exp := range m.Exports {
			target, ok := byName[exp]
			if !ok {
				continue
			}
			to := target.ID
			b.addEdge(g, model.EdgeModuleExportsModule, m.ID, &to, []origin.SourceRef{m.ExportOrigins[exp].Ref()}, nil)
		}
		for _, routeID := range m.OwnedRoutes {
			to := routeID
			b.addEdge(g, model.EdgeModuleDeclaresRoute, m.ID, &to, []origin.SourceRef{m.Origin.Ref()}, nil)
		}
		for _, svcName := range m.Providers {
			if s, ok := serviceByName[svcName]; ok {
				to := s.ID
				b.addEdge(g, model.EdgeModuleProvidesService, m.ID, &to, []origin.SourceRef{m.Origin.Ref()}, func(e *model.Edge) { e.IsSystem = true })
			}
		}
	}
}

func (b *Builder) emitRouteStructuralEdges(g *model.Multigraph) {
	for _, r := range b.routeMap.Routes {
		for _, childID := range r.ChildIDs {
			to := childID
			b.addEdge(g, model.EdgeRouteHasChild, r.ID, &to, []origin.SourceRef{r.Origin.Ref()}, nil)
		}
		if r.Kind == model.RouteKindComponent && r.ComponentID != "" && r.ComponentID != "__unknown__" &&
			!strings.HasPrefix(r.ComponentID, "__unresolved__#") {
			to := r.ComponentID
			b.addEdge(g, model.EdgeRouteActivatesComponent, r.ID, &to, []origin.SourceRef{r.Origin.Ref()}, nil)
		}
		if r.Kind == model.RouteKindRedirect {
			if target, ok := resolveRedirectTarget(b.routeMap, r); ok {
				to := target
				b.addEdge(g, model.EdgeRouteRedirectsToRoute, r.ID, &to, []origin.SourceRef{r.Origin.Ref()}, nil)
			}
		}
	}
}

func resolveRedirectTarget(rm *model.RouteMap, r *model.Route) (string, bool) {
	var best *model.Route
	for _, candidate := range rm.Routes {
		if candidate.FullPath != r.RedirectFullPath {
			continue
		}
		if best == nil || len(candidate.Params) < len(best.Params) ||
			(len(candidate.Params) == len(best.Params) && candidate.FullPath < best.FullPath) {
			best = candidate
		}
	}
	if best == nil {
		return "", false
	}
	return best.ID, true
}

func (b *Builder) emitComponentStructuralEdges(g *model.Multigraph, componentByID map[string]*model.Component) {
	for _, r := range b.compResult {
		c := r.Component
		for _, w := range r.Widgets {
			wid := w.ID
			b.addEdge(g, model.EdgeComponentContainsWidget, c.ID, &wid, []origin.SourceRef{w.Origin.Ref()}, nil)
		}
		for _, selector := range c.ChildSelectors {
			target := findComponentBySelector(componentByID, selector)
			if target == "" {
				continue
			}
			to := target
			b.addEdge(g, model.EdgeComponentComposesComponent, c.ID, &to, []origin.SourceRef{c.Origin.Ref()}, nil)
		}
	}
}

func findComponentBySelector(componentByID map[string]*model.Component, selector string) string {
	var ids []string
	for id, c := range componentByID {
		if c.Selector == selector {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return ""
	}
	sort.Strings(ids)
	return ids[0]
}

// interpolationOrArraySyntax recognizes a routerLink array-literal
// ("['/foo', id]"), the array-navigation form of spec §4.8.
var interpolationOrArraySyntax = regexp.MustCompile(`^\[([^\]]*)\]$`)

// emitNavigationAndHandlerEdges walks every analyzed widget event (spec
// §4.8). Synthetic routerLink/href events (ev.EventType == "navigation")
// only ever produce a widget-level WIDGET_NAVIGATES_ROUTE/EXTERNAL edge.
// Real template-bound events always emit one WIDGET_TRIGGERS_HANDLER or
// WIDGET_SUBMITS_FORM edge for the trigger itself, plus one
// COMPONENT_NAVIGATES_ROUTE/COMPONENT_CALLS_SERVICE edge per Navigate or
// ServiceCall call context found in the handler body.
func (b *Builder) emitNavigationAndHandlerEdges(g *model.Multigraph, widgetByID map[string]*model.Widget, serviceByName map[string]*model.Service) {
	for _, ev := range b.events {
		w, ok := widgetByID[ev.WidgetID]
		if !ok {
			continue
		}

		if ev.EventType == "navigation" {
			for _, cc := range ev.CallContexts {
				if cc.Kind == model.CallNavigate {
					b.emitNavigateEdge(g, w, ev, cc)
				}
			}
			continue
		}

		b.emitTriggerEdge(g, w, ev)

		for _, cc := range ev.CallContexts {
			switch cc.Kind {
			case model.CallNavigate:
				b.emitComponentNavigatesRoute(g, w, ev, cc)
			case model.CallServiceCall:
				b.emitComponentCallsService(g, w, ev, cc, serviceByName)
			}
		}
	}
}

func (b *Builder) emitNavigateEdge(g *model.Multigraph, w *model.Widget, ev *model.WidgetEvent, cc model.CallContext) {
	raw := strings.TrimSpace(cc.Navigate.Route)
	trigger := &model.Trigger{Event: ev.EventType, ViaRouterLink: ev.EventType == "navigation"}

	if routeID, ok := resolveRouteTarget(b.routeMap, raw); ok {
		to := routeID
		b.addEdge(g, model.EdgeWidgetNavigatesRoute, w.ID, &to, []origin.SourceRef{cc.Origin.Ref()}, func(e *model.Edge) {
			e.Trigger = trigger
			e.TargetRouteID = &to
			e.Constraints = b.constraintsForRoute(to)
		})
		return
	}

	if looksExternal(raw) {
		extID := b.externalNodeID(g, raw)
		b.addEdge(g, model.EdgeWidgetNavigatesExternal, w.ID, &extID, []origin.SourceRef{cc.Origin.Ref()}, func(e *model.Edge) {
			e.Trigger = trigger
			e.TargetText = raw
		})
		return
	}

	b.addEdge(g, model.EdgeWidgetNavigatesRoute, w.ID, nil, []origin.SourceRef{cc.Origin.Ref()}, func(e *model.Edge) {
		e.Trigger = trigger
		e.TargetText = raw
	})
}

// emitComponentNavigatesRoute emits the component-scoped counterpart of
// a handler-body Navigate call context (spec §4.8). An unresolved target
// still emits the edge, with a null target and the raw target text kept.
func (b *Builder) emitComponentNavigatesRoute(g *model.Multigraph, w *model.Widget, ev *model.WidgetEvent, cc model.CallContext) {
	raw := strings.TrimSpace(cc.Navigate.Route)
	routeID, ok := resolveRouteTarget(b.routeMap, raw)
	if !ok {
		b.addEdge(g, model.EdgeComponentNavigatesRoute, w.ComponentID, nil, []origin.SourceRef{cc.Origin.Ref()}, func(e *model.Edge) {
			e.TargetText = raw
			e.Handler = &model.Handler{ComponentID: w.ComponentID, MethodName: ev.HandlerName}
		})
		return
	}
	to := routeID
	b.addEdge(g, model.EdgeComponentNavigatesRoute, w.ComponentID, &to, []origin.SourceRef{cc.Origin.Ref()}, func(e *model.Edge) {
		e.TargetRouteID = &to
		e.Handler = &model.Handler{ComponentID: w.ComponentID, MethodName: ev.HandlerName}
		e.Constraints = b.constraintsForRoute(to)
	})
}

// emitComponentCallsService resolves a handler-body service call against
// the service registry by a case-insensitive match on the first
// dot-segment of cc.ServiceMethod (an Angular instance field such as
// "userService.getUsers" names its class, "UserService", identically up
// to the leading letter's case). When no service matches, the edge
// self-loops on the calling component rather than being dropped (spec
// §4.8, "component self-loop fallback").
func (b *Builder) emitComponentCallsService(g *model.Multigraph, w *model.Widget, ev *model.WidgetEvent, cc model.CallContext, serviceByName map[string]*model.Service) {
	from := w.ComponentID
	to := from
	if s, ok := resolveServiceByFirstSegment(serviceByName, cc.ServiceMethod); ok {
		to = s.ID
	}
	b.addEdge(g, model.EdgeComponentCallsService, from, &to, []origin.SourceRef{cc.Origin.Ref()}, func(e *model.Edge) {
		e.Handler = &model.Handler{ComponentID: from, MethodName: ev.HandlerName}
	})
}

func resolveServiceByFirstSegment(serviceByName map[string]*model.Service, raw string) (*model.Service, bool) {
	seg := raw
	if idx := strings.IndexByte(raw, '.'); idx >= 0 {
		seg = raw[:idx]
	}
	segLower := strings.ToLower(seg)
	for name, s := range serviceByName {
		if strings.ToLower(name) == segLower {
			return s, true
		}
	}
	return nil, false
}

// navSegment is one path segment of a parsed array- or
// interpolation-navigation target (spec §4.8).
type navSegment struct {
	text    string
	dynamic bool
}

// resolveRouteTarget resolves a raw routerLink/navigate target string to
// a route id, trying in order the direct-path, array-syntax, and
// interpolation-syntax resolution strategies of spec §4.8.
func resolveRouteTarget(rm *model.RouteMap, raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	if id, ok := resolveNavigationTarget(rm, raw); ok {
		return id, true
	}

	if m := interpolationOrArraySyntax.FindStringSubmatch(raw); m != nil {
		if id, ok := resolveSegmentNavigation(rm, parseArraySegments(m[1])); ok {
			return id, true
		}
	}

	trimmed := strings.Trim(raw, `'"`)
	if strings.HasPrefix(trimmed, "/") && strings.Contains(trimmed, "{{") {
		if id, ok := resolveSegmentNavigation(rm, parseInterpolationSegments(trimmed)); ok {
			return id, true
		}
	}

	return "", false
}

// parseArraySegments splits a routerLink array literal's inner text on
// commas; a quoted part is a literal path fragment further split on
// "/", an unquoted part (a dynamic expression) is a single dynamic
// segment (spec §4.8, "Array-syntax navigation").
func parseArraySegments(inner string) []navSegment {
	var segs []navSegment
	for _, part := range strings.Split(inner, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if len(part) >= 2 && (part[0] == '\'' && part[len(part)-1] == '\'' || part[0] == '"' && part[len(part)-1] == '"') {
			lit := strings.Trim(part, `'"`)
			for _, seg := range strings.Split(strings.Trim(lit, "/"), "/") {
				if seg != "" {
					segs = append(segs, navSegment{text: seg})
				}
			}
			continue
		}
		segs = append(segs, navSegment{dynamic: true})
	}
	return segs
}

// parseInterpolationSegments splits a "{{...}}"-bearing template target
// on "/" after stripping quotes and any query/fragment suffix; a
// segment containing "{{" is dynamic (spec §4.8, "Interpolation
// navigation").
func parseInterpolationSegments(path string) []navSegment {
	path = strings.Trim(path, `'"`)
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	var segs []navSegment
	for _, seg := range strings.Split(strings.Trim(path, "/"), "/") {
		if seg == "" {
			continue
		}
		segs = append(segs, navSegment{text: seg, dynamic: strings.Contains(seg, "{{")})
	}
	return segs
}

// resolveSegmentNavigation matches parsed nav segments against every
// non-wildcard, non-root route of equal segment count: a route's
// ":param" segment accepts anything, a dynamic nav segment can only
// match a route param, and a static nav segment must equal the route's
// literal segment (spec §4.8). Ambiguity breaks the same way as
// resolveNavigationTarget: fewest param segments, then lexicographically
// smallest fullPath.
func resolveSegmentNavigation(rm *model.RouteMap, segs []navSegment) (string, bool) {
	if len(segs) == 0 {
		return "", false
	}
	var candidates []*model.Route
	for _, r := range rm.Routes {
		if r.Kind == model.RouteKindWildcard || r.FullPath == "" || r.FullPath == "/" {
			continue
		}
		routeSegs := strings.Split(strings.Trim(r.FullPath, "/"), "/")
		if len(routeSegs) != len(segs) {
			continue
		}
		match := true
		for i, rs := range routeSegs {
			ns := segs[i]
			if strings.HasPrefix(rs, ":") {
				continue
			}
			if ns.dynamic || ns.text != rs {
				match = false
				break
			}
		}
		if match {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	sort.Slice(candidates, func(i, j int) bool {
		if len(candidates[i].Params) != len(candidates[j].Params) {
			return len(candidates[i].Params) < len(candidates[j].Params)
		}
		return candidates[i].FullPath < candidates[j].FullPath
	})
	return candidates[0].ID, true
}

// resolveNavigationTarget resolves a raw navigation target text to a
// route id via direct match; on ambiguity, ties break by fewest param
// segments, then lexicographically smallest fullPath (spec §4.8).
func resolveNavigationTarget(rm *model.RouteMap, target string) (string, bool) {
	t := strings.Trim(strings.TrimSpace(target), `'"`)
	if t == "" || strings.HasPrefix(t, "./") || strings.HasPrefix(t, "../") {
		return "", false
	}
	if !strings.HasPrefix(t, "/") {
		t = "/" + t
	}
	var candidates []*model.Route
	for _, r := range rm.Routes {
		if r.FullPath == t {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	sort.Slice(candidates, func(i, j int) bool {
		if len(candidates[i].Params) != len(candidates[j].Params) {
			return len(candidates[i].Params) < len(candidates[j].Params)
		}
		return candidates[i].FullPath < candidates[j].FullPath
	})
	return candidates[0].ID, true
}

// constraintsForRoute folds every guard bound to routeID into a single
// ConstraintSurface via the installed GuardResolver (spec §4.8,
// "constraints drawn from the target route").
func (b *Builder) constraintsForRoute(routeID string) model.ConstraintSurface {
	r, ok := b.routeMap.ByID[routeID]
	if !ok || len(r.Guards) == 0 {
		return model.ConstraintSurface{}
	}
	surfaces := make([]model.ConstraintSurface, 0, len(r.Guards))
	for _, gb := range r.Guards {
		surfaces = append(surfaces, b.opts.GuardResolver(gb.GuardName))
	}
	return guards.MergeConstraintSurfaces(surfaces)
}

func looksExternal(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") || strings.HasPrefix(target, "//")
}

// externalNodeID returns (creating if absent) the External node id for
// url, derived via FNV-1a-32 (spec §4.8): hash/fnv implements the exact
// standard 32-bit FNV-1a constants, so no third-party hashing library
// has anything to add here (see DESIGN.md).
func (b *Builder) externalNodeID(g *model.Multigraph, url string) string {
	if id, ok := b.externalIDs[url]; ok {
		return id
	}
	h := fnv.New32a()
	h.Write([]byte(url))
	id := fmt.Sprintf("__ext__%08x", h.Sum32())
	b.externalIDs[url] = id

	g.Nodes = append(g.Nodes, model.Node{
		ID:    id,
		Kind:  model.NodeExternal,
		Label: url,
		Refs:  []origin.SourceRef{{Start: 0, End: 0}},
		Metadata: map[string]any{
			"url": url,
		},
	})
	return id
}

// emitTriggerEdge emits the single widget-level trigger edge for a
// template-bound event: WIDGET_SUBMITS_FORM for a Form widget's submit
// event, WIDGET_TRIGGERS_HANDLER otherwise (spec §4.8). Call-context
// edges (COMPONENT_NAVIGATES_ROUTE, COMPONENT_CALLS_SERVICE) are emitted
// separately, once per Navigate or ServiceCall call context, by
// emitNavigationAndHandlerEdges.
func (b *Builder) emitTriggerEdge(g *model.Multigraph, w *model.Widget, ev *model.WidgetEvent) {
	kind := model.EdgeWidgetTriggersHandler
	if w.Kind == model.WidgetForm && ev.EventType == "submit" {
		kind = model.EdgeWidgetSubmitsForm
	}
	b.addEdge(g, kind, w.ID, nil, []origin.SourceRef{w.Origin.Ref()}, func(e *model.Edge) {
		e.Trigger = &model.Trigger{Event: ev.EventType}
		e.Handler = &model.Handler{ComponentID: w.ComponentID, MethodName: ev.HandlerName}
	})
}
