// Package validate implements the 7 structural invariant checks of spec
// §4.9, plus three additional checks (edge-id uniqueness, trigger
// presence, redirect-target resolution), as a fail-fast pass over the
// assembled Multigraph run immediately before serialization.
package validate

import (
	"fmt"
	"sort"

	"github.com/softscanner-sw/spa-multigraph/internal/model"
)

// ValidationError reports the first invariant violation encountered (spec §4.9,
// "fail-fast on first violation").
type ValidationError struct {
	Rule   string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%s): %s", e.Rule, e.Detail)
}

// Validate runs every invariant check in spec order and returns the
// first violation, or nil when the graph is well-formed.
func Validate(g model.Multigraph) error {
	checks := []func(model.Multigraph) *ValidationError{
		checkUniqueNodeIDs,
		checkUniqueEdgeIDs,
		checkEdgeEndpointsExist,
		checkNonEmptyRefs,
		checkCoupledNullability,
		checkExecutableEdgesCarryTrigger,
		checkRedirectTargetsResolve,
		checkSortedOutput,
		checkStatsConsistency,
	}
	for _, check := range checks {
		if err := check(g); err != nil {
			return err
		}
	}
	return nil
}

func checkUniqueNodeIDs(g model.Multigraph) *ValidationError {
	seen := map[string]bool{}
	for _, n := range g.Nodes {
		if seen[n.ID] {
			return &ValidationError{Rule: "unique-node-ids", Detail: "duplicate node id " + n.ID}
		}
		seen[n.ID] = true
	}
	return nil
}

func checkUniqueEdgeIDs(g model.Multigraph) *ValidationError {
	seen := map[string]bool{}
	for _, e := range g.Edges {
		if seen[e.ID] {
			return &ValidationError{Rule: "unique-edge-ids", Detail: "duplicate edge id " + e.ID}
		}
		seen[e.ID] = true
	}
	return nil
}

func checkEdgeEndpointsExist(g model.Multigraph) *ValidationError {
	nodeIDs := map[string]bool{}
	for _, n := range g.Nodes {
		nodeIDs[n.ID] = true
	}
	for _, e := range g.Edges {
		if !nodeIDs[e.From] {
			return &ValidationError{Rule: "edge-endpoints-exist", Detail: "edge " + e.ID + " references unknown from-node " + e.From}
		}
		if e.To != nil && !nodeIDs[*e.To] {
			return &ValidationError{Rule: "edge-endpoints-exist", Detail: "edge " + e.ID + " references unknown to-node " + *e.To}
		}
	}
	return nil
}

func checkNonEmptyRefs(g model.Multigraph) *ValidationError {
	for _, n := range g.Nodes {
		if len(n.Refs) == 0 {
			return &ValidationError{Rule: "non-empty-refs", Detail: "node " + n.ID + " has no source refs"}
		}
	}
	for _, e := range g.Edges {
		if len(e.Refs) == 0 {
			return &ValidationError{Rule: "non-empty-refs", Detail: "edge " + e.ID + " has no source refs"}
		}
	}
	return nil
}

// targetRouteIDKinds are the edge kinds that resolve a navigation target
// to a route and so carry a TargetRouteID alongside `to` (spec §4.9 item
// 4 / §8 item 2, "coupled nullability").
var targetRouteIDKinds = map[model.EdgeKind]bool{
	model.EdgeWidgetNavigatesRoute:    true,
	model.EdgeComponentNavigatesRoute: true,
}

// checkCoupledNullability ensures `edge.to == nil` iff
// `edge.targetRouteId == nil` for every edge kind that carries a
// TargetRouteID (spec §4.9 item 4 / §8 item 2).
func checkCoupledNullability(g model.Multigraph) *ValidationError {
	for _, e := range g.Edges {
		if !targetRouteIDKinds[e.Kind] {
			continue
		}
		if (e.To == nil) != (e.TargetRouteID == nil) {
			return &ValidationError{Rule: "coupled-nullability", Detail: "edge " + e.ID + " has mismatched to/targetRouteId nullability"}
		}
	}
	return nil
}

// checkExecutableEdgesCarryTrigger ensures every trigger-bearing edge
// kind (WIDGET_NAVIGATES_ROUTE/_EXTERNAL, WIDGET_TRIGGERS_HANDLER,
// WIDGET_SUBMITS_FORM) carries a Trigger. This check is not one of the
// spec §4.9 list itself; it guards an invariant the serializer's
// optional `trigger` field otherwise leaves unchecked.
func checkExecutableEdgesCarryTrigger(g model.Multigraph) *ValidationError {
	needsTrigger := map[model.EdgeKind]bool{
		model.EdgeWidgetNavigatesRoute:    true,
		model.EdgeWidgetNavigatesExternal: true,
		model.EdgeWidgetTriggersHandler:   true,
		model.EdgeWidgetSubmitsForm:       true,
	}
	for _, e := range g.Edges {
		if needsTrigger[e.Kind] && e.Trigger == nil {
			return &ValidationError{Rule: "executable-edge-trigger", Detail: "edge " + e.ID + " of kind " + string(e.Kind) + " is missing a trigger"}
		}
	}
	return nil
}

func checkRedirectTargetsResolve(g model.Multigraph) *ValidationError {
	routeIDs := map[string]bool{}
	for _, n := range g.Nodes {
		if n.Kind == model.NodeRoute {
			routeIDs[n.ID] = true
		}
	}
	for _, e := range g.Edges {
		if e.Kind != model.EdgeRouteRedirectsToRoute {
			continue
		}
		if e.To == nil || !routeIDs[*e.To] {
			return &ValidationError{Rule: "redirect-targets-resolve", Detail: "redirect edge " + e.ID + " does not resolve to a known route"}
		}
	}
	return nil
}

// checkSortedOutput verifies the determinism invariant itself: nodes
// sorted by id, edges sorted by (from, kind, to, id) (spec §3/§4.9).
func checkSortedOutput(g model.Multigraph) *ValidationError {
	if !sort.SliceIsSorted(g.Nodes, func(i, j int) bool { return g.Nodes[i].ID < g.Nodes[j].ID }) {
		return &ValidationError{Rule: "sorted-output", Detail: "nodes are not sorted by id"}
	}
	if !sort.SliceIsSorted(g.Edges, func(i, j int) bool {
		a, b := g.Edges[i], g.Edges[j]
		if a.From != b.From {
			return a.From < b.From
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		at, bt := toKey(a.To), toKey(b.To)
		if at != bt {
			return at < bt
		}
		return a.ID < b.ID
	}) {
		return &ValidationError{Rule: "sorted-output", Detail: "edges are not sorted by (from, kind, to, id)"}
	}
	return nil
}

// checkStatsConsistency recomputes stats from the graph itself and
// checks them against the derived Stats struct: nodeCount/edgeCount
// match the list lengths, and the structural/executable split matches
// the edge-kind partition (spec §4.9 item 7).
func checkStatsConsistency(g model.Multigraph) *ValidationError {
	stats := model.ComputeStats(g)
	if stats.NodeCount != len(g.Nodes) {
		return &ValidationError{Rule: "stats-consistency", Detail: "nodeCount does not match the node list length"}
	}
	if stats.EdgeCount != len(g.Edges) {
		return &ValidationError{Rule: "stats-consistency", Detail: "edgeCount does not match the edge list length"}
	}
	if stats.StructuralEdgeCount+stats.ExecutableEdgeCount != stats.EdgeCount {
		return &ValidationError{Rule: "stats-consistency", Detail: "structuralEdgeCount + executableEdgeCount does not equal edgeCount"}
	}
	var structural int
	for _, e := range g.Edges {
		if e.Kind.IsStructural() {
			structural++
		}
	}
	if structural != stats.StructuralEdgeCount {
		return &ValidationError{Rule: "stats-consistency", Detail: "structuralEdgeCount does not match the edge-kind partition"}
	}
	return nil
}

func toKey(to *string) string {
	if to == nil {
		return "__null__"
	}
	return *to
}
