package graphbuild

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/softscanner-sw/spa-multigraph/internal/model"
)

func TestExternalNodeIDIsStableAndFormatted(t *testing.T) {
	b := NewBuilder(nil, model.NewRouteMap(), &model.ComponentRouteMap{RouteMap: model.NewRouteMap()}, nil, nil, nil)
	var g model.Multigraph

	id1 := b.externalNodeID(&g, "https://example.com/docs")
	id2 := b.externalNodeID(&g, "https://example.com/docs")
	id3 := b.externalNodeID(&g, "https://example.com/other")

	assert.Equal(t, id1, id2, "same URL must hash to the same external node id")
	assert.NotEqual(t, id1, id3)
	assert.Len(t, id1, len("__ext__")+8)
	assert.Regexp(t, `^__ext__[0-9a-f]{8}$`, id1)

	// only one External node emitted for the repeated URL
	var externalCount int
	for _, n := range g.Nodes {
		if n.Kind == model.NodeExternal {
			externalCount++
		}
	}
	assert.Equal(t, 2, externalCount)
}

func TestAddEdgeAssignsIncrementingGroupIndex(t *testing.T) {
	b := NewBuilder(nil, model.NewRouteMap(), &model.ComponentRouteMap{RouteMap: model.NewRouteMap()}, nil, nil, nil)
	var g model.Multigraph

	to := "target"
	b.addEdge(&g, model.EdgeComponentComposesComponent, "from", &to, nil, nil)
	b.addEdge(&g, model.EdgeComponentComposesComponent, "from", &to, nil, nil)

	assert.Equal(t, "from::COMPONENT_COMPOSES_COMPONENT::target::0", g.Edges[0].ID)
	assert.Equal(t, "from::COMPONENT_COMPOSES_COMPONENT::target::1", g.Edges[1].ID)
}

func TestResolveNavigationTargetPrefersFewestParams(t *testing.T) {
	rm := model.NewRouteMap()
	withParams := &model.Route{ID: "a", FullPath: "/users", Params: []string{"x"}}
	withoutParams := &model.Route{ID: "b", FullPath: "/users", Params: nil}
	rm.Routes = []*model.Route{withParams, withoutParams}

	id, ok := resolveNavigationTarget(rm, "/users")
	assert.True(t, ok)
	assert.Equal(t, "b", id)
}
