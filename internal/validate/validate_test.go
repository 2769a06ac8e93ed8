package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softscanner-sw/spa-multigraph/internal/model"
	"github.com/softscanner-sw/spa-multigraph/internal/origin"
)

func ref() []origin.SourceRef {
	return []origin.SourceRef{{File: "a.ts", Start: 0, End: 1}}
}

func TestValidateAcceptsWellFormedGraph(t *testing.T) {
	g := model.Multigraph{
		Nodes: []model.Node{
			{ID: "a", Kind: model.NodeComponent, Refs: ref()},
			{ID: "b", Kind: model.NodeComponent, Refs: ref()},
		},
		Edges: []model.Edge{
			{ID: "e1", Kind: model.EdgeComponentComposesComponent, From: "a", To: ptr("b"), Refs: ref()},
		},
	}
	assert.NoError(t, Validate(g))
}

func TestValidateRejectsDuplicateNodeIDs(t *testing.T) {
	g := model.Multigraph{Nodes: []model.Node{
		{ID: "a", Refs: ref()},
		{ID: "a", Refs: ref()},
	}}
	err := Validate(g)
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "unique-node-ids", ve.Rule)
}

func TestValidateRejectsDanglingEdge(t *testing.T) {
	g := model.Multigraph{
		Nodes: []model.Node{{ID: "a", Refs: ref()}},
		Edges: []model.Edge{{ID: "e1", Kind: model.EdgeModuleImportsModule, From: "a", To: ptr("missing"), Refs: ref()}},
	}
	err := Validate(g)
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "edge-endpoints-exist", ve.Rule)
}

func TestValidateRejectsMissingTrigger(t *testing.T) {
	g := model.Multigraph{
		Nodes: []model.Node{
			{ID: "w", Kind: model.NodeWidget, Refs: ref()},
			{ID: "r", Kind: model.NodeRoute, Refs: ref()},
		},
		Edges: []model.Edge{
			{ID: "e1", Kind: model.EdgeWidgetNavigatesRoute, From: "w", To: ptr("r"), TargetRouteID: ptr("r"), Refs: ref()},
		},
	}
	err := Validate(g)
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "executable-edge-trigger", ve.Rule)
}

func TestValidateRejectsDecoupledTargetRouteID(t *testing.T) {
	g := model.Multigraph{
		Nodes: []model.Node{
			{ID: "w", Kind: model.NodeWidget, Refs: ref()},
			{ID: "r", Kind: model.NodeRoute, Refs: ref()},
		},
		Edges: []model.Edge{
			{ID: "e1", Kind: model.EdgeWidgetNavigatesRoute, From: "w", To: ptr("r"), Refs: ref(),
				Trigger: &model.Trigger{Event: "click"}},
		},
	}
	err := Validate(g)
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "coupled-nullability", ve.Rule)
}

func TestValidateAcceptsConsistentStats(t *testing.T) {
	g := model.Multigraph{
		Nodes: []model.Node{
			{ID: "a", Kind: model.NodeComponent, Refs: ref()},
			{ID: "b", Kind: model.NodeComponent, Refs: ref()},
		},
		Edges: []model.Edge{
			{ID: "e1", Kind: model.EdgeComponentComposesComponent, From: "a", To: ptr("b"), Refs: ref()},
			{ID: "e2", Kind: model.EdgeWidgetTriggersHandler, From: "a", Refs: ref(), Trigger: &model.Trigger{Event: "click"}},
		},
	}
	assert.NoError(t, Validate(g))
}

func ptr(s string) *string { return &s }
