package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softscanner-sw/spa-multigraph/internal/model"
)

func TestParseHandlerCall(t *testing.T) {
	name, args := parseHandlerCall("onSave($event)")
	assert.Equal(t, "onSave", name)
	assert.Equal(t, "$event", args)

	name, args = parseHandlerCall("onClick()")
	assert.Equal(t, "onClick", name)
	assert.Equal(t, "", args)
}

func TestSyntheticNavigationEventFromRouterLink(t *testing.T) {
	w := &model.Widget{
		ID:   "c#1",
		Kind: model.WidgetLink,
		Bindings: []model.Binding{
			{Kind: model.BindingBoundAttribute, Name: "routerLink", Value: "/dashboard"},
		},
	}
	ev, ok := syntheticNavigationEvent(w)
	require.True(t, ok)
	assert.Equal(t, "navigation", ev.EventType)
	require.Len(t, ev.CallContexts, 1)
	assert.Equal(t, model.CallNavigate, ev.CallContexts[0].Kind)
	assert.Equal(t, "/dashboard", ev.CallContexts[0].Navigate.Route)
}

func TestSyntheticNavigationEventAbsentWithoutTarget(t *testing.T) {
	w := &model.Widget{ID: "c#1", Kind: model.WidgetButton}
	_, ok := syntheticNavigationEvent(w)
	assert.False(t, ok)
}
