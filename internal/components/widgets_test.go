package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softscanner-sw/spa-multigraph/internal/model"
	"github.com/softscanner-sw/spa-multigraph/internal/template"
)

func TestClassifyWidgetTagBased(t *testing.T) {
	assert.Equal(t, model.WidgetButton, classifyWidget(&template.Node{Kind: template.KindElement, Name: "button"}))
	assert.Equal(t, model.WidgetLink, classifyWidget(&template.Node{Kind: template.KindElement, Name: "a"}))
	assert.Equal(t, model.WidgetUnknown, classifyWidget(&template.Node{Kind: template.KindElement, Name: "div"}))
}

func TestClassifyWidgetInputTypeOverride(t *testing.T) {
	n := &template.Node{
		Kind: template.KindElement,
		Name: "input",
		Attributes: []*template.Node{
			{Kind: template.KindAttr, Name: "type", Value: "checkbox"},
		},
	}
	assert.Equal(t, model.WidgetCheckbox, classifyWidget(n))
}

func TestClassifyWidgetRouterLinkBinding(t *testing.T) {
	n := &template.Node{
		Kind: template.KindElement,
		Name: "span",
		Attributes: []*template.Node{
			{Kind: template.KindBoundAttr, Name: "routerLink", Value: "/home"},
		},
	}
	assert.Equal(t, model.WidgetLink, classifyWidget(n))
}

func TestExtractWidgetsStableOrderingAndIndex(t *testing.T) {
	html := `<div><button>One</button><span>skip</span><button>Two</button></div>`
	roots := template.Parse(html, "t.html", template.Options{})
	widgets := extractWidgets(roots, "comp#C", html)

	require.Len(t, widgets, 2)
	assert.Equal(t, 0, widgets[0].StableIndex)
	assert.Equal(t, 1, widgets[1].StableIndex)
	assert.Equal(t, "One", widgets[0].TextLabel)
	assert.Equal(t, "Two", widgets[1].TextLabel)
}

func TestExtractValidatorsNilWhenAbsent(t *testing.T) {
	n := &template.Node{Kind: template.KindElement, Name: "input"}
	assert.Nil(t, extractValidators(n))
}

func TestExtractValidatorsPresent(t *testing.T) {
	n := &template.Node{
		Kind: template.KindElement,
		Name: "input",
		Attributes: []*template.Node{
			{Kind: template.KindAttr, Name: "required"},
			{Kind: template.KindAttr, Name: "maxlength", Value: "10"},
		},
	}
	v := extractValidators(n)
	require.NotNil(t, v)
	assert.True(t, v.Required)
	assert.Equal(t, 10, v.MaxLength)
}

func TestDiscoverNestedSelectors(t *testing.T) {
	html := `<div><app-widget></app-widget><app-widget></app-widget><other-tag></other-tag></div>`
	roots := template.Parse(html, "t.html", template.Options{})
	sels := discoverNestedSelectors(roots, "app-")
	assert.Equal(t, []string{"app-widget"}, sels)
}
