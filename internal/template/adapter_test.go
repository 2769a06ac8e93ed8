package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmptyTemplate(t *testing.T) {
	assert.Empty(t, Parse("", "empty.html", Options{}))
	assert.Empty(t, Parse("   \n  ", "blank.html", Options{}))
}

func TestParseClassifiesAttributes(t *testing.T) {
	html := `<button *ngIf="show" [disabled]="isDisabled" (click)="onSave()">Save</button>`
	nodes := Parse(html, "t.html", Options{})
	require.Len(t, nodes, 1)

	btn := nodes[0]
	assert.Equal(t, KindElement, btn.Kind)
	assert.Equal(t, "button", btn.Name)

	structural := btn.ByKind(KindStructural)
	require.Len(t, structural, 1)
	assert.Equal(t, "ngIf", structural[0].Name)
	assert.Equal(t, "show", structural[0].Value)

	bound := btn.ByKind(KindBoundAttr)
	require.Len(t, bound, 1)
	assert.Equal(t, "disabled", bound[0].Name)

	evts := btn.ByKind(KindEvent)
	require.Len(t, evts, 1)
	assert.Equal(t, "click", evts[0].Name)
	assert.Equal(t, "onSave()", evts[0].Value)

	require.Len(t, btn.Children, 1)
	assert.Equal(t, KindText, btn.Children[0].Kind)
	assert.Equal(t, "Save", btn.Children[0].Value)
}

func TestParseBoundText(t *testing.T) {
	html := `<span>{{ user.name }}</span>`
	nodes := Parse(html, "t.html", Options{})
	require.Len(t, nodes, 1)
	require.Len(t, nodes[0].Children, 1)
	assert.Equal(t, KindBoundText, nodes[0].Children[0].Kind)
}

func TestParseNestingAndVoidElements(t *testing.T) {
	html := `<div><input type="text"/><p>hi</p></div>`
	nodes := Parse(html, "t.html", Options{})
	require.Len(t, nodes, 1)
	div := nodes[0]
	require.Len(t, div.Children, 2)
	assert.Equal(t, "input", div.Children[0].Name)
	assert.Empty(t, div.Children[0].Children)
	assert.Equal(t, "p", div.Children[1].Name)
}
