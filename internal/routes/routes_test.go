package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/softscanner-sw/spa-multigraph/internal/model"
)

func TestBuildFullPath(t *testing.T) {
	cases := []struct {
		parent, raw, want string
	}{
		{"", "", "/"},
		{"", "home", "/home"},
		{"admin", "", "/admin"},
		{"admin", "users", "/admin/users"},
		{"/admin/", "/users/", "/admin/users"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, buildFullPath(c.parent, c.raw))
	}
}

func TestNormalizeRedirectTarget(t *testing.T) {
	assert.Equal(t, "/login", normalizeRedirectTarget("/auth", "/login"))
	assert.Equal(t, "/auth/login", normalizeRedirectTarget("/auth/forgot", "login"))
}

func TestExtractRouteParams(t *testing.T) {
	assert.Equal(t, []string{"id"}, extractRouteParams("/users/:id"))
	assert.Equal(t, []string{"id", "tab"}, extractRouteParams("/users/:id/:tab"))
	assert.Nil(t, extractRouteParams("/users"))
}

func TestResolutionQuality(t *testing.T) {
	assert.True(t, resolutionQuality("file.ts#Foo") > resolutionQuality("__unresolved__#Foo"))
	assert.True(t, resolutionQuality("__unresolved__#Foo") > resolutionQuality("__unknown__"))
	assert.True(t, resolutionQuality("__unknown__") > resolutionQuality(""))
}

func TestDedupeAndMergePrefersHigherQuality(t *testing.T) {
	low := &model.Route{ID: "/x@app.module.ts", FullPath: "/x", ComponentID: "__unknown__"}
	high := &model.Route{ID: "/x@app.module.ts", FullPath: "/x", ComponentID: "app/foo.ts#Foo"}
	out := dedupeAndMerge([]*model.Route{low, high})
	assert.Len(t, out, 1)
	assert.Equal(t, "app/foo.ts#Foo", out[0].ComponentID)
}
