package guards

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/softscanner-sw/spa-multigraph/internal/model"
)

func TestSummarizeTextDetectsAuthAndRoles(t *testing.T) {
	src := `
	export class AdminGuard {
		canActivate() {
			if (!this.authService.isAuthenticated()) return false;
			return this.role === 'admin' || this.roles.includes('superuser');
		}
	}`
	s := summarizeText(src)
	assert.True(t, s.AuthRequired)
	assert.Contains(t, s.RolesRequired, "admin")
}

func TestSummarizeTextDetectsFeatureFlagsAndEntityState(t *testing.T) {
	src := `
	export class BetaGuard {
		canActivate(route: ActivatedRouteSnapshot) {
			const id = route.params.id;
			return this.featureFlags['beta-dashboard'];
		}
	}`
	s := summarizeText(src)
	assert.True(t, s.RequiresEntityState)
	assert.Contains(t, s.FeatureFlags, "beta-dashboard")
}

func TestMergeConstraintSurfacesDedupesAndSorts(t *testing.T) {
	a := Summary{AuthRequired: true, RolesRequired: []string{"admin"}}.ToConstraintSurface("AuthGuard")
	b := Summary{RolesRequired: []string{"admin", "editor"}}.ToConstraintSurface("RoleGuard")

	merged := MergeConstraintSurfaces([]model.ConstraintSurface{a, b})

	assert.Equal(t, []string{"AuthGuard", "RoleGuard"}, merged.Guards)
	assert.Equal(t, []string{"admin", "editor"}, merged.Roles)
	assert.Equal(t, []string{"authRequired"}, merged.Evidence)
}
