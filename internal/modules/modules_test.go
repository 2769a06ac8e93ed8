package modules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/softscanner-sw/spa-multigraph/internal/model"
)

func TestClassifyRoleRoot(t *testing.T) {
	m := &model.Module{Name: "AppModule", File: "src/app/app.module.ts", Bootstrap: true}
	byName := map[string]*model.Module{"AppModule": m}
	assert.Equal(t, model.RoleRoot, classifyRole(m, byName, nil))
}

func TestClassifyRoleDeadOrUnreachable(t *testing.T) {
	m := &model.Module{Name: "OrphanModule", File: "src/app/orphan.module.ts"}
	byName := map[string]*model.Module{"OrphanModule": m}
	assert.Equal(t, model.RoleDeadOrUnreachable, classifyRole(m, byName, nil))
}

func TestClassifyRoleLazyFeature(t *testing.T) {
	m := &model.Module{Name: "AdminModule", File: "src/app/admin/admin.module.ts"}
	byName := map[string]*model.Module{"AdminModule": m}
	lazy := map[string]bool{"src/app/admin/admin.module.ts": true}
	assert.Equal(t, model.RoleLazyFeature, classifyRole(m, byName, lazy))
}

func TestClassifyRoleFeature(t *testing.T) {
	shared := &model.Module{Name: "SharedModule", File: "src/app/shared.module.ts"}
	feature := &model.Module{Name: "FeatureModule", File: "src/app/feature.module.ts", Imports: []string{"SharedModule"}}
	byName := map[string]*model.Module{"SharedModule": shared, "FeatureModule": feature}
	assert.Equal(t, model.RoleFeature, classifyRole(shared, byName, nil))
}
