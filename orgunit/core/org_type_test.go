package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgstack/orgunit-engine-go/orgunit/core"
)

func Test_CanParent_InternalHierarchyIsStrictlyOrdered(t *testing.T) {
	// Company > Division > Department > Team > Project; a parent may adopt any
	// internal type strictly below its own, not just the next rank.
	allowed := map[core.Type][]core.Type{
		core.TypeCompany:    {core.TypeDivision, core.TypeDepartment, core.TypeTeam, core.TypeProject},
		core.TypeDivision:   {core.TypeDepartment, core.TypeTeam, core.TypeProject},
		core.TypeDepartment: {core.TypeTeam, core.TypeProject},
		core.TypeTeam:       {core.TypeProject},
		core.TypeProject:    {},
	}

	internal := []core.Type{core.TypeCompany, core.TypeDivision, core.TypeDepartment, core.TypeTeam, core.TypeProject}

	for parent, children := range allowed {
		allowedSet := make(map[core.Type]bool, len(children))
		for _, child := range children {
			allowedSet[child] = true
		}

		for _, child := range internal {
			assert.Equal(t, allowedSet[child], parent.CanParent(child),
				"%s parenting %s", parent, child)
		}
	}
}

func Test_CanParent_ExternalTypesAttachUnderAnyInternalParent(t *testing.T) {
	externals := []core.Type{
		core.TypePartner, core.TypeCustomer, core.TypeVendor,
		core.TypeNonProfit, core.TypeGovernment, core.TypeOther,
	}

	for _, external := range externals {
		assert.True(t, core.TypeProject.CanParent(external), "internal parent for %s", external)
		assert.False(t, external.CanParent(core.TypeTeam), "%s must not parent internal units", external)
		assert.False(t, external.CanParent(core.TypePartner), "%s must not parent external units", external)
	}
}

func Test_ParseType_AcceptsKnownAndRejectsUnknown(t *testing.T) {
	parsed, err := core.ParseType("Division")
	require.NoError(t, err)
	assert.Equal(t, core.TypeDivision, parsed)
	assert.True(t, parsed.IsInternal())

	parsed, err = core.ParseType("Vendor")
	require.NoError(t, err)
	assert.False(t, parsed.IsInternal())

	_, err = core.ParseType("Guild")
	assert.ErrorIs(t, err, core.ErrInvalidCommand)
}

func Test_RoleLevel_RankAndManagement(t *testing.T) {
	// Executive through Lead are management, Senior and below are not.
	management := []core.RoleLevel{
		core.LevelExecutive, core.LevelVicePresident, core.LevelDirector,
		core.LevelManager, core.LevelLead,
	}
	individual := []core.RoleLevel{
		core.LevelSenior, core.LevelMid, core.LevelJunior, core.LevelEntry, core.LevelIntern,
	}

	for _, level := range management {
		assert.True(t, level.IsManagement(), "%s", level)
	}
	for _, level := range individual {
		assert.False(t, level.IsManagement(), "%s", level)
	}

	assert.True(t, core.LevelDirector.CanManage(core.LevelManager))
	assert.False(t, core.LevelManager.CanManage(core.LevelDirector))
}

func Test_Role_EqualsIgnoresPermissionOrder(t *testing.T) {
	first := core.Role{Title: "Lead", Level: core.LevelLead, Permissions: []string{"a", "b"}}
	second := core.Role{Title: "Lead", Level: core.LevelLead, Permissions: []string{"b", "a"}}
	third := core.Role{Title: "Lead", Level: core.LevelLead, Permissions: []string{"a"}}

	assert.True(t, first.Equals(second))
	assert.False(t, first.Equals(third))
}
