package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var expectedGrants = map[Role][]Permission{
	RoleLandlord: {
		PermViewProperties, PermCreateProperties, PermEditProperties, PermDeleteProperties, PermManagePropertyAccess,
		PermViewTenants, PermCreateTenants, PermEditTenants, PermRemoveTenants, PermViewTenantDocuments,
		PermViewFinancials, PermManageRent, PermViewPayments, PermProcessPayments, PermGenerateReports,
		PermViewMaintenance, PermCreateMaintenance, PermAssignMaintenance, PermCompleteMaintenance,
		PermManageUsers, PermInviteUsers, PermViewUserActivity,
		PermViewDashboard, PermViewAnalytics, PermExportData,
	},
	RoleAdmin: {
		PermViewProperties, PermCreateProperties, PermEditProperties, PermDeleteProperties, PermManagePropertyAccess,
		PermViewTenants, PermCreateTenants, PermEditTenants, PermRemoveTenants, PermViewTenantDocuments,
		PermViewFinancials, PermManageRent, PermViewPayments, PermProcessPayments, PermGenerateReports,
		PermViewMaintenance, PermCreateMaintenance, PermAssignMaintenance, PermCompleteMaintenance,
		PermManageUsers, PermInviteUsers, PermViewUserActivity,
		PermViewDashboard, PermViewAnalytics, PermExportData,
	},
	RolePropertyManager: {
		PermViewProperties, PermEditProperties, PermManagePropertyAccess,
		PermViewTenants, PermCreateTenants, PermEditTenants, PermViewTenantDocuments,
		PermViewFinancials, PermManageRent, PermViewPayments, PermGenerateReports,
		PermViewMaintenance, PermCreateMaintenance, PermAssignMaintenance, PermCompleteMaintenance,
		PermInviteUsers, PermViewUserActivity,
		PermViewDashboard, PermViewAnalytics, PermExportData,
	},
	RoleAgent: {
		PermViewProperties, PermEditProperties,
		PermViewTenants, PermCreateTenants, PermEditTenants,
		PermViewFinancials, PermViewPayments,
		PermViewMaintenance, PermCreateMaintenance,
		PermViewDashboard,
	},
	RoleTenant: {
		PermViewOwnProperty,
		PermViewMaintenance, PermRequestMaintenance,
		PermDownloadDocuments, PermSendMessages,
		PermViewDashboard,
	},
	RoleViewOnlyLandlord: {
		PermViewProperties,
		PermViewTenants, PermViewTenantDocuments,
		PermViewFinancials, PermViewPayments,
		PermViewMaintenance,
		PermViewDashboard, PermDownloadDocuments,
	},
}

func TestPermissionsFor_EveryRoleHasEntry(t *testing.T) {
	require.Len(t, Roles(), len(rolePermissions))
	for _, r := range Roles() {
		_, ok := rolePermissions[r]
		assert.True(t, ok, "role %s missing from table", r)
		assert.NotZero(t, PermissionsFor(r).Len(), "role %s has no permissions", r)
	}
}

func TestPermissionsFor_NoDuplicatesInTable(t *testing.T) {
	for r, perms := range rolePermissions {
		assert.Len(t, perms, PermissionsFor(r).Len(), "role %s lists a permission twice", r)
	}
}

func TestPermissionsFor_MatchesGrantMatrix(t *testing.T) {
	for _, r := range Roles() {
		granted := PermissionsFor(r)
		want := NewPermissionSet(expectedGrants[r]...)
		for _, p := range AllPermissions() {
			assert.Equal(t, want.Has(p), granted.Has(p), "role %s permission %s", r, p)
		}
	}
}

func TestPermissionsFor_StableAndIsolated(t *testing.T) {
	for _, r := range Roles() {
		first := PermissionsFor(r)
		second := PermissionsFor(r)
		assert.True(t, first.Equal(second))
		assert.Equal(t, first.Slice(), second.Slice())

		delete(first, PermViewDashboard)
		first[PermManageUsers] = struct{}{}
		assert.True(t, second.Equal(PermissionsFor(r)), "mutating a result leaked into the table for %s", r)
	}
}

func TestPermissionsFor_LandlordEqualsAdmin(t *testing.T) {
	assert.True(t, PermissionsFor(RoleLandlord).Equal(PermissionsFor(RoleAdmin)))
}

func TestPermissionsFor_UnknownRoleDenies(t *testing.T) {
	assert.Zero(t, PermissionsFor(Role("superuser")).Len())
}

func TestAllPermissions_ClosedSet(t *testing.T) {
	all := AllPermissions()
	assert.Len(t, all, 29)
	assert.Equal(t, len(all), NewPermissionSet(all...).Len())
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("property_manager")
	require.NoError(t, err)
	assert.Equal(t, RolePropertyManager, r)

	_, err = ParseRole("owner")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestParsePermission(t *testing.T) {
	p, err := ParsePermission("export_data")
	require.NoError(t, err)
	assert.Equal(t, PermExportData, p)

	_, err = ParsePermission("export")
	assert.ErrorIs(t, err, ErrUnknownPermission)
}

func TestPermissionSet_JSON(t *testing.T) {
	set := NewPermissionSet(PermViewTenants, PermViewDashboard, PermViewTenants)
	data, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, `["view_dashboard","view_tenants"]`, string(data))

	var decoded PermissionSet
	require.NoError(t, json.Unmarshal([]byte(`["send_messages","send_messages"]`), &decoded))
	assert.Equal(t, 1, decoded.Len())
	assert.True(t, decoded.Has(PermSendMessages))
}

func TestRoleMatrix(t *testing.T) {
	m := RoleMatrix()
	require.Len(t, m, len(Roles()))
	assert.Contains(t, m[RoleTenant], PermRequestMaintenance)
	assert.NotContains(t, m[RoleAgent], PermDeleteProperties)
}
