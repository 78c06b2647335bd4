package domain

// rolePermissions is the single source of truth for what each role may do.
// Every role lists its full set; there is no inheritance between roles.
var rolePermissions = map[Role][]Permission{
	RoleLandlord: concat(
		propertyPermissions,
		tenantPermissions,
		financialPermissions,
		maintenancePermissions,
		userManagementPermissions,
		dashboardPermissions,
	),
	RoleAdmin: concat(
		propertyPermissions,
		tenantPermissions,
		financialPermissions,
		maintenancePermissions,
		userManagementPermissions,
		dashboardPermissions,
	),
	RolePropertyManager: {
		PermViewProperties,
		PermEditProperties,
		PermManagePropertyAccess,
		PermViewTenants,
		PermCreateTenants,
		PermEditTenants,
		PermViewTenantDocuments,
		PermViewFinancials,
		PermManageRent,
		PermViewPayments,
		PermGenerateReports,
		PermViewMaintenance,
		PermCreateMaintenance,
		PermAssignMaintenance,
		PermCompleteMaintenance,
		PermInviteUsers,
		PermViewUserActivity,
		PermViewDashboard,
		PermViewAnalytics,
		PermExportData,
	},
	RoleAgent: {
		PermViewProperties,
		PermEditProperties,
		PermViewTenants,
		PermCreateTenants,
		PermEditTenants,
		PermViewFinancials,
		PermViewPayments,
		PermViewMaintenance,
		PermCreateMaintenance,
		PermViewDashboard,
	},
	RoleTenant: {
		PermViewOwnProperty,
		PermViewMaintenance,
		PermRequestMaintenance,
		PermDownloadDocuments,
		PermSendMessages,
		PermViewDashboard,
	},
	RoleViewOnlyLandlord: {
		PermViewProperties,
		PermViewTenants,
		PermViewTenantDocuments,
		PermViewFinancials,
		PermViewPayments,
		PermViewMaintenance,
		PermViewDashboard,
		PermDownloadDocuments,
	},
}

// PermissionsFor returns the permissions granted to role. The result is a
// fresh copy; unknown roles get an empty set.
func PermissionsFor(role Role) PermissionSet {
	return NewPermissionSet(rolePermissions[role]...)
}

// RoleMatrix returns every role with its sorted permission list.
func RoleMatrix() map[Role][]Permission {
	out := make(map[Role][]Permission, len(roles))
	for _, r := range roles {
		out[r] = PermissionsFor(r).Slice()
	}
	return out
}
