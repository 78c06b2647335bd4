package domain

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Permission is a single named capability gating one dashboard feature.
type Permission string

// Property permissions.
const (
	PermViewProperties       Permission = "view_properties"
	PermCreateProperties     Permission = "create_properties"
	PermEditProperties       Permission = "edit_properties"
	PermDeleteProperties     Permission = "delete_properties"
	PermManagePropertyAccess Permission = "manage_property_access"
)

// Tenant permissions.
const (
	PermViewTenants         Permission = "view_tenants"
	PermCreateTenants       Permission = "create_tenants"
	PermEditTenants         Permission = "edit_tenants"
	PermRemoveTenants       Permission = "remove_tenants"
	PermViewTenantDocuments Permission = "view_tenant_documents"
)

// Financial permissions.
const (
	PermViewFinancials  Permission = "view_financials"
	PermManageRent      Permission = "manage_rent"
	PermViewPayments    Permission = "view_payments"
	PermProcessPayments Permission = "process_payments"
	PermGenerateReports Permission = "generate_reports"
)

// Maintenance permissions.
const (
	PermViewMaintenance     Permission = "view_maintenance"
	PermCreateMaintenance   Permission = "create_maintenance"
	PermAssignMaintenance   Permission = "assign_maintenance"
	PermCompleteMaintenance Permission = "complete_maintenance"
)

// User management permissions.
const (
	PermManageUsers      Permission = "manage_users"
	PermInviteUsers      Permission = "invite_users"
	PermViewUserActivity Permission = "view_user_activity"
)

// Dashboard permissions.
const (
	PermViewDashboard Permission = "view_dashboard"
	PermViewAnalytics Permission = "view_analytics"
	PermExportData    Permission = "export_data"
)

// Tenant self-service permissions.
const (
	PermViewOwnProperty    Permission = "view_own_property"
	PermRequestMaintenance Permission = "request_maintenance"
	PermDownloadDocuments  Permission = "download_documents"
	PermSendMessages       Permission = "send_messages"
)

var (
	propertyPermissions = []Permission{
		PermViewProperties,
		PermCreateProperties,
		PermEditProperties,
		PermDeleteProperties,
		PermManagePropertyAccess,
	}
	tenantPermissions = []Permission{
		PermViewTenants,
		PermCreateTenants,
		PermEditTenants,
		PermRemoveTenants,
		PermViewTenantDocuments,
	}
	financialPermissions = []Permission{
		PermViewFinancials,
		PermManageRent,
		PermViewPayments,
		PermProcessPayments,
		PermGenerateReports,
	}
	maintenancePermissions = []Permission{
		PermViewMaintenance,
		PermCreateMaintenance,
		PermAssignMaintenance,
		PermCompleteMaintenance,
	}
	userManagementPermissions = []Permission{
		PermManageUsers,
		PermInviteUsers,
		PermViewUserActivity,
	}
	dashboardPermissions = []Permission{
		PermViewDashboard,
		PermViewAnalytics,
		PermExportData,
	}
	selfServicePermissions = []Permission{
		PermViewOwnProperty,
		PermRequestMaintenance,
		PermDownloadDocuments,
		PermSendMessages,
	}
)

// AllPermissions returns every known permission, grouped as declared.
func AllPermissions() []Permission {
	return concat(
		propertyPermissions,
		tenantPermissions,
		financialPermissions,
		maintenancePermissions,
		userManagementPermissions,
		dashboardPermissions,
		selfServicePermissions,
	)
}

// Valid reports whether p is a known permission identifier.
func (p Permission) Valid() bool {
	for _, known := range AllPermissions() {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePermission converts a raw identifier into a Permission.
func ParsePermission(s string) (Permission, error) {
	p := Permission(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPermission, s)
	}
	return p, nil
}

func concat(groups ...[]Permission) []Permission {
	var n int
	for _, g := range groups {
		n += len(g)
	}
	out := make([]Permission, 0, n)
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// PermissionSet is an unordered, duplicate-free collection of permissions.
// It encodes to JSON as a sorted list.
type PermissionSet map[Permission]struct{}

// NewPermissionSet builds a set from perms, dropping duplicates.
func NewPermissionSet(perms ...Permission) PermissionSet {
	s := make(PermissionSet, len(perms))
	for _, p := range perms {
		s[p] = struct{}{}
	}
	return s
}

// Has reports whether p is a member. A nil set has no members.
func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

func (s PermissionSet) Len() int { return len(s) }

// Slice returns the members sorted lexically.
func (s PermissionSet) Slice() []Permission {
	out := make([]Permission, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Equal reports whether both sets hold exactly the same members.
func (s PermissionSet) Equal(other PermissionSet) bool {
	if len(s) != len(other) {
		return false
	}
	for p := range s {
		if !other.Has(p) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the set.
func (s PermissionSet) Clone() PermissionSet {
	out := make(PermissionSet, len(s))
	for p := range s {
		out[p] = struct{}{}
	}
	return out
}

func (s PermissionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

func (s *PermissionSet) UnmarshalJSON(data []byte) error {
	var list []Permission
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*s = NewPermissionSet(list...)
	return nil
}
