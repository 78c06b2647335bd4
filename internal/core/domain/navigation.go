package domain

// NavItem is one entry of the dashboard sidebar and the view it opens.
type NavItem struct {
	Key         string      `json:"key"`
	Label       string      `json:"label"`
	Path        string      `json:"path"`
	Requirement Requirement `json:"requirement"`
}

var navigation = []NavItem{
	{Key: "dashboard", Label: "Dashboard", Path: "/dashboard", Requirement: Require(PermViewDashboard)},
	{Key: "properties", Label: "Properties", Path: "/properties", Requirement: RequireAny(PermViewProperties, PermViewOwnProperty)},
	{Key: "units", Label: "Units", Path: "/units", Requirement: Require(PermViewProperties)},
	{Key: "tenants", Label: "Tenants", Path: "/tenants", Requirement: Require(PermViewTenants)},
	{Key: "hotels", Label: "Hotels", Path: "/hotels", Requirement: Require(PermViewProperties)},
	{Key: "rooms", Label: "Rooms", Path: "/rooms", Requirement: Require(PermViewProperties)},
	{Key: "car_hires", Label: "Car Hire", Path: "/car-hires", Requirement: Require(PermViewDashboard)},
	{Key: "bookings", Label: "Bookings", Path: "/bookings", Requirement: RequireAny(PermViewPayments, PermViewOwnProperty)},
	{Key: "payments", Label: "Payments", Path: "/payments", Requirement: RequireAny(PermViewPayments, PermProcessPayments)},
	{Key: "maintenance", Label: "Maintenance", Path: "/maintenance", Requirement: RequireAny(PermViewMaintenance, PermRequestMaintenance)},
	{Key: "documents", Label: "Documents", Path: "/documents", Requirement: RequireAny(PermViewTenantDocuments, PermDownloadDocuments)},
	{Key: "messages", Label: "Messages", Path: "/messages", Requirement: Require(PermSendMessages)},
	{Key: "reports", Label: "Reports", Path: "/reports", Requirement: RequireAny(PermGenerateReports, PermViewAnalytics)},
	{Key: "users", Label: "Users", Path: "/users", Requirement: RequireAny(PermManageUsers, PermInviteUsers)},
	{Key: "activity", Label: "Activity", Path: "/activity", Requirement: Require(PermViewUserActivity)},
}

// Navigation returns the full catalog in display order.
func Navigation() []NavItem {
	out := make([]NavItem, len(navigation))
	for i, item := range navigation {
		out[i] = item.clone()
	}
	return out
}

// VisibleNavigation returns the items whose requirement d satisfies.
func VisibleNavigation(d Decider) []NavItem {
	out := make([]NavItem, 0, len(navigation))
	for _, item := range navigation {
		if item.Requirement.Allows(d) {
			out = append(out, item.clone())
		}
	}
	return out
}

// FindView looks up a catalog entry by key.
func FindView(key string) (NavItem, bool) {
	for _, item := range navigation {
		if item.Key == key {
			return item.clone(), true
		}
	}
	return NavItem{}, false
}

// clone detaches the item from the catalog, which backs every guard.
func (n NavItem) clone() NavItem {
	n.Requirement.Permissions = append([]Permission(nil), n.Requirement.Permissions...)
	return n
}
