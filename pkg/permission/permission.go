// Package permission holds the static role → permission table shared by the
// API server and staff clients, plus the membership checks over it.
//
// Role grants are derived from a base set rather than listed by hand, so a
// permission added to All reaches every role that is defined relative to it.
package permission

import "sort"

// Permission is a single action flag, e.g. "view_orders".
type Permission string

const (
	ViewDashboard Permission = "view_dashboard"

	ViewOrders        Permission = "view_orders"
	CreateOrders      Permission = "create_orders"
	UpdateOrderStatus Permission = "update_order_status"
	DeleteOrders      Permission = "delete_orders"

	ViewProducts   Permission = "view_products"
	CreateProducts Permission = "create_products"
	EditProducts   Permission = "edit_products"
	DeleteProducts Permission = "delete_products"

	ViewCategories   Permission = "view_categories"
	CreateCategories Permission = "create_categories"
	EditCategories   Permission = "edit_categories"
	DeleteCategories Permission = "delete_categories"

	ViewTables   Permission = "view_tables"
	CreateTables Permission = "create_tables"
	EditTables   Permission = "edit_tables"
	DeleteTables Permission = "delete_tables"
	GenerateQR   Permission = "generate_qr"

	ViewReports        Permission = "view_reports"
	ViewSalesReports   Permission = "view_sales_reports"
	ViewExpenseReports Permission = "view_expense_reports"
	ExportReports      Permission = "export_reports"

	ViewExpenses   Permission = "view_expenses"
	CreateExpenses Permission = "create_expenses"
	EditExpenses   Permission = "edit_expenses"
	DeleteExpenses Permission = "delete_expenses"

	ViewUsers   Permission = "view_users"
	CreateUsers Permission = "create_users"
	EditUsers   Permission = "edit_users"
	DeleteUsers Permission = "delete_users"
	ManageRoles Permission = "manage_roles"

	ViewSettings Permission = "view_settings"
	EditSettings Permission = "edit_settings"

	ViewNotifications Permission = "view_notifications"
	ProcessPayments   Permission = "process_payments"
)

// Roles known to the permission table.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
	RoleCashier  = "cashier"
)

// All lists every permission flag. Admin is granted exactly this set.
var All = []Permission{
	ViewDashboard,
	ViewOrders, CreateOrders, UpdateOrderStatus, DeleteOrders,
	ViewProducts, CreateProducts, EditProducts, DeleteProducts,
	ViewCategories, CreateCategories, EditCategories, DeleteCategories,
	ViewTables, CreateTables, EditTables, DeleteTables, GenerateQR,
	ViewReports, ViewSalesReports, ViewExpenseReports, ExportReports,
	ViewExpenses, CreateExpenses, EditExpenses, DeleteExpenses,
	ViewUsers, CreateUsers, EditUsers, DeleteUsers, ManageRoles,
	ViewSettings, EditSettings,
	ViewNotifications, ProcessPayments,
}

// floor is what every staff role can do.
var floor = []Permission{
	ViewDashboard,
	ViewOrders, CreateOrders, UpdateOrderStatus,
	ViewProducts, ViewCategories, ViewTables,
	ViewNotifications,
}

var roleGrants = map[string][]Permission{
	RoleAdmin:    sorted(All),
	RoleManager:  sorted(without(All, ManageRoles, CreateUsers, EditUsers, DeleteUsers, EditSettings)),
	RoleEmployee: sorted(floor),
	RoleCashier:  sorted(with(without(floor, UpdateOrderStatus), ProcessPayments, ViewReports, ViewSalesReports)),
}

// Roles returns the known role names in a stable order.
func Roles() []string {
	return []string{RoleAdmin, RoleManager, RoleEmployee, RoleCashier}
}

// IsRole reports whether role has an entry in the table.
func IsRole(role string) bool {
	_, ok := roleGrants[role]
	return ok
}

// ForRole returns a copy of the grants for role, or nil for an unknown role.
func ForRole(role string) []Permission {
	grants, ok := roleGrants[role]
	if !ok {
		return nil
	}
	out := make([]Permission, len(grants))
	copy(out, grants)
	return out
}

// Has reports whether required is in granted.
func Has(granted []Permission, required Permission) bool {
	for _, p := range granted {
		if p == required {
			return true
		}
	}
	return false
}

// HasAny reports whether at least one of required is in granted.
// An empty required list is never satisfied.
func HasAny(granted []Permission, required []Permission) bool {
	for _, r := range required {
		if Has(granted, r) {
			return true
		}
	}
	return false
}

// RoleHas is Has over the grants of role.
func RoleHas(role string, required Permission) bool {
	return Has(roleGrants[role], required)
}

func without(base []Permission, drop ...Permission) []Permission {
	out := make([]Permission, 0, len(base))
	for _, p := range base {
		if !Has(drop, p) {
			out = append(out, p)
		}
	}
	return out
}

func with(base []Permission, add ...Permission) []Permission {
	out := make([]Permission, 0, len(base)+len(add))
	out = append(out, base...)
	for _, p := range add {
		if !Has(out, p) {
			out = append(out, p)
		}
	}
	return out
}

func sorted(ps []Permission) []Permission {
	out := make([]Permission, len(ps))
	copy(out, ps)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
