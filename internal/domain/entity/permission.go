package entity

import "sort"

// Catálogo fijo de permisos. Se siembra una sola vez al arrancar.
const (
	PermManageStock          = "manage_stock"
	PermMakeSales            = "make_sales"
	PermGenerateSalesReports = "generate_sales_reports"
	PermManageUsers          = "manage_users"
	PermModifyAppSettings    = "modify_app_settings"
	PermExportProductData    = "export_product_data"
	PermImportProductData    = "import_product_data"
	PermExportDatabase       = "export_database"
	PermImportDatabase       = "import_database"
	PermViewSalesDashboard   = "view_sales_dashboard"
	PermAccessAdminPanel     = "access_admin_panel"
	PermManageInventory      = "manage_inventory"
	PermViewInventory        = "view_inventory"
	PermAdjustStock          = "adjust_stock"
	PermManageCategories     = "manage_categories"
	PermManageSuppliers      = "manage_suppliers"
	PermViewCostPrice        = "view_cost_price"
	PermCancelSales          = "cancel_sales"
	PermViewOwnSalesHistory  = "view_own_sales_history"
	PermViewAllSalesHistory  = "view_all_sales_history"
	PermApplySaleDiscounts   = "apply_sale_discounts"
)

// PermissionCatalog lista completa en orden de siembra.
var PermissionCatalog = []string{
	PermManageStock, PermMakeSales, PermGenerateSalesReports, PermManageUsers,
	PermModifyAppSettings, PermExportProductData, PermImportProductData,
	PermExportDatabase, PermImportDatabase, PermViewSalesDashboard,
	PermAccessAdminPanel, PermManageInventory, PermViewInventory, PermAdjustStock,
	PermManageCategories, PermManageSuppliers, PermViewCostPrice, PermCancelSales,
	PermViewOwnSalesHistory, PermViewAllSalesHistory, PermApplySaleDiscounts,
}

// DefaultRolePermissions permisos por defecto de cada rol.
// El administrador recibe el catálogo completo.
func DefaultRolePermissions(role string) []string {
	switch role {
	case RoleAdministrator:
		return append([]string(nil), PermissionCatalog...)
	case RoleEmployee:
		return []string{PermMakeSales, PermViewSalesDashboard}
	}
	return nil
}

// Permission capacidad nombrada del catálogo.
type Permission struct {
	ID   int64
	Name string
}

// UserPermission override explícito de un permiso para un usuario.
// Granted=true lo fuerza, Granted=false lo revoca aunque el rol lo otorgue.
type UserPermission struct {
	UserID         int64
	PermissionID   int64
	PermissionName string
	Granted        bool
}

// PermissionSet conjunto de nombres de permiso.
type PermissionSet map[string]struct{}

// NewPermissionSet construye un set a partir de nombres.
func NewPermissionSet(names ...string) PermissionSet {
	s := make(PermissionSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has indica si el permiso está en el set.
func (s PermissionSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Add agrega un permiso.
func (s PermissionSet) Add(name string) { s[name] = struct{}{} }

// Remove quita un permiso.
func (s PermissionSet) Remove(name string) { delete(s, name) }

// Sorted devuelve los nombres ordenados (respuestas estables).
func (s PermissionSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// ApplyOverrides aplica los overrides sobre el set base y devuelve el resultado.
// Hay a lo sumo un override por permiso, así que el orden no importa.
func (s PermissionSet) ApplyOverrides(overrides []UserPermission) PermissionSet {
	out := make(PermissionSet, len(s))
	for n := range s {
		out[n] = struct{}{}
	}
	for _, o := range overrides {
		if o.Granted {
			out.Add(o.PermissionName)
		} else {
			out.Remove(o.PermissionName)
		}
	}
	return out
}
