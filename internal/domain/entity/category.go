package entity

// Category agrupa productos. Al borrarla los productos quedan sin categoría.
type Category struct {
	ID          int64
	Name        string
	Description string
}

// CategoryPatch actualización parcial de una categoría.
type CategoryPatch struct {
	Name        *string
	Description *string
}

// Supplier proveedor de productos. Al borrarlo los productos quedan sin proveedor.
type Supplier struct {
	ID      int64
	Name    string
	Contact string
	Phone   string
	Email   string
	Address string
}

// SupplierPatch actualización parcial de un proveedor.
type SupplierPatch struct {
	Name    *string
	Contact *string
	Phone   *string
	Email   *string
	Address *string
}
