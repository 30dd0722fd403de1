package dto

// PermissionDTO permiso del catálogo.
type PermissionDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// OverrideDTO override explícito de un usuario.
type OverrideDTO struct {
	Permission string `json:"permission"`
	Granted    bool   `json:"granted"`
}

// UserPermissionsResponse vista administrativa de los permisos de un usuario.
type UserPermissionsResponse struct {
	UserID    int64           `json:"user_id"`
	Username  string          `json:"username"`
	Role      string          `json:"role"`
	Catalog   []PermissionDTO `json:"catalog"`
	Effective []string        `json:"effective"`
	Overrides []OverrideDTO   `json:"overrides"`
}

// SetPermissionRequest concede (granted=true) o revoca (granted=false) un permiso a un usuario.
type SetPermissionRequest struct {
	Permission string `json:"permission" validate:"notblank"`
	Granted    *bool  `json:"granted" validate:"required"`
}

// MyPermissionsResponse permisos efectivos del usuario autenticado.
type MyPermissionsResponse struct {
	UserID      int64    `json:"user_id"`
	Permissions []string `json:"permissions"`
}
