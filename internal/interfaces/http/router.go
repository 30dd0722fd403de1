package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/authz"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/application/reports"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/application/users"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	Authz      *authz.Resolver
	UserUC     *users.UserUseCase
	ProductUC  *inventory.ProductUseCase
	CategoryUC *inventory.CategoryUseCase
	SupplierUC *inventory.SupplierUseCase
	Ledger     *inventory.StockLedger
	SaleUC     *sales.SaleUseCase
	ReportUC   *reports.ReportUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Authz)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/recovery/questions", authHandler.RecoveryQuestions)
	authGroup.Post("/recovery/reset", authHandler.ResetPassword)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	me := protected.Group("/me")
	me.Get("/permissions", authHandler.MyPermissions)
	me.Put("/password", authHandler.ChangePassword)
	me.Put("/security-questions", authHandler.UpdateSecurityQuestions)

	// Usuarios y permisos (administración)
	manageUsers := RequirePermission(deps.Authz, entity.PermManageUsers)
	userHandler := NewUserHandler(deps.UserUC, deps.Authz)
	usersGroup := protected.Group("/users", manageUsers)
	usersGroup.Post("/", userHandler.Create)
	usersGroup.Get("/", userHandler.List)
	usersGroup.Get("/:id", userHandler.GetByID)
	usersGroup.Put("/:id", userHandler.Update)
	usersGroup.Delete("/:id", userHandler.Delete)
	usersGroup.Get("/:id/permissions", userHandler.Permissions)
	usersGroup.Put("/:id/permissions", userHandler.SetPermission)

	permHandler := NewPermissionHandler(deps.Authz)
	protected.Get("/permissions", manageUsers, permHandler.Catalog)
	roles := protected.Group("/roles", manageUsers)
	roles.Post("/:role/permissions/:name", permHandler.AssignToRole)
	roles.Delete("/:role/permissions/:name", permHandler.RevokeFromRole)

	// Categorías y proveedores
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := protected.Group("/categories")
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Productos y stock
	productHandler := NewProductHandler(deps.ProductUC, deps.Ledger)
	products := protected.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/barcode/:code", productHandler.GetByBarcode)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/deactivate", productHandler.Deactivate)
	products.Post("/:id/stock", productHandler.AdjustStock)
	products.Get("/:id/movements", productHandler.Movements)

	// Ventas
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup := protected.Group("/sales")
	salesGroup.Post("/", RequirePermission(deps.Authz, entity.PermMakeSales), saleHandler.Register)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/:id/cancel", RequirePermission(deps.Authz, entity.PermCancelSales), saleHandler.Cancel)

	// Reportes
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup := protected.Group("/reports")
	reportsGroup.Get("/dashboard", RequirePermission(deps.Authz, entity.PermViewSalesDashboard), reportHandler.Dashboard)
	generate := RequirePermission(deps.Authz, entity.PermGenerateSalesReports)
	reportsGroup.Get("/summary", generate, reportHandler.Summary)
	reportsGroup.Get("/top-products", generate, reportHandler.TopProducts)
	reportsGroup.Get("/by-user", generate, reportHandler.ByUser)
}
