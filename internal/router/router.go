package router

import (
	"time"

	"tavola/internal/config"
	"tavola/internal/handler"
	"tavola/internal/middleware"
	"tavola/internal/model"
	"tavola/internal/repository"
	"tavola/internal/service"
	"tavola/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis.
// rdb and dispatcher may be nil; the menu cache and receipts are then skipped.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(""))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.APIRateLimit, time.Minute))

	taxRate := cfg.TaxRateDecimal()

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	permRepo := repository.NewPermissionRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	menuItemRepo := repository.NewMenuItemRepository(db)
	tableRepo := repository.NewTableRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	staffRepo := repository.NewStaffRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, roleRepo, cfg)
	userSvc := service.NewUserService(userRepo, roleRepo)
	roleSvc := service.NewRoleService(roleRepo, permRepo)
	menuSvc := service.NewMenuService(categoryRepo, menuItemRepo, rdb)
	tableSvc := service.NewTableService(tableRepo)
	orderSvc := service.NewOrderService(orderRepo, menuItemRepo, tableRepo, taxRate)
	paymentSvc := service.NewPaymentService(paymentRepo, orderRepo, dispatcher, taxRate, cfg.AppName)
	inventorySvc := service.NewInventoryService(ingredientRepo)
	reservationSvc := service.NewReservationService(reservationRepo, tableRepo)
	staffSvc := service.NewStaffService(staffRepo, userRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(userSvc)
	rolesH := handler.NewRolesHandler(roleSvc)
	menuH := handler.NewMenuHandler(menuSvc)
	tablesH := handler.NewTablesHandler(tableSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	cashierH := handler.NewCashierHandler(paymentSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	reservationsH := handler.NewReservationsHandler(reservationSvc)
	staffH := handler.NewStaffHandler(staffSvc)

	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	perm := func(p string) gin.HandlerFunc { return middleware.RequirePermission(authSvc, p) }

	// ── Routes ───────────────────────────────────────────────────────────────
	api := r.Group(cfg.APIPrefix)

	api.GET("/health", handler.Health(cfg.AppName, cfg.AppVersion, db, rdb))

	auth := api.Group("/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(cfg.LoginRateLimit), authH.Login)
		auth.POST("/refresh", authH.Refresh)
		auth.GET("/me", jwtMW, authH.Me)
	}

	admin := api.Group("/admin", jwtMW)
	{
		admin.GET("/users", perm(model.PermViewUsers), usersH.List)
		admin.GET("/users/:id", perm(model.PermViewUsers), usersH.Get)
		admin.POST("/users", perm(model.PermManageUsers), usersH.Create)
		admin.PUT("/users/:id", perm(model.PermManageUsers), usersH.Update)
		admin.DELETE("/users/:id", perm(model.PermManageUsers), usersH.Delete)

		admin.GET("/roles", perm(model.PermViewRoles), rolesH.List)
		admin.GET("/roles/:id", perm(model.PermViewRoles), rolesH.Get)
		admin.POST("/roles", perm(model.PermManageRoles), rolesH.Create)
		admin.PUT("/roles/:id", perm(model.PermManageRoles), rolesH.Update)
		admin.DELETE("/roles/:id", perm(model.PermManageRoles), rolesH.Delete)
		admin.POST("/roles/:id/permissions/:permission_id", perm(model.PermManageRoles), rolesH.AssignPermission)
		admin.DELETE("/roles/:id/permissions/:permission_id", perm(model.PermManageRoles), rolesH.RevokePermission)

		admin.GET("/permissions", perm(model.PermViewPermissions), rolesH.ListPermissions)
		admin.POST("/permissions", perm(model.PermManagePermissions), rolesH.CreatePermission)
		admin.DELETE("/permissions/:id", perm(model.PermManagePermissions), rolesH.DeletePermission)
	}

	rest := api.Group("/restaurant", jwtMW)
	{
		// Reads need authentication only
		rest.GET("/categories", menuH.ListCategories)
		rest.GET("/categories/:id", menuH.GetCategory)
		rest.GET("/items", menuH.ListItems)
		rest.GET("/items/:id", menuH.GetItem)
		rest.GET("/tables", tablesH.List)
		rest.GET("/tables/:id", tablesH.Get)

		menuW := rest.Group("", perm(model.PermManageMenu))
		{
			menuW.POST("/categories", menuH.CreateCategory)
			menuW.PUT("/categories/:id", menuH.UpdateCategory)
			menuW.DELETE("/categories/:id", menuH.DeleteCategory)
			menuW.POST("/items", menuH.CreateItem)
			menuW.PUT("/items/:id", menuH.UpdateItem)
			menuW.DELETE("/items/:id", menuH.DeleteItem)
		}

		tablesW := rest.Group("/tables", perm(model.PermManageTables))
		{
			tablesW.POST("", tablesH.Create)
			tablesW.PUT("/:id", tablesH.Update)
			tablesW.DELETE("/:id", tablesH.Delete)
		}

		orders := rest.Group("/orders", perm(model.PermManageOrders))
		{
			orders.GET("", ordersH.List)
			orders.POST("", ordersH.Create)
			orders.GET("/:id", ordersH.Get)
			orders.DELETE("/:id", ordersH.Delete)
			orders.PUT("/:id/status", ordersH.UpdateStatus)
			orders.PUT("/:id/items/:item_id/status", ordersH.UpdateItemStatus)
		}

		res := rest.Group("/reservations", perm(model.PermManageReservations))
		{
			res.GET("", reservationsH.List)
			res.POST("", reservationsH.Create)
			res.GET("/:id", reservationsH.Get)
			res.PUT("/:id", reservationsH.Update)
			res.PUT("/:id/status", reservationsH.UpdateStatus)
			res.DELETE("/:id", reservationsH.Delete)
		}
	}

	cashier := api.Group("/cashier", jwtMW, perm(model.PermProcessPayments))
	{
		cashier.GET("/orders/:id/invoice", cashierH.Invoice)
		cashier.GET("/orders/:id/invoice.pdf", cashierH.InvoicePDF)
		cashier.GET("/orders/:id/payments", cashierH.ListByOrder)
		cashier.GET("/payments", cashierH.List)
		cashier.POST("/payments", cashierH.Process)
		cashier.GET("/payments/:id", cashierH.Get)
		cashier.POST("/payments/:id/refund", cashierH.Refund)
	}

	inv := api.Group("/inventory", jwtMW, perm(model.PermManageInventory))
	{
		inv.GET("/items", inventoryH.List)
		inv.POST("/items", inventoryH.Create)
		inv.GET("/items/low-stock", inventoryH.LowStock)
		inv.GET("/items/:id", inventoryH.Get)
		inv.PUT("/items/:id", inventoryH.Update)
		inv.DELETE("/items/:id", inventoryH.Delete)
		inv.GET("/low-stock", inventoryH.LowStock)

		inv.GET("/movements", inventoryH.ListMovements)
		inv.POST("/movements", inventoryH.RecordMovement)
		inv.GET("/movements/export", inventoryH.ExportMovements)
	}

	staff := api.Group("/staff", jwtMW, perm(model.PermManageStaff))
	{
		staff.GET("/employees", staffH.ListEmployees)
		staff.POST("/employees", staffH.CreateEmployee)
		staff.GET("/employees/:id", staffH.GetEmployee)
		staff.PUT("/employees/:id", staffH.UpdateEmployee)
		staff.DELETE("/employees/:id", staffH.DeleteEmployee)
		staff.POST("/employees/:id/check-in", staffH.CheckIn)
		staff.GET("/employees/:id/attendance", staffH.ListAttendance)
		staff.POST("/employees/:id/leaves", staffH.RequestLeave)
		staff.POST("/attendance/:id/check-out", staffH.CheckOut)
		staff.GET("/leaves", staffH.ListLeaves)
		staff.PUT("/leaves/:id/status", staffH.UpdateLeaveStatus)
	}

	// Swagger UI, only enabled outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
