package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-itops-portal/internal/exchange"
	"go-itops-portal/internal/handler"
	"go-itops-portal/internal/mailer"
	"go-itops-portal/internal/middleware"
	"go-itops-portal/internal/model"
	"go-itops-portal/internal/repository"
	"go-itops-portal/internal/service"
	"go-itops-portal/internal/ws"
	"go-itops-portal/pkg/config"
	"go-itops-portal/pkg/database"
	applogger "go-itops-portal/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func main() {
	// 1. Configuration and logging
	cfg := config.Load()
	if err := applogger.Init(cfg.LogLevel, cfg.Server.Env); err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer zap.L().Sync()

	// 2. Database
	db := database.ConnectDB(&cfg.DB)
	if err := db.AutoMigrate(
		&model.Asset{},
		&model.AssetHistory{},
		&model.StockItem{},
		&model.Invoice{},
		&model.InvoiceItem{},
		&model.Delivery{},
		&model.NewHire{},
		&model.User{},
	); err != nil {
		zap.L().Fatal("auto migrate failed", zap.Error(err))
	}

	// 3. Seed the default admin account
	seedAdmin(db)

	// 4. WebSocket hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Notifications
	dispatcher := mailer.NewDispatcher(mailer.NewSender(cfg.SMTP), wsHub)

	// 6. Dependency injection
	assetRepo := repository.NewAssetRepo(db)
	historyRepo := repository.NewHistoryRepo(db)
	stockRepo := repository.NewStockRepo(db)
	invoiceRepo := repository.NewInvoiceRepo(db)
	deliveryRepo := repository.NewDeliveryRepo(db)
	hireRepo := repository.NewNewHireRepo(db)
	userRepo := repository.NewUserRepo(db)

	assetService := service.NewAssetService(assetRepo, historyRepo, db, wsHub)
	stockService := service.NewStockService(stockRepo, db, wsHub)
	invoiceService := service.NewInvoiceService(invoiceRepo, exchange.NewClient(), db, wsHub, cfg.UploadsDir)
	deliveryService := service.NewDeliveryService(deliveryRepo, db, wsHub, dispatcher)
	hireService := service.NewNewHireService(hireRepo, db, wsHub, dispatcher)
	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(userRepo)

	assetHandler := handler.NewAssetHandler(assetService)
	stockHandler := handler.NewStockHandler(stockService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	deliveryHandler := handler.NewDeliveryHandler(deliveryService)
	hireHandler := handler.NewNewHireHandler(hireService)
	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(authService)

	// 7. Fiber
	app := fiber.New(fiber.Config{
		AppName:   "IT Ops Portal",
		BodyLimit: 25 * 1024 * 1024, // base64 invoice uploads
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// 8. Routes
	api := app.Group("/api")

	// ============ PUBLIC ROUTES ============
	api.Post("/login", authHandler.Login)
	api.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	assets := protected.Group("/assets", middleware.RequirePermission(model.ModuleAssets))
	assets.Get("/", assetHandler.GetAssets)
	assets.Post("/", assetHandler.CreateAsset)
	assets.Post("/bulk-upload", assetHandler.BulkUpload)
	assets.Post("/upgrade-primary", assetHandler.UpgradePrimary)
	assets.Post("/swap-peripheral", assetHandler.SwapPeripheral)
	assets.Get("/:id", assetHandler.GetAsset)
	assets.Put("/:id", assetHandler.UpdateAsset)
	assets.Delete("/:id", assetHandler.DeleteAsset)

	// Off-boarding is a separate module even though it operates on assets.
	protected.Post("/assets/offboard",
		middleware.RequirePermission(model.ModuleOffboarding), assetHandler.Offboard)

	stock := protected.Group("/stock", middleware.RequirePermission(model.ModuleStock))
	stock.Get("/", stockHandler.GetStock)
	stock.Get("/item-names", stockHandler.GetItemNames)
	stock.Post("/", stockHandler.CreateStockItem)
	stock.Post("/bulk-upload", stockHandler.BulkUpload)
	stock.Get("/:id", stockHandler.GetStockItem)
	stock.Put("/:id", stockHandler.UpdateStockItem)
	stock.Delete("/:id", stockHandler.DeleteStockItem)

	expenses := protected.Group("/it_expenses", middleware.RequirePermission(model.ModuleITExpenses))
	expenses.Get("/", invoiceHandler.GetInvoices)
	expenses.Post("/", invoiceHandler.CreateInvoice)
	expenses.Get("/download/:id", invoiceHandler.DownloadFile)
	expenses.Get("/:id", invoiceHandler.GetInvoice)
	expenses.Put("/:id", invoiceHandler.UpdateInvoice)
	expenses.Delete("/:id", invoiceHandler.DeleteInvoice)

	deliveries := protected.Group("/deliveries", middleware.RequirePermission(model.ModuleDeliveries))
	deliveries.Get("/", deliveryHandler.GetDeliveries)
	deliveries.Post("/", deliveryHandler.CreateDelivery)
	deliveries.Post("/bulk-upload", deliveryHandler.BulkUpload)
	deliveries.Get("/:id", deliveryHandler.GetDelivery)
	deliveries.Put("/:id", deliveryHandler.UpdateDelivery)
	deliveries.Delete("/:id", deliveryHandler.DeleteDelivery)

	hires := protected.Group("/new_hires", middleware.RequirePermission(model.ModuleNewHire))
	hires.Get("/", hireHandler.GetNewHires)
	hires.Post("/", hireHandler.CreateNewHire)
	hires.Post("/bulk-upload", hireHandler.BulkUpload)
	hires.Get("/:id", hireHandler.GetNewHire)
	hires.Put("/:id", hireHandler.UpdateNewHire)
	hires.Delete("/:id", hireHandler.DeleteNewHire)

	users := protected.Group("/users", middleware.RequirePermission(model.ModuleUserManagement))
	users.Get("/", userHandler.GetUsers)
	users.Post("/", userHandler.CreateUser)
	users.Get("/:id", userHandler.GetUser)
	users.Put("/:id", userHandler.UpdateUser)
	users.Delete("/:id", userHandler.DeleteUser)

	// WebSocket route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 9. Graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			zap.L().Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		zap.L().Fatal("server forced to shutdown", zap.Error(err))
	}
	zap.L().Info("server exited")
}

// seedAdmin creates the built-in admin account on first boot. It holds every
// module and cannot be deleted through the API.
func seedAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	if _, err := userRepo.FindByUsername("admin"); err == nil {
		return
	}

	permissions := make(map[string]bool, len(model.AllModules))
	for _, m := range model.AllModules {
		permissions[m] = true
	}

	admin := &model.User{
		Username:    "admin",
		Role:        model.RoleAdministrator,
		Permissions: datatypes.NewJSONType(permissions),
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	if err := admin.SetPassword("admin"); err != nil {
		zap.L().Warn("failed to hash admin password", zap.Error(err))
		return
	}
	if err := userRepo.Create(admin); err != nil {
		zap.L().Warn("failed to create admin user", zap.Error(err))
		return
	}
	zap.L().Info("admin user created", zap.String("username", "admin"))
}
