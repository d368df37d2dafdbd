package main

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"

	"ricemill-backend/internal/audit"
	"ricemill-backend/internal/auth"
	"ricemill-backend/internal/config"
	"ricemill-backend/internal/dashboard"
	"ricemill-backend/internal/database"
	"ricemill-backend/internal/inventory"
	"ricemill-backend/internal/master"
	"ricemill-backend/internal/milling"
	"ricemill-backend/internal/models"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()
	database.Init(cfg)

	inventorySvc := inventory.NewService(database.DB)
	millingSvc := milling.NewService(database.DB)
	dashboardSvc := dashboard.NewService(database.DB)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"success": false,
					"error":   e.Message,
				})
			}
			logrus.WithError(err).Error("unexpected error")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "internal server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Stock ledger
	protected.Get("/stocks", inventory.ListStocksHandler(inventorySvc))
	protected.Post("/stocks", auth.RequirePermission(models.PermStockManage), inventory.CreateStockHandler(inventorySvc))
	protected.Delete("/stocks/:id", auth.RequirePermission(models.PermStockManage), inventory.DeleteStockHandler(inventorySvc))

	// Milling batches
	protected.Get("/milling-batches", milling.ListBatchesHandler(millingSvc))
	protected.Get("/milling-batches/:id", milling.GetBatchHandler(millingSvc))
	protected.Post("/milling-batches", auth.RequirePermission(models.PermMillingManage), milling.CreateBatchHandler(millingSvc))
	protected.Post("/milling-batches/:id/close", auth.RequirePermission(models.PermMillingManage), milling.CloseBatchHandler(millingSvc))
	protected.Delete("/milling-batches/:id", auth.RequirePermission(models.PermMillingManage), milling.DeleteBatchHandler(millingSvc))

	// Output packages
	protected.Post("/milling-batches/:id/outputs", auth.RequirePermission(models.PermMillingManage), milling.AddOutputHandler(millingSvc))
	protected.Delete("/milling-outputs/:id", auth.RequirePermission(models.PermMillingManage), milling.RemoveOutputHandler(millingSvc))

	// Dashboard
	protected.Get("/dashboard/stats", dashboard.StatsHandler(dashboardSvc))

	// Master data
	protected.Get("/producer-groups", master.ListProducerGroupsHandler())
	protected.Post("/producer-groups", auth.RequirePermission(models.PermMasterManage), master.CreateProducerGroupHandler())
	protected.Put("/producer-groups/:id", auth.RequirePermission(models.PermMasterManage), master.UpdateProducerGroupHandler())
	protected.Delete("/producer-groups/:id", auth.RequirePermission(models.PermMasterManage), master.DeleteProducerGroupHandler())

	protected.Get("/farmers", master.ListFarmersHandler())
	protected.Post("/farmers", auth.RequirePermission(models.PermMasterManage), master.CreateFarmerHandler())
	protected.Put("/farmers/:id", auth.RequirePermission(models.PermMasterManage), master.UpdateFarmerHandler())
	protected.Delete("/farmers/:id", auth.RequirePermission(models.PermMasterManage), master.DeleteFarmerHandler())

	protected.Get("/varieties", master.ListVarietiesHandler())
	protected.Post("/varieties", auth.RequirePermission(models.PermMasterManage), master.CreateVarietyHandler())
	protected.Delete("/varieties/:id", auth.RequirePermission(models.PermMasterManage), master.DeleteVarietyHandler())

	// Audit logs
	protected.Get("/audit-logs", auth.RequireAdmin(), audit.ListAuditLogsHandler())

	logrus.WithField("port", cfg.HTTPPort).Info("server listening")
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
