package routes

import (
	"github.com/anjiri1684/reward_ledger/handlers"
	"github.com/anjiri1684/reward_ledger/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/auth/login", handlers.LoginAdmin)

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	settings := admin.Group("/settings")
	settings.Get("/:key", handlers.GetSetting)
	settings.Put("/:key", handlers.SetSetting)
	settings.Post("/:key/increment", handlers.IncrementSetting)

	admin.Get("/tiers/distribution", handlers.GetTierDistribution)
	admin.Post("/maintenance/sweep", handlers.TriggerMaintenanceSweep)
	admin.Post("/maintenance/idle-decay", handlers.TriggerIdleDecay)
	admin.Post("/maintenance/referral-decay", handlers.TriggerReferralDecay)

	blacklist := admin.Group("/blacklist")
	blacklist.Get("", handlers.ListBlacklisted)
	blacklist.Get("/:accountId", handlers.GetBlacklistStatus)
	blacklist.Post("/:accountId", handlers.BlacklistAccount)
	blacklist.Delete("/:accountId", handlers.UnblacklistAccount)
}
