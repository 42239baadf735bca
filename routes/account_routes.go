package routes

import (
	"github.com/anjiri1684/reward_ledger/handlers"
	"github.com/gofiber/fiber/v2"
)

func AccountRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	accounts := api.Group("/accounts")
	accounts.Post("/ensure", handlers.EnsureAccount)
	accounts.Get("/:accountId", handlers.GetAccount)
	accounts.Patch("/:accountId", handlers.UpdateAccount)
	accounts.Post("/:accountId/verify", handlers.VerifyAccount)
	accounts.Post("/:accountId/activity", handlers.LogActivity)
	accounts.Post("/:accountId/spam-check", handlers.CheckSpam)

	accounts.Get("/:accountId/referrals", handlers.ListReferrals)
	accounts.Get("/:accountId/referrals/analysis", handlers.AnalyzeReferrals)
	accounts.Get("/:accountId/referrals/analysis/detailed", handlers.DetailedReferralAnalysis)
	accounts.Get("/:accountId/classification", handlers.ClassifyAccount)
	accounts.Post("/:accountId/tier/refresh", handlers.RefreshEngagementTier)

	accounts.Get("/:accountId/tasks/available", handlers.ListAvailableTasks)
	accounts.Get("/:accountId/withdrawals/latest-pending", handlers.GetLatestPendingWithdrawal)

	api.Post("/referrals", handlers.AddReferralEdge)
}
