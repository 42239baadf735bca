package routes

import (
	"github.com/anjiri1684/reward_ledger/handlers"
	"github.com/anjiri1684/reward_ledger/middleware"
	"github.com/gofiber/fiber/v2"
)

func WorkflowRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	tasks := api.Group("/tasks")
	tasks.Get("", handlers.ListTasks)
	tasks.Get("/:taskId", handlers.GetTask)

	submissions := api.Group("/submissions")
	submissions.Post("", handlers.CreateSubmission)
	submissions.Get("/:submissionId", handlers.GetSubmission)

	withdrawals := api.Group("/withdrawals")
	withdrawals.Post("", handlers.CreateWithdrawal)

	// review surface, admin only
	review := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	review.Post("/tasks", handlers.CreateTask)
	review.Delete("/tasks/:taskId", handlers.DeleteTask)
	review.Get("/submissions/pending", handlers.ListPendingSubmissions)
	review.Post("/submissions/:submissionId/approve", handlers.ApproveSubmission)
	review.Post("/submissions/:submissionId/reject", handlers.RejectSubmission)
	review.Post("/submissions/bulk-approve", handlers.BulkApprovePending)
	review.Post("/submissions/bulk-reject", handlers.BulkRejectPending)
	review.Get("/withdrawals/pending", handlers.ListPendingWithdrawals)
	review.Post("/withdrawals/:withdrawalId/process", handlers.ProcessWithdrawal)
}
