package handlers

import (
	"github.com/anjiri1684/reward_ledger/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateSubmissionRequest struct {
	AccountID   int64    `json:"account_id" validate:"required"`
	TaskID      string   `json:"task_id" validate:"required,uuid"`
	Description string   `json:"description"`
	Evidence    []string `json:"evidence"`
}

func CreateSubmission(c *fiber.Ctx) error {
	var req CreateSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	taskID, err := uuid.Parse(req.TaskID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task id"})
	}
	submission, err := services.CreateSubmission(req.AccountID, taskID, req.Description, req.Evidence)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(submission)
}

func GetSubmission(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("submissionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid submission id"})
	}
	submission, err := services.GetSubmission(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(submission)
}

func ListPendingSubmissions(c *fiber.Ctx) error {
	pending, err := services.ListPendingSubmissions()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(pending)
}

type ReviewRequest struct {
	ReviewerID int64 `json:"reviewer_id" validate:"required"`
}

func ApproveSubmission(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("submissionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid submission id"})
	}

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	submission, err := services.ApproveSubmission(id, req.ReviewerID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(submission)
}

func RejectSubmission(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("submissionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid submission id"})
	}

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	submission, err := services.RejectSubmission(id, req.ReviewerID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(submission)
}

func BulkApprovePending(c *fiber.Ctx) error {
	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	processed, err := services.BulkApprovePending(req.ReviewerID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"processed": processed})
}

func BulkRejectPending(c *fiber.Ctx) error {
	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	processed, err := services.BulkRejectPending(req.ReviewerID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"processed": processed})
}
