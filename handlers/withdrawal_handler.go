package handlers

import (
	"github.com/anjiri1684/reward_ledger/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateWithdrawalRequest struct {
	AccountID int64   `json:"account_id" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
}

func CreateWithdrawal(c *fiber.Ctx) error {
	var req CreateWithdrawalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	request, err := services.CreateWithdrawalRequest(req.AccountID, decimal.NewFromFloat(req.Amount))
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(request)
}

func GetLatestPendingWithdrawal(c *fiber.Ctx) error {
	id, err := accountIDParam(c)
	if err != nil {
		return err
	}
	request, err := services.GetLatestPendingWithdrawal(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(request)
}

func ListPendingWithdrawals(c *fiber.Ctx) error {
	requests, err := services.ListPendingWithdrawals()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(requests)
}

type ProcessWithdrawalRequest struct {
	Status     string `json:"status" validate:"required,oneof=approved rejected"`
	ReviewerID int64  `json:"reviewer_id" validate:"required"`
	AdminNotes string `json:"admin_notes"`
}

func ProcessWithdrawal(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("withdrawalId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid withdrawal id"})
	}

	var req ProcessWithdrawalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	request, err := services.SetWithdrawalStatus(id, req.Status, req.ReviewerID, req.AdminNotes)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(request)
}
