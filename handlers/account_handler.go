package handlers

import (
	"strconv"

	"github.com/anjiri1684/reward_ledger/services"
	"github.com/gofiber/fiber/v2"
)

func accountIDParam(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("accountId"), 10, 64)
	if err != nil {
		return 0, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid account id"})
	}
	return id, nil
}

type EnsureAccountRequest struct {
	ID            int64  `json:"id" validate:"required"`
	Username      string `json:"username"`
	TouchActivity bool   `json:"touch_activity"`
	ChatType      string `json:"chat_type" validate:"omitempty,oneof=private group supergroup channel"`
	ReferredBy    *int64 `json:"referred_by"`
	ReferralCode  string `json:"referral_code"`
}

// EnsureAccount is called by the front-end on every inbound event.
func EnsureAccount(c *fiber.Ctx) error {
	var req EnsureAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	account, err := services.EnsureAccount(req.ID, services.EnsureOptions{
		Username:      req.Username,
		TouchActivity: req.TouchActivity,
		ChatType:      req.ChatType,
		ReferredBy:    req.ReferredBy,
		ReferralCode:  req.ReferralCode,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(account)
}

func GetAccount(c *fiber.Ctx) error {
	id, err := accountIDParam(c)
	if err != nil {
		return err
	}
	account, err := services.GetAccount(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(account)
}

type UpdateAccountRequest struct {
	Username      *string `json:"username"`
	WalletAddress *string `json:"wallet_address"`
}

// UpdateAccount exposes the patch primitive for the fields the front-end is
// allowed to set directly. Balance is deliberately absent: it only moves
// inside workflow transactions.
func UpdateAccount(c *fiber.Ctx) error {
	id, err := accountIDParam(c)
	if err != nil {
		return err
	}

	var req UpdateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	patch := map[string]interface{}{}
	if req.Username != nil {
		patch["username"] = *req.Username
	}
	if req.WalletAddress != nil {
		patch["wallet_address"] = *req.WalletAddress
	}
	if len(patch) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No updatable fields provided"})
	}

	account, err := services.UpdateAccount(id, patch)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(account)
}

func VerifyAccount(c *fiber.Ctx) error {
	id, err := accountIDParam(c)
	if err != nil {
		return err
	}
	result, err := services.VerifyAndReward(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(result)
}

type LogActivityRequest struct {
	Type   string                 `json:"type" validate:"required"`
	Data   map[string]interface{} `json:"data"`
	ChatID *int64                 `json:"chat_id"`
}

func LogActivity(c *fiber.Ctx) error {
	id, err := accountIDParam(c)
	if err != nil {
		return err
	}

	var req LogActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := services.LogActivity(id, req.Type, req.Data, req.ChatID); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

func CheckSpam(c *fiber.Ctx) error {
	id, err := accountIDParam(c)
	if err != nil {
		return err
	}
	report, err := services.CheckSpamBehavior(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(report)
}
