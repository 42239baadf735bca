package handlers

import (
	"github.com/anjiri1684/reward_ledger/services"
	"github.com/gofiber/fiber/v2"
)

func GetSetting(c *fiber.Ctx) error {
	key := c.Params("key")
	value, err := services.GetSetting(key)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"key": key, "value": value})
}

type SetSettingRequest struct {
	Value string `json:"value" validate:"required"`
}

func SetSetting(c *fiber.Ctx) error {
	var req SetSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := services.SetSetting(c.Params("key"), req.Value); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Setting updated"})
}

type IncrementSettingRequest struct {
	Delta float64 `json:"delta" validate:"required"`
}

func IncrementSetting(c *fiber.Ctx) error {
	var req IncrementSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := services.IncrementSetting(c.Params("key"), req.Delta); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Setting incremented"})
}

type BlacklistRequest struct {
	Reason  string `json:"reason" validate:"required"`
	AdminID int64  `json:"admin_id" validate:"required"`
}

func BlacklistAccount(c *fiber.Ctx) error {
	id, err := accountIDParam(c)
	if err != nil {
		return err
	}

	var req BlacklistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := services.Blacklist(id, req.Reason, req.AdminID); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

func UnblacklistAccount(c *fiber.Ctx) error {
	id, err := accountIDParam(c)
	if err != nil {
		return err
	}
	if err := services.Unblacklist(id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Account removed from blacklist"})
}

func GetBlacklistStatus(c *fiber.Ctx) error {
	id, err := accountIDParam(c)
	if err != nil {
		return err
	}
	blacklisted, err := services.IsBlacklisted(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"account_id": id, "blacklisted": blacklisted})
}

func ListBlacklisted(c *fiber.Ctx) error {
	entries, err := services.ListBlacklisted()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(entries)
}
