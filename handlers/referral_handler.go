package handlers

import (
	"github.com/anjiri1684/reward_ledger/services"
	"github.com/gofiber/fiber/v2"
)

type AddReferralRequest struct {
	ReferrerID int64 `json:"referrer_id" validate:"required"`
	ReferredID int64 `json:"referred_id" validate:"required"`
}

func AddReferralEdge(c *fiber.Ctx) error {
	var req AddReferralRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := services.AddReferralEdge(req.ReferrerID, req.ReferredID); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

func ListReferrals(c *fiber.Ctx) error {
	id, err := accountIDParam(c)
	if err != nil {
		return err
	}
	ids, err := services.ListReferredIDs(id)
	if err != nil {
		return serviceError(c, err)
	}
	count, err := services.CountReferrals(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"referred_ids": ids, "count": count})
}

func AnalyzeReferrals(c *fiber.Ctx) error {
	id, err := accountIDParam(c)
	if err != nil {
		return err
	}
	analysis, err := services.AnalyzeReferralPattern(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(analysis)
}

func DetailedReferralAnalysis(c *fiber.Ctx) error {
	id, err := accountIDParam(c)
	if err != nil {
		return err
	}
	analysis, breakdown, err := services.GetDetailedReferralAnalysis(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"analysis": analysis, "referrals": breakdown})
}
