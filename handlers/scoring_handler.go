package handlers

import (
	"github.com/anjiri1684/reward_ledger/services"
	"github.com/gofiber/fiber/v2"
)

func ClassifyAccount(c *fiber.Ctx) error {
	id, err := accountIDParam(c)
	if err != nil {
		return err
	}
	report, err := services.DetectBotOrFakeUser(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(report)
}

func RefreshEngagementTier(c *fiber.Ctx) error {
	id, err := accountIDParam(c)
	if err != nil {
		return err
	}
	result, err := services.UpdateEngagementTier(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(result)
}

func GetTierDistribution(c *fiber.Ctx) error {
	distribution, err := services.GetTierDistribution()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(distribution)
}

func TriggerIdleDecay(c *fiber.Ctx) error {
	stats, err := services.ApplyIdleDecay()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(stats)
}

func TriggerReferralDecay(c *fiber.Ctx) error {
	stats, err := services.ApplyReferralDecay()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(stats)
}

func TriggerMaintenanceSweep(c *fiber.Ctx) error {
	summary, err := services.RunMaintenanceSweep()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(summary)
}
