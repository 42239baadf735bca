package handlers

import (
	"github.com/anjiri1684/reward_ledger/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,min=3"`
	Description string  `json:"description"`
	Reward      float64 `json:"reward" validate:"required,gt=0"`
	CreatedBy   int64   `json:"created_by" validate:"required"`
}

func CreateTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	task, err := services.CreateTask(req.Title, req.Description, decimal.NewFromFloat(req.Reward), req.CreatedBy)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

func ListTasks(c *fiber.Ctx) error {
	tasks, err := services.ListTasks(c.Query("status"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(tasks)
}

func ListAvailableTasks(c *fiber.Ctx) error {
	id, err := accountIDParam(c)
	if err != nil {
		return err
	}
	tasks, err := services.ListAvailableTasks(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(tasks)
}

func GetTask(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("taskId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task id"})
	}
	task, err := services.GetTask(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(task)
}

func DeleteTask(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("taskId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task id"})
	}
	if err := services.DeleteTask(id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Task retired"})
}
