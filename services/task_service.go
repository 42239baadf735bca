package services

import (
	"errors"

	"github.com/anjiri1684/reward_ledger/database"
	"github.com/anjiri1684/reward_ledger/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func CreateTask(title, description string, reward decimal.Decimal, createdBy int64) (*models.Task, error) {
	if title == "" {
		return nil, invalid("task title is required")
	}
	if !reward.IsPositive() {
		return nil, invalid("task reward must be positive")
	}

	task := models.Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Reward:      reward,
		Status:      models.TaskStatusActive,
		CreatedBy:   createdBy,
	}
	if err := database.DB.Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListTasks filters by status; an empty status returns everything.
func ListTasks(status string) ([]models.Task, error) {
	var tasks []models.Task
	query := database.DB.Order("created_at")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListAvailableTasks returns active tasks the account has not already been
// paid for.
func ListAvailableTasks(accountID int64) ([]models.Task, error) {
	completed := database.DB.Model(&models.CompletedTask{}).
		Select("task_id").
		Where("account_id = ?", accountID)

	var tasks []models.Task
	err := database.DB.
		Where("status = ?", models.TaskStatusActive).
		Where("id NOT IN (?)", completed).
		Order("created_at").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func GetTask(id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := database.DB.First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask retires the task instead of removing the row, so submission and
// completion snapshots keep a valid reference.
func DeleteTask(id uuid.UUID) error {
	result := database.DB.Model(&models.Task{}).
		Where("id = ?", id).
		Update("status", models.TaskStatusRetired)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
