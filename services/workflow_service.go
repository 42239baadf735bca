package services

import (
	"errors"
	"sort"
	"time"

	"github.com/anjiri1684/reward_ledger/database"
	"github.com/anjiri1684/reward_ledger/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Every operation in this file is one transaction: either every write
// commits or none does. Locks are always taken in the same order:
// submission/withdrawal row first, then account rows in ascending id
// order, so concurrent admin actions cannot deadlock each other.

func CreateSubmission(accountID int64, taskID uuid.UUID, description string, evidence []string) (*models.TaskSubmission, error) {
	var submission models.TaskSubmission
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if !settingBoolTx(tx, SettingSubmissionsOpen, true) {
			return invalid("task submissions are currently closed")
		}

		var task models.Task
		if err := tx.First(&task, "id = ?", taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if task.Status != models.TaskStatusActive {
			return ErrInvalidState
		}

		var account models.Account
		if err := tx.First(&account, "id = ?", accountID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var done int64
		if err := tx.Model(&models.CompletedTask{}).
			Where("account_id = ? AND task_id = ?", accountID, taskID).
			Count(&done).Error; err != nil {
			return err
		}
		if done > 0 {
			return invalid("task already completed")
		}

		var pending int64
		if err := tx.Model(&models.TaskSubmission{}).
			Where("account_id = ? AND task_id = ? AND status = ?", accountID, taskID, models.SubmissionStatusPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return invalid("a submission for this task is already under review")
		}

		submission = models.TaskSubmission{
			ID:          uuid.New(),
			AccountID:   accountID,
			TaskID:      taskID,
			TaskTitle:   task.Title,
			TaskReward:  task.Reward,
			Description: description,
			Evidence:    evidence,
			Status:      models.SubmissionStatusPending,
			SubmittedAt: time.Now(),
		}
		return tx.Create(&submission).Error
	})
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func GetSubmission(id uuid.UUID) (*models.TaskSubmission, error) {
	var submission models.TaskSubmission
	err := database.DB.First(&submission, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func ListPendingSubmissions() ([]models.TaskSubmission, error) {
	var pending []models.TaskSubmission
	err := database.DB.
		Where("status = ?", models.SubmissionStatusPending).
		Order("submitted_at").
		Find(&pending).Error
	if err != nil {
		return nil, err
	}
	return pending, nil
}

// ApproveSubmission credits the snapshotted reward exactly once. A second
// call on the same id observes the non-pending status under lock and fails
// with ErrInvalidState before any write.
func ApproveSubmission(submissionID uuid.UUID, reviewerID int64) (*models.TaskSubmission, error) {
	var submission models.TaskSubmission
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		account, err := lockPendingSubmission(tx, submissionID, &submission)
		if err != nil {
			return err
		}
		return approveLocked(tx, &submission, account, reviewerID)
	})
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func RejectSubmission(submissionID uuid.UUID, reviewerID int64) (*models.TaskSubmission, error) {
	var submission models.TaskSubmission
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := lockPendingSubmission(tx, submissionID, &submission); err != nil {
			return err
		}
		return rejectLocked(tx, &submission, reviewerID)
	})
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// lockPendingSubmission takes the submission lock, validates the pending
// state, then takes the owner's lock — in that order.
func lockPendingSubmission(tx *gorm.DB, submissionID uuid.UUID, submission *models.TaskSubmission) (*models.Account, error) {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(submission, "id = ?", submissionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if submission.Status != models.SubmissionStatusPending {
		return nil, ErrInvalidState
	}

	var account models.Account
	err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&account, "id = ?", submission.AccountID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func approveLocked(tx *gorm.DB, submission *models.TaskSubmission, account *models.Account, reviewerID int64) error {
	now := time.Now()
	submission.Status = models.SubmissionStatusApproved
	submission.ReviewedAt = &now
	submission.ReviewedBy = &reviewerID
	if err := tx.Save(submission).Error; err != nil {
		return err
	}

	err := tx.Model(&models.Account{}).
		Where("id = ?", account.ID).
		Update("balance", gorm.Expr("balance + ?", submission.TaskReward)).Error
	if err != nil {
		return err
	}

	completed := models.CompletedTask{
		AccountID:   account.ID,
		TaskID:      submission.TaskID,
		RewardPaid:  submission.TaskReward,
		CompletedAt: now,
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&completed).Error; err != nil {
		return err
	}

	return incrementSettingTx(tx, SettingTasksApprovedTotal, 1)
}

func rejectLocked(tx *gorm.DB, submission *models.TaskSubmission, reviewerID int64) error {
	now := time.Now()
	submission.Status = models.SubmissionStatusRejected
	submission.ReviewedAt = &now
	submission.ReviewedBy = &reviewerID
	if err := tx.Save(submission).Error; err != nil {
		return err
	}
	return incrementSettingTx(tx, SettingTasksRejectedTotal, 1)
}

// BulkApprovePending locks the full pending set up front, then every owner
// account, then applies the same per-row effects as ApproveSubmission inside
// one transaction. A row whose owner has disappeared is skipped, not fatal.
func BulkApprovePending(reviewerID int64) (int, error) {
	processed := 0
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		pending, err := lockPendingSet(tx)
		if err != nil {
			return err
		}
		owners := make([]int64, 0, len(pending))
		for i := range pending {
			owners = append(owners, pending[i].AccountID)
		}
		locked, err := lockAccounts(tx, owners)
		if err != nil {
			return err
		}
		for i := range pending {
			account, ok := locked[pending[i].AccountID]
			if !ok {
				continue
			}
			if err := approveLocked(tx, &pending[i], account, reviewerID); err != nil {
				return err
			}
			processed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return processed, nil
}

func BulkRejectPending(reviewerID int64) (int, error) {
	processed := 0
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		pending, err := lockPendingSet(tx)
		if err != nil {
			return err
		}
		for i := range pending {
			var exists int64
			if err := tx.Model(&models.Account{}).Where("id = ?", pending[i].AccountID).Count(&exists).Error; err != nil {
				return err
			}
			if exists == 0 {
				continue
			}
			if err := rejectLocked(tx, &pending[i], reviewerID); err != nil {
				return err
			}
			processed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return processed, nil
}

// lockAccounts takes FOR UPDATE locks on the given account rows, always in
// ascending id order. Missing rows are simply absent from the result.
func lockAccounts(tx *gorm.DB, ids []int64) (map[int64]*models.Account, error) {
	locked := make(map[int64]*models.Account, len(ids))
	for _, id := range sortedUniqueIDs(ids) {
		var account models.Account
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&account, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		locked[account.ID] = &account
	}
	return locked, nil
}

func sortedUniqueIDs(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func lockPendingSet(tx *gorm.DB) ([]models.TaskSubmission, error) {
	var pending []models.TaskSubmission
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("status = ?", models.SubmissionStatusPending).
		Order("id").
		Find(&pending).Error
	if err != nil {
		return nil, err
	}
	return pending, nil
}

type VerifyResult struct {
	AlreadyVerified bool            `json:"already_verified"`
	RewardPaid      decimal.Decimal `json:"reward_paid"`
	ReferrerID      *int64          `json:"referrer_id"`
}

// VerifyAndReward flips the verification flag exactly once. The referral
// reward rides in the same transaction; a missing referrer row lets the
// verification commit unrewarded. Both account rows are locked through
// lockAccounts, so a mutual-referral pair verified concurrently acquires
// locks in the same ascending order from both sides.
func VerifyAndReward(accountID int64) (*VerifyResult, error) {
	result := &VerifyResult{RewardPaid: decimal.Zero}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// unlocked peek, only to learn which rows to lock
		var peek models.Account
		err := tx.First(&peek, "id = ?", accountID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		ids := []int64{accountID}
		if peek.ReferredBy != nil {
			ids = append(ids, *peek.ReferredBy)
		}
		locked, err := lockAccounts(tx, ids)
		if err != nil {
			return err
		}
		account, ok := locked[accountID]
		if !ok {
			return ErrNotFound
		}

		if account.IsVerified {
			result.AlreadyVerified = true
			return nil
		}

		account.IsVerified = true
		if err := tx.Save(account).Error; err != nil {
			return err
		}

		if account.ReferredBy == nil {
			return nil
		}

		// Absent from the lock set when the referrer row is gone, or when
		// the edge was attached between the peek and the locks. The
		// verification itself must still commit.
		referrer, ok := locked[*account.ReferredBy]
		if !ok {
			return nil
		}

		reward := settingDecimalTx(tx, SettingReferralReward, decimal.Zero)
		if reward.IsPositive() {
			err = tx.Model(&models.Account{}).
				Where("id = ?", referrer.ID).
				Update("balance", gorm.Expr("balance + ?", reward)).Error
			if err != nil {
				return err
			}
		}

		edge := models.Referral{ID: uuid.New(), ReferrerID: referrer.ID, ReferredID: account.ID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error; err != nil {
			return err
		}

		result.RewardPaid = reward
		referrerID := referrer.ID
		result.ReferrerID = &referrerID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CreateWithdrawalRequest validates and debits in one unit: the hold either
// exists together with the pending row or not at all.
func CreateWithdrawalRequest(accountID int64, amount decimal.Decimal) (*models.WithdrawalRequest, error) {
	var request models.WithdrawalRequest
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if !settingBoolTx(tx, SettingWithdrawalsOpen, true) {
			return invalid("withdrawals are currently closed")
		}
		if !amount.IsPositive() {
			return invalid("withdrawal amount must be positive")
		}

		var account models.Account
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&account, "id = ?", accountID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if account.WalletAddress == nil || *account.WalletAddress == "" {
			return invalid("wallet address not set")
		}

		min := settingDecimalTx(tx, SettingMinWithdrawal, decimal.Zero)
		max := settingDecimalTx(tx, SettingMaxWithdrawal, decimal.Zero)
		if err := checkWithdrawalBounds(amount, min, max); err != nil {
			return err
		}
		if account.Balance.LessThan(amount) {
			return invalid("insufficient balance")
		}

		account.Balance = account.Balance.Sub(amount)
		if err := tx.Save(&account).Error; err != nil {
			return err
		}

		request = models.WithdrawalRequest{
			ID:            uuid.New(),
			AccountID:     accountID,
			Amount:        amount,
			WalletAddress: *account.WalletAddress,
			Status:        models.WithdrawalStatusPending,
			RequestedAt:   time.Now(),
		}
		return tx.Create(&request).Error
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// checkWithdrawalBounds treats a non-positive configured bound as unset.
func checkWithdrawalBounds(amount, min, max decimal.Decimal) error {
	if min.IsPositive() && amount.LessThan(min) {
		return invalid("amount below minimum withdrawal")
	}
	if max.IsPositive() && amount.GreaterThan(max) {
		return invalid("amount above maximum withdrawal")
	}
	return nil
}

func GetLatestPendingWithdrawal(accountID int64) (*models.WithdrawalRequest, error) {
	var request models.WithdrawalRequest
	err := database.DB.
		Where("account_id = ? AND status = ?", accountID, models.WithdrawalStatusPending).
		Order("requested_at DESC").
		First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func ListPendingWithdrawals() ([]models.WithdrawalRequest, error) {
	var requests []models.WithdrawalRequest
	err := database.DB.
		Where("status = ?", models.WithdrawalStatusPending).
		Order("requested_at").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// SetWithdrawalStatus moves a pending request to approved or rejected. The
// amount was already held at creation; rejection re-credits it only when the
// withdrawal_refund_on_reject setting is on.
func SetWithdrawalStatus(requestID uuid.UUID, status string, reviewerID int64, adminNotes string) (*models.WithdrawalRequest, error) {
	if status != models.WithdrawalStatusApproved && status != models.WithdrawalStatusRejected {
		return nil, invalid("status must be approved or rejected")
	}

	var request models.WithdrawalRequest
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&request, "id = ?", requestID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if request.Status != models.WithdrawalStatusPending {
			return ErrInvalidState
		}

		now := time.Now()
		request.Status = status
		request.ProcessedAt = &now
		request.ReviewedBy = &reviewerID
		if adminNotes != "" {
			request.AdminNotes = &adminNotes
		}
		if err := tx.Save(&request).Error; err != nil {
			return err
		}

		if status == models.WithdrawalStatusRejected && settingBoolTx(tx, SettingRefundRejectedWithdrawal, false) {
			err := tx.Model(&models.Account{}).
				Where("id = ?", request.AccountID).
				Update("balance", gorm.Expr("balance + ?", request.Amount)).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}
