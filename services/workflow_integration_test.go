package services

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/anjiri1684/reward_ledger/database"
	"github.com/anjiri1684/reward_ledger/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// These tests need a throwaway Postgres database; they are skipped unless
// TEST_DATABASE_URL is set. Every test works on its own freshly created
// account rows so runs do not interfere with each other.

var idSeq = time.Now().UnixNano()

func nextID() int64 {
	return atomic.AddInt64(&idSeq, 1)
}

func testDB(t *testing.T) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Account{},
		&models.Referral{},
		&models.Task{},
		&models.TaskSubmission{},
		&models.CompletedTask{},
		&models.WithdrawalRequest{},
		&models.Setting{},
	))
	database.DB = db
}

func createTestAccount(t *testing.T, mutate func(*models.Account)) *models.Account {
	t.Helper()
	now := time.Now()
	account := &models.Account{
		ID:             nextID(),
		ReferralCode:   fmt.Sprintf("T%09d", nextID()%int64(1e9)),
		RegisteredAt:   now,
		LastSeenAt:     now,
		EngagementTier: models.TierRegular,
	}
	if mutate != nil {
		mutate(account)
	}
	require.NoError(t, database.DB.Create(account).Error)
	return account
}

func TestApproveSubmissionCreditsExactlyOnce(t *testing.T) {
	testDB(t)
	account := createTestAccount(t, nil)

	task, err := CreateTask("join the announcement channel", "", dec("5.00"), 1)
	require.NoError(t, err)
	submission, err := CreateSubmission(account.ID, task.ID, "joined", nil)
	require.NoError(t, err)

	_, err = ApproveSubmission(submission.ID, 7)
	require.NoError(t, err)

	_, err = ApproveSubmission(submission.ID, 7)
	assert.ErrorIs(t, err, ErrInvalidState)

	refreshed, err := GetAccount(account.ID)
	require.NoError(t, err)
	assert.True(t, refreshed.Balance.Equal(dec("5.00")), "second approval must not credit again, got %s", refreshed.Balance)

	var proofs int64
	require.NoError(t, database.DB.Model(&models.CompletedTask{}).
		Where("account_id = ? AND task_id = ?", account.ID, task.ID).
		Count(&proofs).Error)
	assert.EqualValues(t, 1, proofs)
}

func TestRejectedWithdrawalKeepsHold(t *testing.T) {
	testDB(t)
	wallet := "0xabc123"
	account := createTestAccount(t, func(a *models.Account) {
		a.Balance = dec("50.00")
		a.WalletAddress = &wallet
	})

	request, err := CreateWithdrawalRequest(account.ID, dec("20.00"))
	require.NoError(t, err)

	held, err := GetAccount(account.ID)
	require.NoError(t, err)
	require.True(t, held.Balance.Equal(dec("30.00")))

	_, err = SetWithdrawalStatus(request.ID, models.WithdrawalStatusRejected, 7, "duplicate request")
	require.NoError(t, err)

	refreshed, err := GetAccount(account.ID)
	require.NoError(t, err)
	assert.True(t, refreshed.Balance.Equal(dec("30.00")), "rejection must not refund by default, got %s", refreshed.Balance)
}

func TestWithdrawalBelowMinimumLeavesBalanceUntouched(t *testing.T) {
	testDB(t)
	require.NoError(t, SetSetting(SettingMinWithdrawal, "10.00"))

	wallet := "0xdef456"
	account := createTestAccount(t, func(a *models.Account) {
		a.Balance = dec("50.00")
		a.WalletAddress = &wallet
	})

	_, err := CreateWithdrawalRequest(account.ID, dec("5.00"))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	refreshed, err := GetAccount(account.ID)
	require.NoError(t, err)
	assert.True(t, refreshed.Balance.Equal(dec("50.00")))

	var requests int64
	require.NoError(t, database.DB.Model(&models.WithdrawalRequest{}).
		Where("account_id = ?", account.ID).
		Count(&requests).Error)
	assert.Zero(t, requests)
}

func TestVerifyMutualReferralPairConcurrently(t *testing.T) {
	testDB(t)
	a := createTestAccount(t, nil)
	b := createTestAccount(t, func(acc *models.Account) { acc.ReferredBy = &a.ID })
	require.NoError(t, database.DB.Model(&models.Account{}).
		Where("id = ?", a.ID).
		Update("referred_by", b.ID).Error)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, id := range []int64{a.ID, b.ID} {
		wg.Add(1)
		go func(accountID int64) {
			defer wg.Done()
			_, err := VerifyAndReward(accountID)
			errs <- err
		}(id)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	for _, id := range []int64{a.ID, b.ID} {
		refreshed, err := GetAccount(id)
		require.NoError(t, err)
		assert.True(t, refreshed.IsVerified)
	}
}

func TestIdleDecayScalesStoredScore(t *testing.T) {
	testDB(t)
	account := createTestAccount(t, func(a *models.Account) {
		a.LastSeenAt = time.Now().Add(-4 * 24 * time.Hour)
		a.ActivityScore = 2.0
	})

	_, err := ApplyIdleDecay()
	require.NoError(t, err)

	refreshed, err := GetAccount(account.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1.9, refreshed.ActivityScore, 1e-9)
}
