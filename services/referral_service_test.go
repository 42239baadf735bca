package services

import (
	"testing"
	"time"

	"github.com/anjiri1684/reward_ledger/models"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestClassifyReferredAccountFreshEmpty(t *testing.T) {
	now := time.Now()
	points, real, reasons := classifyReferredAccount(referralInput{
		Account: models.Account{
			MessageCount:  0,
			ActivityScore: 0,
			RegisteredAt:  now.Add(-30 * time.Minute),
		},
		HasCompletedTask: false,
		Now:              now,
	})

	assert.Equal(t, 0, points)
	assert.False(t, real)
	assert.Empty(t, reasons)
}

func TestClassifyReferredAccountFullScore(t *testing.T) {
	now := time.Now()
	points, real, reasons := classifyReferredAccount(referralInput{
		Account: models.Account{
			MessageCount:  12,
			ActivityScore: 0.6,
			WalletAddress: strPtr("0xabc"),
			IsVerified:    true,
			RegisteredAt:  now.Add(-48 * time.Hour),
		},
		HasCompletedTask: true,
		Now:              now,
	})

	assert.Equal(t, 13, points)
	assert.True(t, real)
	assert.Equal(t, []string{
		"10+ messages sent",
		"sustained activity rate",
		"wallet address set",
		"verified account",
		"older than a day",
		"completed a task",
	}, reasons)
}

func TestClassifyReferredAccountJustBelowThreshold(t *testing.T) {
	now := time.Now()
	// one message (1) + hour-old (1) + some activity (1) = 4 < 5
	points, real, _ := classifyReferredAccount(referralInput{
		Account: models.Account{
			MessageCount:  1,
			ActivityScore: 0.2,
			RegisteredAt:  now.Add(-2 * time.Hour),
		},
		Now: now,
	})

	assert.Equal(t, 4, points)
	assert.False(t, real)
}

func TestClassifyReferredAccountAtThreshold(t *testing.T) {
	now := time.Now()
	// 5 messages (2) + hour-old (1) + wallet (2) = 5
	points, real, _ := classifyReferredAccount(referralInput{
		Account: models.Account{
			MessageCount:  5,
			WalletAddress: strPtr("TXyz"),
			RegisteredAt:  now.Add(-90 * time.Minute),
		},
		Now: now,
	})

	assert.Equal(t, 5, points)
	assert.True(t, real)
}

func TestStarRatingBands(t *testing.T) {
	cases := []struct {
		percentage float64
		stars      int
	}{
		{100, 5},
		{80, 5},
		{79.9, 4},
		{60, 4},
		{59.9, 3},
		{40, 3},
		{20, 2},
		{19.9, 1},
		{0, 1},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.stars, starRating(tc.percentage), "percentage %.1f", tc.percentage)
	}
}
