package services

import (
	"testing"
	"time"

	"github.com/anjiri1684/reward_ledger/models"
	"github.com/stretchr/testify/assert"
)

func TestEvaluateBotFakeFreshEmptyAccount(t *testing.T) {
	now := time.Now()
	report := evaluateBotFake(classifierInput{
		Account: models.Account{
			MessageCount:  0,
			ActivityScore: 0,
			RegisteredAt:  now.Add(-time.Hour),
		},
		Now: now,
	})

	// all five fake rungs fire: 40+25+15+15+10
	assert.InDelta(t, 105.0, report.FakeScore, 1e-9)
	assert.True(t, report.IsFake)
	assert.False(t, report.IsBot)
	assert.InDelta(t, 100.0, report.Confidence, 1e-9, "confidence is capped at 100")
	assert.Equal(t, []string{
		"no username set",
		"never sent a message",
		"no wallet address",
		"account younger than a day",
		"no measurable activity",
	}, report.Reasons)
}

func TestEvaluateBotFakeVerifiedInertAccount(t *testing.T) {
	now := time.Now()
	report := evaluateBotFake(classifierInput{
		Account: models.Account{
			Username:      strPtr("someuser"),
			IsVerified:    true,
			MessageCount:  2,
			SpamScore:     25,
			ActivityScore: 0.02,
			WalletAddress: strPtr("0xdef"),
			RegisteredAt:  now.Add(-72 * time.Hour),
		},
		ReferralCount:      5,
		ReferralPercentage: 20,
		Now:                now,
	})

	// bot rungs: verified-inactive 30 + spam 25 + poor referrals 25
	assert.InDelta(t, 80.0, report.BotScore, 1e-9)
	assert.True(t, report.IsBot)
	assert.False(t, report.IsFake)
}

func TestEvaluateBotFakeCleanAccount(t *testing.T) {
	now := time.Now()
	report := evaluateBotFake(classifierInput{
		Account: models.Account{
			Username:      strPtr("human"),
			MessageCount:  120,
			ActivityScore: 1.2,
			WalletAddress: strPtr("0x123"),
			IsVerified:    true,
			RegisteredAt:  now.Add(-30 * 24 * time.Hour),
		},
		ReferralCount:      2,
		ReferralPercentage: 100,
		Now:                now,
	})

	assert.False(t, report.IsBot)
	assert.False(t, report.IsFake)
	assert.Empty(t, report.Reasons)
}

func TestEngagementScoreMaxTerms(t *testing.T) {
	score := engagementScore(engagementInput{
		MessagesLast7d:     500,
		CurrentStreak:      30,
		CompletedTasks:     50,
		ReferralPercentage: 100,
		Verified:           true,
		AccountAgeDays:     365,
	})
	assert.InDelta(t, 100.0, score, 1e-9, "every term clamps at its cap")
}

func TestEngagementScoreExactEliteBoundary(t *testing.T) {
	// 25 + 15 + 20 + 0 + 10 + 0 = 70
	in := engagementInput{
		MessagesLast7d:     50,
		CurrentStreak:      5,
		CompletedTasks:     5,
		ReferralPercentage: 0,
		Verified:           true,
		AccountAgeDays:     0,
	}
	score := engagementScore(in)
	assert.InDelta(t, 70.0, score, 1e-9)
	assert.Equal(t, models.TierElite, tierForScore(score))
}

func TestEngagementScoreInactivityPenalty(t *testing.T) {
	base := engagementInput{
		MessagesLast7d: 50,
		CurrentStreak:  5,
		CompletedTasks: 5,
		Verified:       true,
	}

	fresh := engagementScore(base)

	stale := base
	stale.DaysSinceLastSeen = 4
	assert.InDelta(t, fresh*0.7, engagementScore(stale), 1e-9)

	gone := base
	gone.DaysSinceLastSeen = 8
	assert.InDelta(t, fresh*0.5, engagementScore(gone), 1e-9)
}

func TestTierForScoreBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		tier  string
	}{
		{70.0, models.TierElite},
		{69.9, models.TierActive},
		{50.0, models.TierActive},
		{49.9, models.TierRegular},
		{30.0, models.TierRegular},
		{29.9, models.TierDormant},
		{15.0, models.TierDormant},
		{14.9, models.TierGhost},
		{0, models.TierGhost},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.tier, tierForScore(tc.score), "score %.1f", tc.score)
	}
}

func TestIdleDecayFactor(t *testing.T) {
	assert.InDelta(t, 1.0, idleDecayFactor(2*24*time.Hour), 1e-9)
	assert.InDelta(t, 0.95, idleDecayFactor(3*24*time.Hour), 1e-9)
	assert.InDelta(t, 0.95, idleDecayFactor(6*24*time.Hour), 1e-9)
	assert.InDelta(t, 0.90, idleDecayFactor(7*24*time.Hour), 1e-9)
	assert.InDelta(t, 0.90, idleDecayFactor(30*24*time.Hour), 1e-9)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, clamp(-3, 10))
	assert.Equal(t, 7.5, clamp(7.5, 10))
	assert.Equal(t, 10.0, clamp(11, 10))
}
