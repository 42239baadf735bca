package services

import (
	"log"
	"time"

	"github.com/anjiri1684/reward_ledger/database"
	"github.com/anjiri1684/reward_ledger/models"
	"gorm.io/gorm"
)

// Classification thresholds. Kept as named constants so the ladders can be
// tuned without touching the algorithm shape.
const (
	fakeScoreCutoff = 50.0
	botScoreCutoff  = 50.0

	tierEliteMin   = 70.0
	tierActiveMin  = 50.0
	tierRegularMin = 30.0
	tierDormantMin = 15.0

	idleDecaySoftFactor = 0.95 // 3-7 days idle
	idleDecayHardFactor = 0.90 // 7+ days idle
	idleDecayMinIdle    = 3 * 24 * time.Hour
	idleDecayCooldown   = 24 * time.Hour

	referralDecayFactor   = 0.9
	referralDecayStaleAge = 14 * 24 * time.Hour
)

type classifierInput struct {
	Account            models.Account
	ReferralCount      int
	ReferralPercentage float64
	Now                time.Time
}

type classifierSignal struct {
	weight float64
	reason string
	match  func(in classifierInput) bool
}

// fakeSignals favour "never did anything, no identity, no wallet, brand
// new". The missing username is the dominant signal. Order is fixed so the
// reasons list is deterministic.
var fakeSignals = []classifierSignal{
	{40, "no username set", func(in classifierInput) bool {
		return in.Account.Username == nil || *in.Account.Username == ""
	}},
	{25, "never sent a message", func(in classifierInput) bool {
		return in.Account.MessageCount == 0
	}},
	{15, "no wallet address", func(in classifierInput) bool {
		return in.Account.WalletAddress == nil || *in.Account.WalletAddress == ""
	}},
	{15, "account younger than a day", func(in classifierInput) bool {
		return in.Now.Sub(in.Account.RegisteredAt) < 24*time.Hour
	}},
	{10, "no measurable activity", func(in classifierInput) bool {
		return in.Account.ActivityScore < 0.01
	}},
}

// botSignals favour "verified but inert, machine-like rate, poor referral
// quality".
var botSignals = []classifierSignal{
	{30, "verified but inactive", func(in classifierInput) bool {
		return in.Account.IsVerified && in.Account.MessageCount < 5
	}},
	{25, "elevated spam score", func(in classifierInput) bool {
		return in.Account.SpamScore > 20
	}},
	{20, "message rate above human threshold", func(in classifierInput) bool {
		return in.Account.ActivityScore > 10
	}},
	{25, "poor referral quality", func(in classifierInput) bool {
		return in.ReferralCount >= 5 && in.ReferralPercentage < 40
	}},
	{15, "commands without any button interaction", func(in classifierInput) bool {
		return in.Account.CommandCount > 20 && in.Account.ButtonClickCount == 0
	}},
}

type BotFakeReport struct {
	IsBot      bool     `json:"is_bot"`
	IsFake     bool     `json:"is_fake"`
	BotScore   float64  `json:"bot_score"`
	FakeScore  float64  `json:"fake_score"`
	Confidence float64  `json:"confidence"`
	Reasons    []string `json:"reasons"`
}

func evaluateBotFake(in classifierInput) *BotFakeReport {
	report := &BotFakeReport{Reasons: []string{}}
	for _, signal := range fakeSignals {
		if signal.match(in) {
			report.FakeScore += signal.weight
			report.Reasons = append(report.Reasons, signal.reason)
		}
	}
	for _, signal := range botSignals {
		if signal.match(in) {
			report.BotScore += signal.weight
			report.Reasons = append(report.Reasons, signal.reason)
		}
	}
	report.IsFake = report.FakeScore > fakeScoreCutoff
	report.IsBot = report.BotScore > botScoreCutoff
	report.Confidence = report.BotScore
	if report.FakeScore > report.Confidence {
		report.Confidence = report.FakeScore
	}
	if report.Confidence > 100 {
		report.Confidence = 100
	}
	return report
}

// DetectBotOrFakeUser runs both weighted ladders over the account's current
// state and referral quality.
func DetectBotOrFakeUser(accountID int64) (*BotFakeReport, error) {
	account, err := GetAccount(accountID)
	if err != nil {
		return nil, err
	}
	analysis, err := AnalyzeReferralPattern(accountID)
	if err != nil {
		return nil, err
	}
	return evaluateBotFake(classifierInput{
		Account:            *account,
		ReferralCount:      analysis.TotalReferrals,
		ReferralPercentage: analysis.Percentage,
		Now:                time.Now(),
	}), nil
}

// engagementInput is the raw material for the tier score, split out so the
// weighting is testable without a database.
type engagementInput struct {
	MessagesLast7d     int64
	CurrentStreak      int
	CompletedTasks     int64
	ReferralPercentage float64
	Verified           bool
	AccountAgeDays     float64
	DaysSinceLastSeen  float64
}

// engagementScore is a 0-100 weighted sum with each term clamped, then an
// inactivity penalty multiplier.
func engagementScore(in engagementInput) float64 {
	score := clamp(float64(in.MessagesLast7d)*0.5, 25) +
		clamp(float64(in.CurrentStreak)*3, 15) +
		clamp(float64(in.CompletedTasks)*4, 20) +
		clamp(in.ReferralPercentage*0.15, 15) +
		clamp(in.AccountAgeDays*0.5, 15)
	if in.Verified {
		score += 10
	}

	switch {
	case in.DaysSinceLastSeen > 7:
		score *= 0.5
	case in.DaysSinceLastSeen > 3:
		score *= 0.7
	}
	return score
}

func clamp(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

func tierForScore(score float64) string {
	switch {
	case score >= tierEliteMin:
		return models.TierElite
	case score >= tierActiveMin:
		return models.TierActive
	case score >= tierRegularMin:
		return models.TierRegular
	case score >= tierDormantMin:
		return models.TierDormant
	default:
		return models.TierGhost
	}
}

type TierResult struct {
	AccountID int64   `json:"account_id"`
	Score     float64 `json:"score"`
	Tier      string  `json:"tier"`
}

// UpdateEngagementTier recomputes the tier from current signals and persists
// it through the account update primitive.
func UpdateEngagementTier(accountID int64) (*TierResult, error) {
	account, err := GetAccount(accountID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var messages7d int64
	err = database.DB.Model(&models.ActivityLog{}).
		Where("account_id = ? AND type = ? AND created_at > ?", accountID, models.ActivityMessage, now.Add(-7*24*time.Hour)).
		Count(&messages7d).Error
	if err != nil {
		return nil, err
	}

	var completed int64
	err = database.DB.Model(&models.CompletedTask{}).
		Where("account_id = ?", accountID).
		Count(&completed).Error
	if err != nil {
		return nil, err
	}

	analysis, err := AnalyzeReferralPattern(accountID)
	if err != nil {
		return nil, err
	}

	score := engagementScore(engagementInput{
		MessagesLast7d:     messages7d,
		CurrentStreak:      account.CurrentStreak,
		CompletedTasks:     completed,
		ReferralPercentage: analysis.Percentage,
		Verified:           account.IsVerified,
		AccountAgeDays:     now.Sub(account.RegisteredAt).Hours() / 24,
		DaysSinceLastSeen:  now.Sub(account.LastSeenAt).Hours() / 24,
	})
	tier := tierForScore(score)

	_, err = UpdateAccount(accountID, map[string]interface{}{
		"engagement_tier": tier,
		"tier_updated_at": now,
	})
	if err != nil {
		return nil, err
	}
	return &TierResult{AccountID: accountID, Score: score, Tier: tier}, nil
}

func GetTierDistribution() (map[string]int64, error) {
	type row struct {
		EngagementTier string
		Count          int64
	}
	var rows []row
	err := database.DB.Model(&models.Account{}).
		Select("engagement_tier, COUNT(*) as count").
		Group("engagement_tier").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	distribution := map[string]int64{
		models.TierElite:   0,
		models.TierActive:  0,
		models.TierRegular: 0,
		models.TierDormant: 0,
		models.TierGhost:   0,
	}
	for _, r := range rows {
		distribution[r.EngagementTier] = r.Count
	}
	return distribution, nil
}

// idleDecayFactor picks the multiplier for an account's activity score from
// how long it has been idle. 1 means no decay.
func idleDecayFactor(idle time.Duration) float64 {
	switch {
	case idle >= 7*24*time.Hour:
		return idleDecayHardFactor
	case idle >= idleDecayMinIdle:
		return idleDecaySoftFactor
	default:
		return 1
	}
}

type DecayStats struct {
	Processed int `json:"processed"`
	Decayed   int `json:"decayed"`
}

// ApplyIdleDecay shrinks the activity score of accounts not seen for three
// days or more, at most once per 24 hours per account.
func ApplyIdleDecay() (*DecayStats, error) {
	now := time.Now()
	var candidates []models.Account
	err := database.DB.
		Where("last_seen_at <= ?", now.Add(-idleDecayMinIdle)).
		Where("last_decay_at IS NULL OR last_decay_at <= ?", now.Add(-idleDecayCooldown)).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	stats := &DecayStats{Processed: len(candidates)}
	for _, account := range candidates {
		factor := idleDecayFactor(now.Sub(account.LastSeenAt))
		if factor >= 1 {
			continue
		}
		err := database.DB.Model(&models.Account{}).
			Where("id = ?", account.ID).
			Updates(map[string]interface{}{
				"activity_score": gorm.Expr("activity_score * ?", factor),
				"last_decay_at":  now,
			}).Error
		if err != nil {
			return nil, err
		}
		stats.Decayed++
	}
	return stats, nil
}

// ApplyReferralDecay refreshes each referrer's stored referral quality,
// shrinking it when no new referral arrived within the stale window.
func ApplyReferralDecay() (*DecayStats, error) {
	var referrerIDs []int64
	err := database.DB.Model(&models.Referral{}).
		Distinct("referrer_id").
		Pluck("referrer_id", &referrerIDs).Error
	if err != nil {
		return nil, err
	}

	now := time.Now()
	stats := &DecayStats{}
	for _, referrerID := range referrerIDs {
		analysis, err := AnalyzeReferralPattern(referrerID)
		if err != nil {
			return nil, err
		}

		var latest models.Referral
		err = database.DB.
			Where("referrer_id = ?", referrerID).
			Order("created_at DESC").
			First(&latest).Error
		if err != nil {
			return nil, err
		}

		quality := analysis.Percentage
		stale := now.Sub(latest.CreatedAt) > referralDecayStaleAge
		if stale {
			quality *= referralDecayFactor
		}

		result := database.DB.Model(&models.Account{}).
			Where("id = ?", referrerID).
			Update("referral_quality", quality)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			// referrer account deleted, nothing to persist
			continue
		}
		stats.Processed++
		if stale {
			stats.Decayed++
		}
	}
	return stats, nil
}

type MaintenanceSummary struct {
	AccountsProcessed int        `json:"accounts_processed"`
	TiersUpdated      int        `json:"tiers_updated"`
	IdleDecay         DecayStats `json:"idle_decay"`
}

// RunMaintenanceSweep refreshes every account's engagement tier and then
// applies idle decay. Per-account scoring failures are logged and skipped so
// the sweep stays total over the population.
func RunMaintenanceSweep() (*MaintenanceSummary, error) {
	var ids []int64
	if err := database.DB.Model(&models.Account{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}

	summary := &MaintenanceSummary{AccountsProcessed: len(ids)}
	for _, id := range ids {
		if _, err := UpdateEngagementTier(id); err != nil {
			log.Printf("maintenance: tier update failed for account %d: %v", id, err)
			continue
		}
		summary.TiersUpdated++
	}

	decay, err := ApplyIdleDecay()
	if err != nil {
		return nil, err
	}
	summary.IdleDecay = *decay
	return summary, nil
}
