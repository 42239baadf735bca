package services

import (
	"errors"
	"time"

	"github.com/anjiri1684/reward_ledger/database"
	"github.com/anjiri1684/reward_ledger/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// A referred account scoring at least this many points counts as real.
const referralRealThreshold = 5

// referralSignal is one rung of the quality ladder. Evaluated top to bottom,
// first matching rung of each group wins its points.
type referralSignal struct {
	points int
	reason string
	match  func(in referralInput) bool
}

type referralInput struct {
	Account          models.Account
	HasCompletedTask bool
	Now              time.Time
}

var referralLadder = []referralSignal{
	{3, "10+ messages sent", func(in referralInput) bool { return in.Account.MessageCount >= 10 }},
	{2, "5+ messages sent", func(in referralInput) bool { return in.Account.MessageCount >= 5 }},
	{1, "at least one message sent", func(in referralInput) bool { return in.Account.MessageCount >= 1 }},

	{2, "sustained activity rate", func(in referralInput) bool { return in.Account.ActivityScore >= 0.5 }},
	{1, "some activity rate", func(in referralInput) bool { return in.Account.ActivityScore >= 0.1 }},

	{2, "wallet address set", func(in referralInput) bool {
		return in.Account.WalletAddress != nil && *in.Account.WalletAddress != ""
	}},
	{2, "verified account", func(in referralInput) bool { return in.Account.IsVerified }},

	{2, "older than a day", func(in referralInput) bool {
		return in.Now.Sub(in.Account.RegisteredAt) >= 24*time.Hour
	}},
	{1, "older than an hour", func(in referralInput) bool {
		return in.Now.Sub(in.Account.RegisteredAt) >= time.Hour
	}},

	{2, "completed a task", func(in referralInput) bool { return in.HasCompletedTask }},
}

// ladderGroups marks where each mutually-exclusive tier group starts; within
// a group only the first matching rung scores.
var ladderGroups = [][2]int{{0, 3}, {3, 5}, {5, 6}, {6, 7}, {7, 9}, {9, 10}}

// classifyReferredAccount scores one referred account against the ladder and
// decides real vs suspicious.
func classifyReferredAccount(in referralInput) (points int, real bool, reasons []string) {
	for _, group := range ladderGroups {
		for i := group[0]; i < group[1]; i++ {
			if referralLadder[i].match(in) {
				points += referralLadder[i].points
				reasons = append(reasons, referralLadder[i].reason)
				break
			}
		}
	}
	return points, points >= referralRealThreshold, reasons
}

// starRating bands a real-referral percentage into 1..5 stars.
func starRating(percentage float64) int {
	switch {
	case percentage >= 80:
		return 5
	case percentage >= 60:
		return 4
	case percentage >= 40:
		return 3
	case percentage >= 20:
		return 2
	default:
		return 1
	}
}

// AddReferralEdge records the (referrer, referred) pair; inserting the same
// pair again is a no-op.
func AddReferralEdge(referrerID, referredID int64) error {
	if referrerID == referredID {
		return invalid("an account cannot refer itself")
	}
	edge := models.Referral{ID: uuid.New(), ReferrerID: referrerID, ReferredID: referredID}
	return database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error
}

func ListReferredIDs(referrerID int64) ([]int64, error) {
	var ids []int64
	err := database.DB.Model(&models.Referral{}).
		Where("referrer_id = ?", referrerID).
		Order("created_at").
		Pluck("referred_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func CountReferrals(referrerID int64) (int64, error) {
	var count int64
	err := database.DB.Model(&models.Referral{}).
		Where("referrer_id = ?", referrerID).
		Count(&count).Error
	return count, err
}

type ReferralAnalysis struct {
	TotalReferrals  int     `json:"total_referrals"`
	RealCount       int     `json:"real_count"`
	SuspiciousCount int     `json:"suspicious_count"`
	Percentage      float64 `json:"percentage"`
	Rating          int     `json:"rating"`
}

type ReferralBreakdown struct {
	AccountID      int64     `json:"account_id"`
	Points         int       `json:"points"`
	Real           bool      `json:"real"`
	Missing        bool      `json:"missing"`
	Reasons        []string  `json:"reasons"`
	ReferredAt     time.Time `json:"referred_at"`
	EngagementTier string    `json:"engagement_tier,omitempty"`
}

// AnalyzeReferralPattern classifies every referral of an account. Zero
// referrals is vacuously perfect: 100% and five stars. A referral pointing
// at a deleted account is suspicious unconditionally.
func AnalyzeReferralPattern(accountID int64) (*ReferralAnalysis, error) {
	analysis, _, err := analyzeReferrals(accountID, false)
	return analysis, err
}

// GetDetailedReferralAnalysis additionally returns the per-referral score
// breakdown for admin review.
func GetDetailedReferralAnalysis(accountID int64) (*ReferralAnalysis, []ReferralBreakdown, error) {
	analysis, breakdown, err := analyzeReferrals(accountID, true)
	return analysis, breakdown, err
}

func analyzeReferrals(accountID int64, detailed bool) (*ReferralAnalysis, []ReferralBreakdown, error) {
	var edges []models.Referral
	err := database.DB.
		Where("referrer_id = ?", accountID).
		Order("created_at").
		Find(&edges).Error
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	analysis := &ReferralAnalysis{TotalReferrals: len(edges)}
	var breakdown []ReferralBreakdown

	for _, edge := range edges {
		item := ReferralBreakdown{AccountID: edge.ReferredID, ReferredAt: edge.CreatedAt}

		var referred models.Account
		err := database.DB.First(&referred, "id = ?", edge.ReferredID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			analysis.SuspiciousCount++
			item.Missing = true
			item.Reasons = []string{"referred account no longer exists"}
		} else if err != nil {
			return nil, nil, err
		} else {
			hasCompleted, err := hasCompletedAnyTask(edge.ReferredID)
			if err != nil {
				return nil, nil, err
			}
			points, real, reasons := classifyReferredAccount(referralInput{
				Account:          referred,
				HasCompletedTask: hasCompleted,
				Now:              now,
			})
			item.Points = points
			item.Real = real
			item.Reasons = reasons
			item.EngagementTier = referred.EngagementTier
			if real {
				analysis.RealCount++
			} else {
				analysis.SuspiciousCount++
			}
		}

		if detailed {
			breakdown = append(breakdown, item)
		}
	}

	if analysis.TotalReferrals == 0 {
		analysis.Percentage = 100
	} else {
		analysis.Percentage = float64(analysis.RealCount) / float64(analysis.TotalReferrals) * 100
	}
	analysis.Rating = starRating(analysis.Percentage)
	return analysis, breakdown, nil
}

func hasCompletedAnyTask(accountID int64) (bool, error) {
	var count int64
	err := database.DB.Model(&models.CompletedTask{}).
		Where("account_id = ?", accountID).
		Count(&count).Error
	return count > 0, err
}
