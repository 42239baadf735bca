package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestAdvanceStreakFirstActivity(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	current, longest := advanceStreak(nil, 0, 0, now)
	assert.Equal(t, 1, current)
	assert.Equal(t, 1, longest)

	// a prior longest streak survives a fresh start
	current, longest = advanceStreak(nil, 0, 9, now)
	assert.Equal(t, 1, current)
	assert.Equal(t, 9, longest)
}

func TestAdvanceStreakConsecutiveDay(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	yesterday := day(2025, 3, 9)

	current, longest := advanceStreak(&yesterday, 4, 4, now)
	assert.Equal(t, 5, current)
	assert.Equal(t, 5, longest, "longest must follow current upward")

	current, longest = advanceStreak(&yesterday, 2, 10, now)
	assert.Equal(t, 3, current)
	assert.Equal(t, 10, longest, "longest never decreases")
}

func TestAdvanceStreakGapResets(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	threeDaysAgo := day(2025, 3, 7)

	current, longest := advanceStreak(&threeDaysAgo, 6, 6, now)
	assert.Equal(t, 1, current)
	assert.Equal(t, 6, longest)
}

func TestAdvanceStreakSameDayNoChange(t *testing.T) {
	now := time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)
	today := day(2025, 3, 10)

	current, longest := advanceStreak(&today, 3, 7, now)
	assert.Equal(t, 3, current)
	assert.Equal(t, 7, longest)
}

func TestActivityScore(t *testing.T) {
	registered := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	now := registered.Add(10 * time.Hour)

	assert.InDelta(t, 5.0, activityScore(50, registered, now), 1e-9)

	// brand-new accounts divide by the floor, not by ~zero
	score := activityScore(3, now, now)
	assert.InDelta(t, 300.0, score, 1e-9)
}

func TestUTCDateNormalizesZone(t *testing.T) {
	zone := time.FixedZone("UTC+5", 5*3600)
	local := time.Date(2025, 3, 10, 2, 0, 0, 0, zone) // 2025-03-09 21:00 UTC

	assert.Equal(t, day(2025, 3, 9), utcDate(local))
}

func TestStampUpdatedLeavesPatchUntouched(t *testing.T) {
	patch := map[string]interface{}{"username": "alice"}

	fields := stampUpdated(patch)

	assert.Contains(t, fields, "updated_at")
	assert.Equal(t, "alice", fields["username"])
	assert.NotContains(t, patch, "updated_at")
	assert.Len(t, patch, 1)
}
