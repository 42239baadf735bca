package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBoolSetting(t *testing.T) {
	assert.True(t, parseBoolSetting("1", false))
	assert.True(t, parseBoolSetting("true", false))
	assert.True(t, parseBoolSetting(" ON ", false))
	assert.True(t, parseBoolSetting("yes", false))

	assert.False(t, parseBoolSetting("0", true))
	assert.False(t, parseBoolSetting("false", true))
	assert.False(t, parseBoolSetting("off", true))

	assert.True(t, parseBoolSetting("garbage", true))
	assert.False(t, parseBoolSetting("", false))
}

func TestDefaultSettingsCoverTunables(t *testing.T) {
	defaults := DefaultSettings()

	for _, key := range []string{
		SettingReferralReward,
		SettingMinWithdrawal,
		SettingMaxWithdrawal,
		SettingWithdrawalsOpen,
		SettingSubmissionsOpen,
		SettingRefundRejectedWithdrawal,
		SettingTasksApprovedTotal,
		SettingTasksRejectedTotal,
	} {
		assert.Containsf(t, defaults, key, "missing default for %s", key)
	}

	// the observed baseline keeps the debit on rejection
	assert.Equal(t, "0", defaults[SettingRefundRejectedWithdrawal])
}
