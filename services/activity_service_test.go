package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpamVerdict(t *testing.T) {
	assert.False(t, spamVerdict(10, 30), "limits themselves are not a violation")
	assert.True(t, spamVerdict(11, 0))
	assert.True(t, spamVerdict(0, 31))
	assert.True(t, spamVerdict(11, 31))
	assert.False(t, spamVerdict(0, 0))
}

func TestSpamScoreFormula(t *testing.T) {
	assert.InDelta(t, 37.5, spamScore(11, 31), 1e-9) // 2*11 + 0.5*31
	assert.InDelta(t, 0.0, spamScore(0, 0), 1e-9)
	assert.InDelta(t, 35.0, spamScore(10, 30), 1e-9)
}
