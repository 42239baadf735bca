package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCheckWithdrawalBounds(t *testing.T) {
	min := dec("10.00")
	max := dec("500.00")

	assert.NoError(t, checkWithdrawalBounds(dec("10.00"), min, max))
	assert.NoError(t, checkWithdrawalBounds(dec("500.00"), min, max))
	assert.NoError(t, checkWithdrawalBounds(dec("42.50"), min, max))

	err := checkWithdrawalBounds(dec("9.99"), min, max)
	require.Error(t, err)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "amount below minimum withdrawal", validationErr.Reason)

	err = checkWithdrawalBounds(dec("500.01"), min, max)
	require.Error(t, err)
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "amount above maximum withdrawal", validationErr.Reason)
}

func TestCheckWithdrawalBoundsUnsetLimits(t *testing.T) {
	// non-positive configured bounds mean "no limit"
	assert.NoError(t, checkWithdrawalBounds(dec("0.01"), decimal.Zero, decimal.Zero))
	assert.NoError(t, checkWithdrawalBounds(dec("1000000"), decimal.Zero, decimal.Zero))
}

func TestValidationErrorTaxonomy(t *testing.T) {
	err := invalid("wallet address not set")

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "wallet address not set", err.Error())

	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrInvalidState)
}

func TestSortedUniqueIDsAscending(t *testing.T) {
	assert.Equal(t, []int64{1, 2, 9}, sortedUniqueIDs([]int64{9, 1, 2, 1, 9}))
	assert.Equal(t, []int64{5}, sortedUniqueIDs([]int64{5, 5}))
	assert.Empty(t, sortedUniqueIDs(nil))

	// a mutual pair produces the same lock order from either side
	assert.Equal(t, sortedUniqueIDs([]int64{7, 3}), sortedUniqueIDs([]int64{3, 7}))
}
