package utils

import (
	"math/rand"
	"time"

	"github.com/anjiri1684/reward_ledger/models"
	"gorm.io/gorm"
)

const referralCodeLength = 8
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var seededRand = rand.New(rand.NewSource(time.Now().UnixNano()))

func RandomCode(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
	}
	return string(b)
}

// GenerateUniqueReferralCode retries until the code does not collide with an
// existing account. Collisions are rare at 36^8 but the start-parameter flow
// cannot tolerate one.
func GenerateUniqueReferralCode(tx *gorm.DB) (string, error) {
	for {
		code := RandomCode(referralCodeLength)

		var account models.Account
		err := tx.Where("referral_code = ?", code).First(&account).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return code, nil
			}
			return "", err
		}
	}
}
