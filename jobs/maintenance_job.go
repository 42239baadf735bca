package jobs

import (
	"log"

	"github.com/anjiri1684/reward_ledger/services"
)

func RunMaintenanceSweep() {
	log.Println("Running job: MaintenanceSweep...")

	summary, err := services.RunMaintenanceSweep()
	if err != nil {
		log.Printf("🔥 Maintenance sweep failed: %v", err)
		return
	}

	log.Printf("✅ Maintenance sweep: %d accounts, %d tiers updated, %d decayed.",
		summary.AccountsProcessed, summary.TiersUpdated, summary.IdleDecay.Decayed)
}

func RunIdleDecay() {
	log.Println("Running job: IdleDecay...")

	stats, err := services.ApplyIdleDecay()
	if err != nil {
		log.Printf("🔥 Idle decay failed: %v", err)
		return
	}

	if stats.Decayed == 0 {
		log.Println("No idle accounts to decay.")
		return
	}
	log.Printf("✅ Idle decay: %d candidates, %d decayed.", stats.Processed, stats.Decayed)
}

func RunReferralDecay() {
	log.Println("Running job: ReferralDecay...")

	stats, err := services.ApplyReferralDecay()
	if err != nil {
		log.Printf("🔥 Referral decay failed: %v", err)
		return
	}

	log.Printf("✅ Referral decay: %d referrers refreshed, %d decayed.", stats.Processed, stats.Decayed)
}
