package database

import (
	"fmt"
	"log"

	config "github.com/anjiri1684/reward_ledger/configs"
	"github.com/anjiri1684/reward_ledger/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.Account{},
		&models.Referral{},
		&models.Task{},
		&models.TaskSubmission{},
		&models.CompletedTask{},
		&models.WithdrawalRequest{},
		&models.Setting{},
		&models.ActivityLog{},
		&models.BlacklistEntry{},
		&models.AdminUser{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

// SeedSettings inserts the default tunables without overwriting values an
// admin has already changed.
func SeedSettings(defaults map[string]string) {
	for key, value := range defaults {
		var count int64
		if err := DB.Model(&models.Setting{}).Where("key = ?", key).Count(&count).Error; err != nil {
			log.Fatalf("🔥 Failed to check setting %s: %v", key, err)
		}
		if count > 0 {
			continue
		}
		if err := DB.Create(&models.Setting{Key: key, Value: value}).Error; err != nil {
			log.Fatalf("🔥 Failed to seed setting %s: %v", key, err)
		}
	}
	fmt.Println("✅ Default settings seeded")
}

func SeedAdmin() {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")

	var count int64
	err := DB.Model(&models.AdminUser{}).Where("email = ?", adminEmail).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
		return
	}

	admin := models.AdminUser{
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     "admin",
	}

	if err := DB.Create(&admin).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
		return
	}

	log.Println("✅ Admin user seeded successfully")
}
