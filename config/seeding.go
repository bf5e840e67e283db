package config

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"p9e.in/obstacle/models"
	"p9e.in/obstacle/utils"
)

// SeedAdminUser creates the first admin account from SEED_ADMIN_* env vars.
// Skips when any admin already exists or the env vars are unset.
func SeedAdminUser() {
	var count int64
	if err := DB.Model(&models.User{}).Where("role = ?", utils.RoleAdmin).Count(&count).Error; err != nil {
		log.Printf("Warning: admin seed check failed: %v", err)
		return
	}
	if count > 0 {
		return
	}

	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("No admin account and no SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD set, skipping seed")
		return
	}

	name := os.Getenv("SEED_ADMIN_NAME")
	if name == "" {
		name = "Administrator"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Warning: could not hash seed admin password: %v", err)
		return
	}

	admin := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         utils.RoleAdmin,
		IsActive:     true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("Warning: could not seed admin account: %v", err)
		return
	}
	log.Printf("Seeded admin account %s", email)
}
