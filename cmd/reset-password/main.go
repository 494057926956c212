package main

import (
	"log"

	"go-itops-portal/internal/model"
	"go-itops-portal/pkg/config"
	"go-itops-portal/pkg/database"

	"golang.org/x/crypto/bcrypt"
)

// Resets the built-in admin account's password. Run it from the server host
// when the credentials are lost.
func main() {
	cfg := config.Load()
	db := database.ConnectDB(&cfg.DB)

	username := "admin"
	var user model.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		log.Fatalf("user %s not found in database: %v", username, err)
	}

	newPassword := "admin"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	if err := db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		log.Fatalf("failed to update password: %v", err)
	}

	log.Printf("password for %s has been reset", username)
}
