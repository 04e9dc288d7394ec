package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Ravindra230104/EduGather-server/internal/config"
	"github.com/Ravindra230104/EduGather-server/internal/models"
	"github.com/Ravindra230104/EduGather-server/internal/repository"
	"github.com/Ravindra230104/EduGather-server/pkg/utils"
)

// Seeds the shared guest account used for demo logins. Safe to re-run; an
// existing guest is left alone.
func main() {
	email := flag.String("email", "guest@edugather.local", "guest account email")
	password := flag.String("password", "guest123", "guest account password")
	flag.Parse()

	if err := run(*email, *password); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(email, password string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := repository.InitDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		fmt.Printf("Guest user already exists: %s\n", existing.Username)
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	guest := models.User{
		Username:     utils.GenerateUsername(),
		Name:         "Guest User",
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleGuest,
	}
	if err := db.Create(&guest).Error; err != nil {
		return fmt.Errorf("failed to create guest user: %w", err)
	}

	fmt.Printf("Guest user created: %s (%s)\n", guest.Username, guest.Email)
	return nil
}
