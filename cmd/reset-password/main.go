package main

import (
	"flag"
	"strings"

	"go-retail-ledger/internal/model"
	"go-retail-ledger/pkg/database"
	"go-retail-ledger/pkg/logging"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Operator utility: resets an account password directly in the database.
func main() {
	log := logging.GetLogger()

	email := flag.String("email", "", "account email")
	password := flag.String("password", "", "new password")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("usage: reset-password -email <email> -password <new password>")
	}

	if err := godotenv.Load(); err != nil {
		log.Warn(".env file not found, relying on system env")
	}

	db := database.ConnectDB()

	var user model.User
	if err := db.Where("email = ?", strings.ToLower(*email)).First(&user).Error; err != nil {
		log.WithError(err).Fatalf("user %s not found in database", *email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Fatal("failed to hash password")
	}

	if err := db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		log.WithError(err).Fatal("failed to update password in DB")
	}

	log.Infof("password for %s has been reset", user.Email)
}
