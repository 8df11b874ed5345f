// cmd/seedadmin/main.go - creates or updates the bootstrap admin user.
// Usage: go run cmd/seedadmin/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/google/uuid"
)

func main() {
	path := os.Getenv("DATABASE_PATH")
	if path == "" {
		path = "labtrack.db"
	}
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@labtrack.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "changeme"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatalf("bcrypt error: %v", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}

	result := db.WithContext(context.Background()).Exec(`
		INSERT INTO users (id, email, full_name, password_hash, role, active, created_at, updated_at)
		VALUES (?, ?, 'Administrator', ?, 'admin', true, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (email) DO UPDATE
		SET password_hash = excluded.password_hash,
		    role = 'admin',
		    active = true,
		    updated_at = CURRENT_TIMESTAMP
	`, uuid.NewString(), email, string(hash))

	if result.Error != nil {
		log.Fatalf("insert error: %v", result.Error)
	}
	fmt.Printf("admin user %q created/updated\n", email)
}
