package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"messagebox/config"
	"messagebox/internal/domain/message"
	"messagebox/internal/domain/user"
	"messagebox/internal/repository"
	"messagebox/pkg/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const usage = `
Messagebox - Database CLI Tool

Usage:
  migrate [command] [flags]

Commands:
  up          Run schema migrations
  status      Show database connection status
  seed        Seed the database with an admin account
  reset       Drop all tables and re-run migrations (DANGEROUS)

Flags:
  -admin-email string  Admin email for seeding (default "admin@example.com")
  -admin-pass string   Admin password for seeding (default "Admin@123!")

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go seed -admin-email admin@example.com
  go run cmd/migrate/main.go reset
`

func main() {
	adminEmail := flag.String("admin-email", "admin@example.com", "Admin email for seeding")
	adminPass := flag.String("admin-pass", "Admin@123!", "Admin password for seeding")

	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)

	cfg := config.LoadConfig()
	database.Connect(cfg)
	defer database.Close()

	switch command {
	case "up":
		runMigrationsUp()
	case "status":
		showStatus()
	case "seed":
		runSeed(*adminEmail, *adminPass)
	case "reset":
		runReset()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func runMigrationsUp() {
	log.Println("🚀 Running migrations UP...")

	if err := database.DB.AutoMigrate(&user.User{}, &message.Message{}); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	log.Println("✅ Migrations completed successfully!")
}

func showStatus() {
	log.Println("🔍 Checking database status...")

	if err := database.Ping(); err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	log.Println("✅ Database connection: OK")

	tables := []string{"users", "messages"}
	for _, table := range tables {
		exists, err := database.TableExists(table)
		if err != nil {
			log.Printf("⚠️  Error checking table %s: %v", table, err)
			continue
		}
		if exists {
			count, _ := database.GetTableCount(table)
			log.Printf("✅ Table %-10s exists (%d rows)", table, count)
		} else {
			log.Printf("❌ Table %-10s does not exist", table)
		}
	}
}

func runSeed(adminEmail, adminPass string) {
	log.Println("🌱 Seeding database...")

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPass), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ Hashing admin password failed: %v", err)
	}

	repo := repository.NewUserRepository(database.DB)
	admin := &user.User{
		ID:           uuid.New(),
		Email:        adminEmail,
		Name:         "admin",
		PasswordHash: string(hash),
		IsActive:     true,
		IsStaff:      true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := repo.Create(context.Background(), admin); err != nil {
		log.Fatalf("❌ Seeding admin user failed: %v", err)
	}

	log.Printf("✅ Admin user created: %s", adminEmail)
}

func runReset() {
	log.Println("💣 Dropping all tables...")

	if err := database.DB.Migrator().DropTable(&message.Message{}, &user.User{}); err != nil {
		log.Fatalf("❌ Drop failed: %v", err)
	}

	runMigrationsUp()
}
