package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mockdrill/mockdrill-backend/internal/config"
	"github.com/mockdrill/mockdrill-backend/internal/database"
	"github.com/mockdrill/mockdrill-backend/internal/logger"
	"github.com/mockdrill/mockdrill-backend/internal/model"
	"github.com/mockdrill/mockdrill-backend/internal/repository"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	studentRepo := repository.NewStudentRepository(pool)

	fmt.Println("=== Seeding 50 Students ===")

	// One hash for every seed account; the password is "mockdrill123".
	hash, err := bcrypt.GenerateFromPassword([]byte("mockdrill123"), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash seed password")
	}

	names := []string{
		"Aarav Sharma", "Diya Patel", "Vihaan Gupta", "Ananya Iyer", "Arjun Reddy",
		"Ishita Nair", "Kabir Singh", "Meera Menon", "Rohan Verma", "Sneha Pillai",
		"Aditya Joshi", "Kavya Krishnan", "Dev Malhotra", "Pooja Desai", "Nikhil Rao",
		"Riya Kapoor", "Siddharth Bose", "Tanvi Kulkarni", "Varun Chauhan", "Aisha Khan",
		"Harsh Agarwal", "Nisha Bhat", "Pranav Hegde", "Shruti Saxena", "Yash Trivedi",
		"Anjali Mishra", "Kunal Shetty", "Lakshmi Raman", "Manish Tiwari", "Neha Chopra",
		"Om Prakash", "Priya Sinha", "Rahul Dubey", "Sakshi Jain", "Tarun Bajaj",
		"Usha Devi", "Vikram Naidu", "Zara Sheikh", "Abhishek Pandey", "Bhavna Shah",
		"Chirag Mehta", "Deepika Rawat", "Gaurav Thakur", "Hema Latha", "Irfan Ali",
		"Jyoti Yadav", "Karthik Subramanian", "Lavanya Reddy", "Mohit Goel", "Nandini Das",
	}

	successCount := 0
	for i, name := range names {
		email := fmt.Sprintf("%s%d@example.com", strings.ToLower(strings.Fields(name)[0]), i+1)

		student := &model.Student{
			Name:         name,
			Email:        email,
			Phone:        fmt.Sprintf("+9198%08d", i+1),
			PasswordHash: string(hash),
		}

		err := studentRepo.Create(ctx, student)
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			fmt.Printf("Skipping %s: email %s already exists\n", name, email)
		case err != nil:
			fmt.Printf("Error creating student %s (%s): %v\n", name, email, err)
		default:
			successCount++
			if (i+1)%10 == 0 {
				fmt.Printf("Created %d students...\n", i+1)
			}
		}
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d students.\n", successCount, len(names))
}
