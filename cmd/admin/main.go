package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"lecturehub/backend/internal/auth"
	"lecturehub/backend/internal/config"
	"lecturehub/backend/internal/models"
	"lecturehub/backend/internal/storage"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "create-lecturer":
		if len(os.Args) != 4 {
			usage()
		}
		createUser(storageSvc, lecturer(os.Args[2]), os.Args[3])
	case "create-class-rep":
		if len(os.Args) != 5 {
			usage()
		}
		level, err := strconv.Atoi(os.Args[3])
		if err != nil {
			log.Fatalf("invalid level %q", os.Args[3])
		}
		createUser(storageSvc, classRep(os.Args[2], level), os.Args[4])
	default:
		usage()
	}
}

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  admin create-lecturer <email> <password>")
	fmt.Println("  admin create-class-rep <matric_number> <level> <password>")
	os.Exit(1)
}

func lecturer(email string) *models.User {
	return &models.User{Email: &email, Role: models.RoleLecturer}
}

func classRep(matric string, level int) *models.User {
	if !models.ValidMatricNumber(matric) {
		log.Fatalf("invalid matric number %q, expected format 'ABC/12/3456'", matric)
	}
	return &models.User{MatricNumber: &matric, Level: &level, Role: models.RoleClassRep}
}

func createUser(s storage.Storage, user *models.User, password string) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	user.PasswordHash = hash

	if err := s.CreateUser(user); err != nil {
		log.Fatalf("failed to create user: %v", err)
	}
	fmt.Printf("created %s with id %d\n", user.Role, user.ID)
}
