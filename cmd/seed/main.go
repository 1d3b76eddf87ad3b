package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kienkmaster/BestProductManager-Jwt/internal/config"
	"github.com/kienkmaster/BestProductManager-Jwt/internal/database"
	"github.com/kienkmaster/BestProductManager-Jwt/internal/domain"
	"github.com/kienkmaster/BestProductManager-Jwt/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	roles := repository.NewRoleRepository(db)
	products := repository.NewProductRepository(db)
	departments := repository.NewDepartmentRepository(db)
	employees := repository.NewEmployeeRepository(db)

	adminRole := ensureRole(ctx, roles, domain.RoleAdmin)
	ensureRole(ctx, roles, domain.RoleMember)

	adminName := envOr("ADMIN_USER_NAME", "admin")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		log.Fatal("ADMIN_PASSWORD must be set")
	}

	if _, err := users.GetByName(ctx, adminName); errors.Is(err, gorm.ErrRecordNotFound) {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
		u := &domain.User{UserName: adminName, PasswordHash: string(hash)}
		if err := users.Create(ctx, u); err != nil {
			log.Fatalf("seed: %v", err)
		}
		if err := users.AddToRole(ctx, u.ID, adminRole.ID); err != nil {
			log.Fatalf("seed: %v", err)
		}
		log.Printf("seeded admin user_name=%s", adminName)
	} else if err != nil {
		log.Fatalf("seed: %v", err)
	}

	existing, err := departments.GetAll(ctx)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	if len(existing) == 0 {
		salesID, err := departments.Create(ctx, "Sales")
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
		if _, err := departments.Create(ctx, "Engineering"); err != nil {
			log.Fatalf("seed: %v", err)
		}

		for _, p := range []domain.Product{
			{ProductName: "Keyboard", Price: 49.90, Stock: 120},
			{ProductName: "Monitor", Price: 219.00, Stock: 35},
			{ProductName: "Desk lamp", Price: 18.50, Stock: 200},
		} {
			p := p
			if err := products.Create(ctx, &p); err != nil {
				log.Fatalf("seed: %v", err)
			}
		}

		first, last := "Sam", "Porter"
		age := 32
		birthday := time.Date(1993, 6, 14, 0, 0, 0, 0, time.UTC)
		start := time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC)
		now := time.Now().UTC()
		if err := employees.Create(ctx, &domain.Employee{
			FirstName:     &first,
			LastName:      &last,
			Age:           &age,
			Birthday:      &birthday,
			DepartmentID:  &salesID,
			WorkStartDate: &start,
			CreatedDate:   &now,
		}); err != nil {
			log.Fatalf("seed: %v", err)
		}
		log.Print("seeded sample data")
	}
}

func ensureRole(ctx context.Context, roles *repository.RoleRepository, name string) *domain.Role {
	role, err := roles.GetByName(ctx, name)
	if err == nil {
		return role
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("seed: %v", err)
	}
	role = &domain.Role{Name: name}
	if err := roles.Create(ctx, role); err != nil {
		log.Fatalf("seed: %v", err)
	}
	return role
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
