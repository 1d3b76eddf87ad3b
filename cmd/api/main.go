package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/kienkmaster/BestProductManager-Jwt/internal/config"
	"github.com/kienkmaster/BestProductManager-Jwt/internal/database"
	"github.com/kienkmaster/BestProductManager-Jwt/internal/middleware"
	"github.com/kienkmaster/BestProductManager-Jwt/internal/modules/admin"
	"github.com/kienkmaster/BestProductManager-Jwt/internal/modules/auth"
	"github.com/kienkmaster/BestProductManager-Jwt/internal/modules/department"
	"github.com/kienkmaster/BestProductManager-Jwt/internal/modules/employee"
	"github.com/kienkmaster/BestProductManager-Jwt/internal/modules/product"
	"github.com/kienkmaster/BestProductManager-Jwt/internal/pkg/tokens"
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

	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	authTokenRepo := repository.NewAuthTokenRepository(db)
	productRepo := repository.NewProductRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)

	accessIssuer, err := tokens.NewAccessIssuer(cfg.JWTSigningKey, cfg.AccessTTL, cfg.JWTIssuer, cfg.JWTAudience)
	if err != nil {
		log.Fatalf("tokens: %v", err)
	}
	refreshManager := tokens.NewRefreshManager(authTokenRepo, cfg.RefreshTTL)

	authService := auth.NewService(userRepo, roleRepo, accessIssuer, refreshManager)
	authHandler := auth.NewHandler(authService, cfg)

	productHandler := product.NewHandler(product.NewService(productRepo))
	employeeHandler := employee.NewHandler(employee.NewService(employeeRepo, departmentRepo))
	departmentHandler := department.NewHandler(department.NewService(departmentRepo))
	adminHandler := admin.NewHandler(admin.NewService(userRepo, roleRepo, refreshManager))

	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorLogger(), middleware.CORS())

	api := r.Group("/api")
	authHandler.RegisterPublicRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.RequireAuth(accessIssuer, cfg.AccessCookieName))

	authHandler.RegisterProtectedRoutes(protected)
	productHandler.RegisterRoutes(protected)
	employeeHandler.RegisterRoutes(protected)
	departmentHandler.RegisterRoutes(protected)

	adminGroup := protected.Group("/admin")
	adminGroup.Use(middleware.AdminOnly())
	adminHandler.RegisterRoutes(adminGroup)

	log.Printf("listening addr=%s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
