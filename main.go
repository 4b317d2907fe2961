package main

import (
	"log"
	"net/http"

	"table-service-api/config"
	"table-service-api/events"
	"table-service-api/handlers"
	"table-service-api/models"
	"table-service-api/routes"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	gin.SetMode(cfg.GinMode)

	db, err := config.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	seedAdmin(db)

	bus := events.NewHub()
	h := handlers.New(db, bus)

	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Table Session & Order API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the Table Session & Order API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"customer", "kitchen", "runner", "admin"},
		})
	})

	routes.SetupRoutes(r, h)

	log.Printf("Server running on http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// seedAdmin creates the bootstrap admin account on a fresh database
func seedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to seed admin user:", err)
	}
	admin := models.User{Name: "Administrator", Username: "admin", PasswordHash: string(hash), Role: models.RoleAdmin}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("Failed to seed admin user:", err)
	}
	log.Println("seeded default admin user (username: admin)")
}
