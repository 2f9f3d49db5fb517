package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/littlelemon/littlelemon-api/docs" // Import generated docs
	"github.com/littlelemon/littlelemon-api/internal/auth"
	"github.com/littlelemon/littlelemon-api/internal/config"
	"github.com/littlelemon/littlelemon-api/internal/controllers"
	"github.com/littlelemon/littlelemon-api/internal/database"
	"github.com/littlelemon/littlelemon-api/internal/middleware"
	"github.com/littlelemon/littlelemon-api/internal/services"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

var (
	db                *gorm.DB
	configuration     *config.Config
	oauthService      *auth.OAuthService
	menuController    controllers.MenuController
	bookingController controllers.BookingController
	authController    *controllers.AuthController
	clientController  *controllers.ClientController
)

// @title Little Lemon API
// @version 1.0
// @description Restaurant booking and menu management API
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Initialize database connection
	setupDatabase(configuration)

	// Initialize services and controllers
	oauthService = auth.NewOAuthService(db, configuration.JWTSecret)
	menuController = controllers.NewMenuController(services.NewMenuService(db))
	bookingController = controllers.NewBookingController(services.NewBookingService(db))
	authController = controllers.NewAuthController(services.NewUserService(db), configuration.JWTSecret)
	clientController = controllers.NewClientController(services.NewClientService(db))

	// Initialize Gin router
	router := setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file.
// If the file is not found, system environment variables are used.
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log
// level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	log.Infof("Configuration loaded: %s", conf.String())
	return conf
}

// setupDatabase opens the connection, migrates the schema and seeds the
// fallback user the bookings FK default points at
func setupDatabase(conf *config.Config) {
	var err error
	db, err = database.Connect(database.Config{
		Driver:   conf.DBDriver,
		Host:     conf.DBHost,
		Port:     conf.DBPort,
		User:     conf.DBUser,
		Password: conf.DBPassword,
		Name:     conf.DBName,
		SSLMode:  conf.DBSSLMode,
		Path:     conf.DBPath,
	})
	checkPanicErr(err)
	checkPanicErr(database.Migrate(db))
	checkPanicErr(database.SeedFallbackUser(db))
}

// setupRouter initializes the Gin router and sets up the routes
func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))
	router.LoadHTMLGlob("templates/*.html")

	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	jwtSecret := []byte(configuration.JWTSecret)

	// Landing page and health check
	router.GET("/", indexHandler)
	router.GET("/health", healthCheckHandler)

	api := router.Group("/api")
	{
		// Authentication endpoints
		authApi := api.Group("/auth")
		{
			authApi.POST("/register", authController.Register)
			authApi.POST("/login", authController.Login)
		}

		// OAuth2 token service for API clients
		oauthApi := api.Group("/oauth")
		{
			oauthApi.GET("/authorize", oauthService.HandleAuthorize)
			oauthApi.POST("/token", oauthService.HandleToken)
		}

		// Menu reads are public
		api.GET("/menu-items", menuController.ListMenuItems)
		api.GET("/menu-items/:id", menuController.GetMenuItem)

		// Everything below requires a valid bearer token
		protected := api.Group("")
		protected.Use(middleware.RequireAuth(jwtSecret))
		{
			protected.POST("/menu-items", menuController.CreateMenuItem)
			protected.PUT("/menu-items/:id", menuController.UpdateMenuItem)
			protected.PATCH("/menu-items/:id", menuController.UpdateMenuItem)
			protected.DELETE("/menu-items/:id", menuController.DeleteMenuItem)

			protected.GET("/bookings", bookingController.ListBookings)
			protected.POST("/bookings", bookingController.CreateBooking)
			protected.GET("/bookings/:id", bookingController.GetBooking)
			protected.PUT("/bookings/:id", bookingController.UpdateBooking)
			protected.PATCH("/bookings/:id", bookingController.UpdateBooking)
			protected.DELETE("/bookings/:id", bookingController.DeleteBooking)

			adminApi := protected.Group("/admin")
			adminApi.Use(middleware.RequireRole("admin"))
			{
				adminApi.GET("/clients", clientController.ListClients)
				adminApi.POST("/clients", clientController.CreateClient)
				adminApi.DELETE("/clients/:id", clientController.DeleteClient)
			}
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// indexHandler renders the landing page
func indexHandler(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"title": "Little Lemon",
	})
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "littlelemon-api",
	})
}
