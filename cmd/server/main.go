package main

import (
	"log"
	"strconv"

	"claritycoach/config"
	"claritycoach/middlewares"
	"claritycoach/routes"
	"claritycoach/services"
	"claritycoach/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig("./config/config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	services.Init(cfg)
	log.Printf("Using backend at %s", cfg.Backend.BaseURL)

	router := setupRouter(cfg)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	// CORS for the web client (localhost:5173 is the Vite dev server).
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middlewares.SessionHeader},
		ExposeHeaders:    []string{"Content-Length", middlewares.SessionHeader},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	app := router.Group("/")
	app.Use(middlewares.Session())
	{
		routes.SetupTranslateRoutes(app)
		routes.SetupChatRoutes(app)
		routes.SetupFormRoutes(app)

		// Progress streaming for the loading-tip ticker.
		app.GET("/ws/progress", websocket.ProgressHandler)
	}

	return router
}
