package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"auth-backend/internal/auth"
	"auth-backend/internal/handlers"
	"auth-backend/internal/middleware"
	"auth-backend/internal/service"
)

func Register(router *gin.Engine, sessions *service.SessionService, users *service.UserService, tokens *auth.TokenIssuer, allowedOrigins string) {
	router.Use(corsMiddleware(allowedOrigins))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "auth-backend"})
	})

	sessionHandler := handlers.NewSessionHandler(sessions)
	userHandler := handlers.NewUserHandler(users)

	api := router.Group("/api")
	{
		api.POST("/session/login-with-email-and-password", sessionHandler.Login)
		api.POST("/session/login-with-email-and-otp", sessionHandler.LoginWithOTP)
		api.POST("/session/generate-otp", sessionHandler.GenerateOTP)
		api.POST("/session/generate-access-token", sessionHandler.Refresh)
		api.POST("/user/create", userHandler.Create)
	}

	protected := api.Group("/")
	protected.Use(middleware.AuthRequired(tokens))
	{
		protected.GET("/session", sessionHandler.Show)
		protected.GET("/user/profile", userHandler.Profile)
	}
}

func corsMiddleware(allowed string) gin.HandlerFunc {
	origins := []string{}
	for _, origin := range strings.Split(allowed, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}

	allowAll := len(origins) == 0

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, allowedOrigin := range origins {
				if origin == allowedOrigin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					c.Writer.Header().Set("Vary", "Origin")
					break
				}
			}
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
