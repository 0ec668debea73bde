package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nivesolutions/ics-converter/app/cfg"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler) *gin.Engine {
	// Set Gin mode (can be controlled via GIN_MODE environment variable)
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Middleware
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware so browser clients can drive the convert endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler) {
	apiAccessKey := cfg.Get().APIAccessKey

	// Conversion endpoints, optionally behind an access key
	converts := r.Group("/convert")
	if apiAccessKey != "" {
		converts.Use(authMiddleware(apiAccessKey))
		slog.Info("Convert endpoints enabled with authentication")
	}
	{
		converts.POST("", handler.Convert)
		converts.POST("/csv", handler.ConvertCSV)
		converts.POST("/archive", handler.ConvertArchive)
		converts.POST("/workbook", handler.ConvertWorkbook)
		converts.POST("/json", handler.ConvertJSON)
	}

	// Health endpoint
	r.GET("/health", handler.HealthCheck)

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "ICS Converter",
			"version":     cfg.Get().Version,
			"description": "Converts iCalendar (.ics) files to CSV, XLSX, JSON, and zipped per-file CSVs",
			"endpoints": map[string]string{
				"summary":  "/convert (POST, multipart field 'files')",
				"csv":      "/convert/csv (POST)",
				"archive":  "/convert/archive (POST)",
				"workbook": "/convert/workbook (POST)",
				"json":     "/convert/json?mode=combined|per-file (POST)",
				"health":   "/health",
			},
			"options": map[string]string{
				"expand_rrules": "form field, accepted but not applied (recurrence expansion unsupported)",
				"strict":        "form field, promote parse leniencies to per-file errors",
			},
			"auth_required": apiAccessKey != "",
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// authMiddleware creates authentication middleware for the convert endpoints
func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get API key from X-API-Key header
		providedKey := c.GetHeader("X-API-Key")

		// Also check Authorization header with Bearer prefix
		if providedKey == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				providedKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if providedKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "API key required",
				"message": "Provide API key in X-API-Key header or Authorization: Bearer <key>",
			})
			c.Abort()
			return
		}

		if providedKey != apiAccessKey {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid API key",
				"message": "The provided API key is not valid",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
