package routes

import (
	"os"
	"strings"

	"jewelbill-backend/config"
	"jewelbill-backend/controllers"
	"jewelbill-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	origins := []string{"http://localhost:3000", "http://localhost:5173"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	users := r.Group("/api/users")
	{
		users.POST("/login", controllers.Login)

		users.Use(utils.AuthMiddleware())
		users.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		invoices := api.Group("/invoices")
		{
			invoices.POST("", controllers.CreateInvoice)
			invoices.GET("", controllers.GetInvoices)
			invoices.GET("/:id", controllers.GetInvoice)
			invoices.GET("/:id/pdf", controllers.GetInvoicePDF)
		}

		rates := api.Group("/rates")
		{
			rates.GET("", controllers.GetRate)
			rates.PUT("", controllers.UpdateRate)
		}
	}

	return r
}
