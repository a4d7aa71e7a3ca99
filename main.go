package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"school-fees-portal-server/handlers/auth"
	"school-fees-portal-server/handlers/notifications"
	"school-fees-portal-server/handlers/payments"
	"school-fees-portal-server/handlers/receipts"
	"school-fees-portal-server/handlers/search"
	"school-fees-portal-server/handlers/settings"
	"school-fees-portal-server/handlers/students"
	"school-fees-portal-server/migrations"
	"school-fees-portal-server/mpesa"
	"school-fees-portal-server/seed"
	"school-fees-portal-server/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file:", err)
	}
}

func main() {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("PORTAL_ORIGIN")},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	utils.ConnectDatabase()

	migrations.MigratePortal()

	// Seed Initial Data
	if err := seed.SeedAdminUser(); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
	if err := seed.SeedSchoolSettings(); err != nil {
		log.Fatalf("Failed to seed school settings: %v", err)
	}

	// The gateway client is built once here. A missing credential keeps the
	// portal up; the /pay route reports which variables are absent.
	mpesaConfig, err := mpesa.LoadConfig()
	if err != nil {
		log.Println("M-Pesa gateway not configured:", err)
		payments.Setup(nil, err)
	} else {
		payments.Setup(mpesa.NewClient(mpesaConfig), nil)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Server is running"})
	})

	r.POST("/login", auth.Login)
	r.POST("/logout", auth.AuthMiddleware(), auth.Logout)
	r.POST("/pay", payments.InitiateMpesaPayment)
	r.POST("/mpesa/callback", payments.MpesaCallback)
	r.POST("/stripe/webhook", payments.HandleStripeWebhook)

	protected := r.Group("/")
	protected.Use(auth.AuthMiddleware())
	{
		protected.GET("/students", students.GetStudents)
		protected.GET("/students/:id", students.GetStudent)
		protected.GET("/payments", payments.GetPayments)
		protected.GET("/payments/mpesa/:checkout_request_id", payments.GetMpesaPaymentStatus)
		protected.POST("/payments/card-intent", payments.CreateCardPayment)
		protected.GET("/receipts", receipts.GetReceipts)
		protected.GET("/receipts/:receipt_no", receipts.GetReceipt)
		protected.GET("/search", search.Search)
		protected.GET("/settings", settings.GetSettings)
		protected.PUT("/settings", settings.UpdateSettings)
		protected.GET("/config/status", settings.GetConfigStatus)
		protected.POST("/save-push-token", auth.SavePushToken)
		notifications.RegisterNotificationsRoutes(protected)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
