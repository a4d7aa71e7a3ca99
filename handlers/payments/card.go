package payments

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"school-fees-portal-server/models"
	"school-fees-portal-server/utils"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/paymentintent"
	"github.com/stripe/stripe-go/v80/webhook"
)

type CreateCardPaymentRequest struct {
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	StudentName string `json:"student_name"`
	AdmissionNo string `json:"admission_no"`
	PayerEmail  string `json:"payer_email"`
}

// CreateCardPayment opens a Stripe payment intent for a card fee payment.
// The fee payment record is only written once the webhook confirms it.
func CreateCardPayment(c *gin.Context) {
	var req CreateCardPaymentRequest

	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Amount <= 0 || req.Currency == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount and currency are required"})
		return
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(req.Currency),
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
	}

	if req.PayerEmail != "" {
		params.ReceiptEmail = stripe.String(req.PayerEmail)
	}

	params.Metadata = map[string]string{
		"student_name": req.StudentName,
		"admission_no": req.AdmissionNo,
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clientSecret": pi.ClientSecret,
	})
}

// HandleStripeWebhook records card payments confirmed by Stripe.
func HandleStripeWebhook(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Writer.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	endpointSecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	event, err := webhook.ConstructEvent(payload, c.Request.Header.Get("Stripe-Signature"), endpointSecret)
	if err != nil {
		log.Printf("Webhook signature verification failed: %v", err)
		c.Writer.WriteHeader(http.StatusBadRequest)
		return
	}

	if event.Type == "payment_intent.succeeded" {
		var paymentIntent stripe.PaymentIntent
		err := json.Unmarshal(event.Data.Raw, &paymentIntent)
		if err != nil {
			log.Printf("Error parsing webhook JSON: %v", err)
			c.Writer.WriteHeader(http.StatusBadRequest)
			return
		}

		handleCardPaymentSuccess(paymentIntent)
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func handleCardPaymentSuccess(paymentIntent stripe.PaymentIntent) {
	studentName := paymentIntent.Metadata["student_name"]
	admissionNo := paymentIntent.Metadata["admission_no"]

	if studentName == "" {
		log.Printf("PaymentIntent %s has no student_name in metadata", paymentIntent.ID)
		return
	}

	// Stripe amounts are in minor units.
	amount := float64(paymentIntent.Amount) / 100

	feePayment := models.FeePayment{
		StudentName: studentName,
		AdmissionNo: admissionNo,
		Amount:      amount,
		Method:      "Card",
		Reference:   paymentIntent.ID,
	}
	if err := utils.PortalDB.Create(&feePayment).Error; err != nil {
		log.Printf("Failed to record card payment %s: %v", paymentIntent.ID, err)
	}

	if admissionNo != "" {
		var student models.Student
		if err := utils.PortalDB.Where("admission_no = ?", admissionNo).First(&student).Error; err == nil {
			if err := utils.PortalDB.Model(&student).Update("balance", student.Balance-amount).Error; err != nil {
				log.Printf("Failed to update balance for student %s: %v", admissionNo, err)
			}
		}
	}

	notification := models.Notification{
		Title:   "New Payment",
		Message: fmt.Sprintf("%s made a card payment of KES %.0f", studentName, amount),
	}
	if err := utils.PortalDB.Create(&notification).Error; err != nil {
		log.Printf("Failed to create payment notification: %v", err)
	}
}
