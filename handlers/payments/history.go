package payments

import (
	"net/http"

	"school-fees-portal-server/models"
	"school-fees-portal-server/utils"

	"github.com/gin-gonic/gin"
)

// GetPayments lists the fee payment history, newest first.
func GetPayments(c *gin.Context) {
	var payments []models.FeePayment
	if err := utils.PortalDB.Order("created_at desc").Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// GetMpesaPaymentStatus lets the dashboard poll for the outcome of an STK
// push it initiated, keyed by the checkout request ID returned from /pay.
func GetMpesaPaymentStatus(c *gin.Context) {
	checkoutRequestID := c.Param("checkout_request_id")
	if checkoutRequestID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Checkout request ID is required"})
		return
	}

	var payment models.MpesaPayment
	if err := utils.PortalDB.Where("checkout_request_id = ?", checkoutRequestID).First(&payment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"checkoutRequestId": payment.CheckoutRequestID,
		"merchantRequestId": payment.MerchantRequestID,
		"status":            payment.Status,
		"amount":            payment.Amount,
		"receiptNumber":     payment.ReceiptNumber,
		"resultDescription": payment.ResultDescription,
	})
}
