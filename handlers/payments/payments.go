package payments

import (
	"context"
	"errors"
	"log"
	"net/http"

	"school-fees-portal-server/models"
	"school-fees-portal-server/mpesa"
	"school-fees-portal-server/utils"

	"github.com/gin-gonic/gin"
)

// Gateway is the M-Pesa client the handlers call. Setup leaves it nil when
// credentials are missing, and InitiateMpesaPayment reports which ones.
var (
	Gateway    *mpesa.Client
	gatewayErr error
)

// Setup wires the gateway client built at startup into the handlers. A nil
// client with a ConfigError keeps the rest of the portal serving while the
// initiate path reports the missing variables.
func Setup(client *mpesa.Client, err error) {
	Gateway = client
	gatewayErr = err
}

// InitiateMpesaPayment handles POST /pay: validates the caller's input,
// fetches a fresh gateway token and submits an STK push. The payer gets a
// prompt on their device; the final outcome arrives later on the callback.
func InitiateMpesaPayment(c *gin.Context) {
	if Gateway == nil {
		detail := "M-Pesa gateway is not configured"
		var cfgErr *mpesa.ConfigError
		if errors.As(gatewayErr, &cfgErr) {
			detail = cfgErr.Error()
		} else if gatewayErr != nil {
			detail = gatewayErr.Error()
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "M-Pesa credentials not configured. Please check your environment variables.",
			"details": detail,
		})
		return
	}

	var req mpesa.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: payerName, phoneNumber, and amount are required"})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokenCtx, cancelToken := context.WithTimeout(c.Request.Context(), mpesa.TokenTimeout)
	defer cancelToken()

	accessToken, err := Gateway.GetAccessToken(tokenCtx)
	if err != nil {
		log.Printf("M-Pesa token exchange failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	pushCtx, cancelPush := context.WithTimeout(c.Request.Context(), mpesa.STKPushTimeout)
	defer cancelPush()

	result, err := Gateway.InitiateSTKPush(pushCtx, accessToken, req)
	if err != nil {
		var paymentErr *mpesa.PaymentError
		if errors.As(err, &paymentErr) && paymentErr.Stage == mpesa.StageBusiness {
			c.JSON(http.StatusBadRequest, gin.H{"error": paymentErr.Description})
			return
		}
		log.Printf("STK push failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Record the pending payment keyed by CheckoutRequestID so the callback
	// receiver can correlate the result.
	payment := models.MpesaPayment{
		CheckoutRequestID: result.CheckoutRequestID,
		MerchantRequestID: result.MerchantRequestID,
		PayerName:         req.PayerName,
		PhoneNumber:       req.PhoneNumber,
		Amount:            req.Amount,
		Status:            "Pending",
	}
	if err := utils.PortalDB.Create(&payment).Error; err != nil {
		log.Printf("Failed to record pending M-Pesa payment %s: %v", result.CheckoutRequestID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"message":           "Payment request sent successfully",
		"checkoutRequestId": result.CheckoutRequestID,
		"merchantRequestId": result.MerchantRequestID,
	})
}
