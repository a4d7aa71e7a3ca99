package payments

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"school-fees-portal-server/models"
	"school-fees-portal-server/mpesa"
	"school-fees-portal-server/utils"

	"github.com/gin-gonic/gin"
)

// MpesaCallback handles the gateway's asynchronous result delivery. It must
// always acknowledge with ResultCode 0; anything else makes the gateway
// retry and duplicate our own side effects.
func MpesaCallback(c *gin.Context) {
	defer c.JSON(http.StatusOK, mpesa.SuccessAck())

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Printf("Failed to read M-Pesa callback body: %v", err)
		return
	}

	callback, err := mpesa.ParseCallback(body)
	if err != nil {
		log.Printf("Malformed M-Pesa callback: %v", err)
		return
	}

	var payment models.MpesaPayment
	if err := utils.PortalDB.Where("checkout_request_id = ?", callback.CheckoutRequestID).First(&payment).Error; err != nil {
		// Late, duplicate or unknown delivery. Nothing to update.
		log.Printf("No pending payment for checkout request %s: %v", callback.CheckoutRequestID, err)
		return
	}

	if payment.Status != "Pending" {
		log.Printf("Duplicate callback for checkout request %s (status %s)", callback.CheckoutRequestID, payment.Status)
		return
	}

	if callback.ResultCode != 0 {
		if err := utils.PortalDB.Model(&payment).Updates(map[string]interface{}{
			"status":             "Failed",
			"result_description": callback.ResultDesc,
		}).Error; err != nil {
			log.Printf("Failed to mark payment %s failed: %v", callback.CheckoutRequestID, err)
		}
		return
	}

	details := callback.PaymentDetails()
	if err := utils.PortalDB.Model(&payment).Updates(map[string]interface{}{
		"status":             "Success",
		"receipt_number":     details.ReceiptNumber,
		"transaction_date":   details.TransactionDate,
		"result_description": callback.ResultDesc,
	}).Error; err != nil {
		log.Printf("Failed to mark payment %s successful: %v", callback.CheckoutRequestID, err)
		return
	}

	recordSuccessfulPayment(payment, details)
}

// recordSuccessfulPayment fans a confirmed payment out into the portal's
// records: receipt, payment history, student balance, notification and
// confirmation messages. Failures here are logged only; the callback has
// already been acknowledged.
func recordSuccessfulPayment(payment models.MpesaPayment, details mpesa.PaymentDetails) {
	amount := details.Amount
	if amount == 0 {
		amount = payment.Amount
	}

	admissionNo := ""
	var student models.Student
	if err := utils.PortalDB.Where("name = ?", payment.PayerName).First(&student).Error; err == nil {
		admissionNo = student.AdmissionNo
		if err := utils.PortalDB.Model(&student).Update("balance", student.Balance-amount).Error; err != nil {
			log.Printf("Failed to update balance for student %s: %v", student.AdmissionNo, err)
		}
	} else {
		log.Printf("No student record matching payer %q; recording payment without admission number", payment.PayerName)
	}

	receipt := models.Receipt{
		ReceiptNo:   details.ReceiptNumber,
		StudentName: payment.PayerName,
		AdmissionNo: admissionNo,
		Amount:      amount,
		PaymentDate: details.TransactionDate,
		PayMode:     "M-PESA",
		PhoneNumber: payment.PhoneNumber,
		Status:      "Paid",
	}
	if err := utils.PortalDB.Create(&receipt).Error; err != nil {
		log.Printf("Failed to create receipt %s: %v", details.ReceiptNumber, err)
	}

	feePayment := models.FeePayment{
		StudentName: payment.PayerName,
		AdmissionNo: admissionNo,
		Amount:      amount,
		Method:      "M-PESA",
		Reference:   details.ReceiptNumber,
		PaymentDate: details.TransactionDate,
	}
	if err := utils.PortalDB.Create(&feePayment).Error; err != nil {
		log.Printf("Failed to record fee payment for %s: %v", payment.PayerName, err)
	}

	notification := models.Notification{
		Title:   "New Payment",
		Message: fmt.Sprintf("%s made a payment of KES %.0f", payment.PayerName, amount),
	}
	if err := utils.PortalDB.Create(&notification).Error; err != nil {
		log.Printf("Failed to create payment notification: %v", err)
	}

	notifyStaffDevices(notification.Title, notification.Message)

	utils.SendPaymentConfirmationWhatsApp(payment.PhoneNumber, details.ReceiptNumber, amount)

	var settings models.SchoolSetting
	if err := utils.PortalDB.First(&settings).Error; err == nil {
		utils.SendReceiptEmail(settings.Email, payment.PayerName, details.ReceiptNumber, amount)
	}
}

func notifyStaffDevices(title, message string) {
	var users []models.User
	if err := utils.PortalDB.Where("push_token <> ''").Find(&users).Error; err != nil {
		log.Printf("Failed to fetch staff push tokens: %v", err)
		return
	}
	for _, user := range users {
		utils.SendPushNotification(user.PushToken, title, message)
	}
}
