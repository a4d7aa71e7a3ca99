package payments

import (
	"encoding/json"
	"net/http"
	"testing"

	"school-fees-portal-server/models"
	"school-fees-portal-server/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const callbackSuccessBody = `{
	"Body": {
		"stkCallback": {
			"MerchantRequestID": "m_1",
			"CheckoutRequestID": "ws_1",
			"ResultCode": 0,
			"ResultDesc": "The service request is processed successfully.",
			"CallbackMetadata": {
				"Item": [
					{"Name": "Amount", "Value": 15000},
					{"Name": "MpesaReceiptNumber", "Value": "QWE123"},
					{"Name": "TransactionDate", "Value": 20240320143022},
					{"Name": "PhoneNumber", "Value": 254712345678}
				]
			}
		}
	}
}`

func assertAck(t *testing.T, body []byte) {
	t.Helper()
	var ack map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &ack))
	assert.Equal(t, float64(0), ack["ResultCode"])
	assert.Equal(t, "Success", ack["ResultDesc"])
}

func pendingPayment() models.MpesaPayment {
	return models.MpesaPayment{
		CheckoutRequestID: "ws_1",
		MerchantRequestID: "m_1",
		PayerName:         "John Doe",
		PhoneNumber:       "254712345678",
		Amount:            15000,
		Status:            "Pending",
	}
}

func TestMpesaCallbackSuccess(t *testing.T) {
	setupTestDB(t)
	payment := pendingPayment()
	require.NoError(t, utils.PortalDB.Create(&payment).Error)
	student := models.Student{Name: "John Doe", AdmissionNo: "STD001", Class: "Form 4", Balance: 25000}
	require.NoError(t, utils.PortalDB.Create(&student).Error)

	r := setupRouter()
	w := postJSON(r, "/mpesa/callback", callbackSuccessBody)

	require.Equal(t, http.StatusOK, w.Code)
	assertAck(t, w.Body.Bytes())

	var updated models.MpesaPayment
	require.NoError(t, utils.PortalDB.Where("checkout_request_id = ?", "ws_1").First(&updated).Error)
	assert.Equal(t, "Success", updated.Status)
	assert.Equal(t, "QWE123", updated.ReceiptNumber)
	assert.Equal(t, "20240320143022", updated.TransactionDate)

	var receipt models.Receipt
	require.NoError(t, utils.PortalDB.Where("receipt_no = ?", "QWE123").First(&receipt).Error)
	assert.Equal(t, "John Doe", receipt.StudentName)
	assert.Equal(t, "STD001", receipt.AdmissionNo)
	assert.Equal(t, float64(15000), receipt.Amount)
	assert.Equal(t, "M-PESA", receipt.PayMode)

	var feePayment models.FeePayment
	require.NoError(t, utils.PortalDB.Where("reference = ?", "QWE123").First(&feePayment).Error)
	assert.Equal(t, "M-PESA", feePayment.Method)

	var refreshed models.Student
	require.NoError(t, utils.PortalDB.Where("admission_no = ?", "STD001").First(&refreshed).Error)
	assert.Equal(t, float64(10000), refreshed.Balance)

	var notification models.Notification
	require.NoError(t, utils.PortalDB.First(&notification).Error)
	assert.Equal(t, "New Payment", notification.Title)
	assert.True(t, notification.Unread)
}

func TestMpesaCallbackFailure(t *testing.T) {
	setupTestDB(t)
	payment := pendingPayment()
	require.NoError(t, utils.PortalDB.Create(&payment).Error)

	body := `{
		"Body": {
			"stkCallback": {
				"MerchantRequestID": "m_1",
				"CheckoutRequestID": "ws_1",
				"ResultCode": 1032,
				"ResultDesc": "Request cancelled by user"
			}
		}
	}`

	r := setupRouter()
	w := postJSON(r, "/mpesa/callback", body)

	require.Equal(t, http.StatusOK, w.Code)
	assertAck(t, w.Body.Bytes())

	var updated models.MpesaPayment
	require.NoError(t, utils.PortalDB.Where("checkout_request_id = ?", "ws_1").First(&updated).Error)
	assert.Equal(t, "Failed", updated.Status)
	assert.Equal(t, "Request cancelled by user", updated.ResultDescription)

	var count int64
	utils.PortalDB.Model(&models.Receipt{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestMpesaCallbackMalformedBodyStillAcks(t *testing.T) {
	setupTestDB(t)

	r := setupRouter()
	for _, body := range []string{`{}`, `not json`, ``} {
		w := postJSON(r, "/mpesa/callback", body)
		require.Equal(t, http.StatusOK, w.Code)
		assertAck(t, w.Body.Bytes())
	}
}

func TestMpesaCallbackUnknownCheckoutStillAcks(t *testing.T) {
	setupTestDB(t)

	r := setupRouter()
	w := postJSON(r, "/mpesa/callback", callbackSuccessBody)

	require.Equal(t, http.StatusOK, w.Code)
	assertAck(t, w.Body.Bytes())
}

func TestMpesaCallbackDuplicateDelivery(t *testing.T) {
	setupTestDB(t)
	payment := pendingPayment()
	require.NoError(t, utils.PortalDB.Create(&payment).Error)

	r := setupRouter()

	first := postJSON(r, "/mpesa/callback", callbackSuccessBody)
	require.Equal(t, http.StatusOK, first.Code)

	second := postJSON(r, "/mpesa/callback", callbackSuccessBody)
	require.Equal(t, http.StatusOK, second.Code)
	assertAck(t, second.Body.Bytes())

	var receipts int64
	utils.PortalDB.Model(&models.Receipt{}).Count(&receipts)
	assert.Equal(t, int64(1), receipts, "a redelivered callback must not duplicate records")

	var feePayments int64
	utils.PortalDB.Model(&models.FeePayment{}).Count(&feePayments)
	assert.Equal(t, int64(1), feePayments)
}
