package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
)

// WatiMessage represents the structure of a message to send via Wati API
type WatiMessage struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// SendPaymentConfirmationWhatsApp messages the payer after a successful
// payment using the Wati API. Skipped when Wati is not configured.
func SendPaymentConfirmationWhatsApp(phoneNumber, receiptNo string, amount float64) {
	watiURL := os.Getenv("WATI_URL")
	if watiURL == "" {
		log.Println("WATI_URL not set; skipping WhatsApp confirmation")
		return
	}

	message := WatiMessage{
		Phone:   phoneNumber,
		Message: fmt.Sprintf("Your fee payment of KES %.0f was received. M-PESA receipt: %s", amount, receiptNo),
	}

	messageJSON, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal WhatsApp confirmation: %v", err)
		return
	}

	req, err := http.NewRequest("POST", watiURL+"/api/v1/sendSessionMessage", bytes.NewBuffer(messageJSON))
	if err != nil {
		log.Printf("Failed to create Wati API request: %v", err)
		return
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+os.Getenv("WATI_API_KEY"))

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		log.Printf("Failed to send WhatsApp confirmation: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Failed to send WhatsApp confirmation: received status code %d", resp.StatusCode)
	}
}
