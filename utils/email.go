package utils

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/gomail.v2"
)

// SendReceiptEmail mails a payment receipt summary to the school's
// configured address. Skipped when SMTP is not configured.
func SendReceiptEmail(to, studentName, receiptNo string, amount float64) {
	if os.Getenv("SMTP_HOST") == "" || to == "" {
		log.Println("SMTP not configured or no recipient; skipping receipt email")
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_SENDER"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Payment received - receipt %s", receiptNo))
	m.SetBody("text/plain", fmt.Sprintf("A fee payment of KES %.0f was received for %s. M-PESA receipt: %s", amount, studentName, receiptNo))

	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		465,
		os.Getenv("SMTP_USER"),
		os.Getenv("SMTP_PASS"),
	)

	if err := d.DialAndSend(m); err != nil {
		log.Printf("Failed to send receipt email to %s: %v", to, err)
		return
	}

	log.Printf("Receipt email sent to %s", to)
}
