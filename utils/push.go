package utils

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
)

const expoPushURL = "https://exp.host/--/api/v2/push/send"

// SendPushNotification delivers a push message to a staff device via the
// Expo push service. Failures are logged only; delivery is best effort.
func SendPushNotification(pushToken, title, message string) {
	notification := map[string]interface{}{
		"to":    pushToken,
		"sound": "default",
		"title": title,
		"body":  message,
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		log.Printf("Failed to marshal notification payload: %v", err)
		return
	}

	resp, err := http.Post(expoPushURL, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		log.Printf("Failed to send push notification: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		log.Printf("Failed to send push notification, status: %d, response: %s", resp.StatusCode, string(bodyBytes))
	}
}
