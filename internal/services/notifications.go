package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/carecircleapp/carecircle-api/internal/models"
)

// NotificationService sends SMS messages through Textbelt.
type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// SendWelcomeSMS greets a freshly registered user. Fire-and-forget so the
// API response is not held up by the SMS gateway.
func (s *NotificationService) SendWelcomeSMS(user *models.User) {
	if user.Phone == "" {
		log.Println("SMS not sent: user has no phone number.")
		return
	}

	smsBody := fmt.Sprintf(
		"Welcome to CareCircle, %s! Your family can now add you to their care group.",
		user.FullName(),
	)

	go sendSmsWithTextbelt(user.Phone, smsBody)
}

// --- Private Helper Function for Textbelt ---
func sendSmsWithTextbelt(phone, message string) {
	// Textbelt free key allows 1 SMS per day. Get a paid key for more.
	textbeltKey := os.Getenv("TEXTBELT_API_KEY")

	postBody, _ := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
		"key":     textbeltKey,
	})

	resp, err := http.Post("https://textbelt.com/text", "application/json", bytes.NewBuffer(postBody))
	if err != nil {
		log.Printf("Failed to send Textbelt request for number %s: %v", phone, err)
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)

	success, _ := result["success"].(bool)
	if !success {
		errorMsg, _ := result["error"].(string)
		log.Printf("Failed to send SMS via Textbelt to %s. Reason: %s", phone, errorMsg)
	} else {
		log.Printf("Successfully sent SMS via Textbelt to %s", phone)
	}
}
