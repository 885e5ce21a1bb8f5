package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

// NotificationService posts rent notifications to an outbound webhook
// (SMS gateway relay). Disabled when no webhook URL is configured;
// sends are fire-and-forget.
type NotificationService struct {
	webhookURL string
	enabled    bool
	client     *http.Client
}

// NewNotificationService creates a new notification service
func NewNotificationService() *NotificationService {
	webhookURL := os.Getenv("NOTIFY_WEBHOOK_URL")
	return &NotificationService{
		webhookURL: webhookURL,
		enabled:    webhookURL != "",
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// IsEnabled checks if notification is enabled
func (s *NotificationService) IsEnabled() bool {
	return s.enabled
}

// send posts a notification payload to the webhook
func (s *NotificationService) send(payload map[string]interface{}) error {
	if !s.enabled {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return nil
}

// NotifyRentDueSoon tells a renter their rent is due in a few days
func (s *NotificationService) NotifyRentDueSoon(phone, unitCode string, amount int64, daysRemaining int) {
	message := fmt.Sprintf("Loye: votre loyer de %d XOF (logement %s) est dû dans %d jour(s).", amount, unitCode, daysRemaining)
	if daysRemaining == 0 {
		message = fmt.Sprintf("Loye: votre loyer de %d XOF (logement %s) est dû aujourd'hui.", amount, unitCode)
	}

	if err := s.send(map[string]interface{}{
		"phone":   phone,
		"message": message,
	}); err != nil {
		log.Printf("⚠️ Rent due notification failed for unit %s: %v", unitCode, err)
	}
}

// NotifyRentOverdue tells a renter their rent is overdue
func (s *NotificationService) NotifyRentOverdue(phone, unitCode string, amount int64, daysLate int) {
	message := fmt.Sprintf("Loye: votre loyer de %d XOF (logement %s) est en retard de %d jour(s).", amount, unitCode, daysLate)

	if err := s.send(map[string]interface{}{
		"phone":   phone,
		"message": message,
	}); err != nil {
		log.Printf("⚠️ Overdue notification failed for unit %s: %v", unitCode, err)
	}
}
