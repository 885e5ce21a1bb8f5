package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// WaveConfig holds Wave checkout API configuration
type WaveConfig struct {
	APIKey     string
	BaseURL    string
	SuccessURL string
	ErrorURL   string
}

// WaveService talks to the Wave mobile-money checkout API. Calls have a
// 10s timeout and are never retried; a failed call surfaces to the caller.
type WaveService struct {
	config WaveConfig
	client *http.Client
}

// NewWaveService creates a new Wave service
func NewWaveService(config WaveConfig) *WaveService {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.wave.com"
	}
	return &WaveService{
		config: config,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// waveCheckoutRequest is the checkout session creation payload
type waveCheckoutRequest struct {
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
	SuccessURL      string `json:"success_url"`
	ErrorURL        string `json:"error_url"`
	ClientReference string `json:"client_reference"`
}

// WaveCheckoutSession represents a Wave checkout session
type WaveCheckoutSession struct {
	ID              string `json:"id"`
	WaveLaunchURL   string `json:"wave_launch_url"`
	CheckoutStatus  string `json:"checkout_status"`
	PaymentStatus   string `json:"payment_status"`
	ClientReference string `json:"client_reference"`
}

// CreateCheckoutSession creates a Wave checkout session for an XOF amount.
// clientReference is our transaction ID; Wave echoes it back on the
// webhook so the settlement can be matched to the payment row.
func (s *WaveService) CreateCheckoutSession(amount int64, clientReference string) (*WaveCheckoutSession, error) {
	payload := waveCheckoutRequest{
		Amount:          strconv.FormatInt(amount, 10),
		Currency:        "XOF",
		SuccessURL:      s.config.SuccessURL,
		ErrorURL:        s.config.ErrorURL,
		ClientReference: clientReference,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", s.config.BaseURL+"/v1/checkout/sessions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("wave checkout error: %s", string(respBody))
	}

	var session WaveCheckoutSession
	if err := json.Unmarshal(respBody, &session); err != nil {
		return nil, err
	}
	if session.WaveLaunchURL == "" {
		return nil, fmt.Errorf("wave checkout error: missing launch url")
	}

	return &session, nil
}
