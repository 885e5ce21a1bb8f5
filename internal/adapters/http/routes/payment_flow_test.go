package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"loye-backend/internal/adapters/persistence/models"
)

// fakeWaveServer stands in for the Wave checkout API, echoing back the
// client reference the way the real API does.
func fakeWaveServer(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkout/sessions" {
			http.NotFound(w, r)
			return
		}
		var payload struct {
			ClientReference string `json:"client_reference"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id":               "cos-test-session",
			"wave_launch_url":  "https://pay.wave.com/c/cos-test-session",
			"checkout_status":  "open",
			"payment_status":   "processing",
			"client_reference": payload.ClientReference,
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestWavePaymentLifecycle(t *testing.T) {
	waveServer := fakeWaveServer(t)
	app, db, cfg := newTestAppWithWave(t, waveServer.URL)

	owner, _ := createUser(t, db, cfg, "Owner", "owner@pay.test", "user", "owner")
	renter, renterToken := createUser(t, db, cfg, "Renter", "renter@pay.test", "user", "renter")

	property := &models.Property{Name: "Villa Marcory", Address: "Marcory Zone 4", OwnerID: owner.ID}
	if err := db.Create(property).Error; err != nil {
		t.Fatalf("create property: %v", err)
	}
	unit := &models.Unit{
		PropertyID:  property.ID,
		Code:        "LY-PAY01",
		Type:        "studio",
		RentAmount:  150000,
		RentDueDate: 10,
		RenterID:    &renter.ID,
	}
	if err := db.Create(unit).Error; err != nil {
		t.Fatalf("create unit: %v", err)
	}

	// Initiate the checkout
	response, parsed := doJSON(t, app, http.MethodPost, "/api/loye/payments/wave/init", renterToken, map[string]interface{}{
		"unitCode": "LY-PAY01",
		"amount":   150000,
	})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("init status = %d, want 200 (%s)", response.StatusCode, parsed.Message)
	}
	if url, _ := parsed.Data["checkoutUrl"].(string); url != "https://pay.wave.com/c/cos-test-session" {
		t.Fatalf("checkoutUrl = %q", url)
	}

	var payment models.Payment
	if err := db.Where("unit_id = ?", unit.ID).First(&payment).Error; err != nil {
		t.Fatalf("expected payment row: %v", err)
	}
	if payment.ProviderStatus != "CREATED" {
		t.Fatalf("provider status = %q, want CREATED", payment.ProviderStatus)
	}

	// Provider settles the payment
	response, _ = doJSON(t, app, http.MethodPost, "/api/loye/payments/wave/webhook", "", map[string]interface{}{
		"client_reference": payment.TransactionID,
		"payment_status":   "paid",
	})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("webhook status = %d, want 200", response.StatusCode)
	}

	// The payout is booked net of the 3% platform fee
	var payout models.Payout
	if err := db.Where("payment_id = ?", payment.ID).First(&payout).Error; err != nil {
		t.Fatalf("expected payout row: %v", err)
	}
	if payout.Amount != 145500 {
		t.Fatalf("payout amount = %d, want 145500", payout.Amount)
	}
	if payout.OwnerID != owner.ID {
		t.Fatalf("payout owner = %d, want %d", payout.OwnerID, owner.ID)
	}

	// A replayed settlement must not double-book the payout
	doJSON(t, app, http.MethodPost, "/api/loye/payments/wave/webhook", "", map[string]interface{}{
		"client_reference": payment.TransactionID,
		"payment_status":   "ACCEPTED",
	})
	var payoutCount int64
	if err := db.Model(&models.Payout{}).Where("payment_id = ?", payment.ID).Count(&payoutCount).Error; err != nil {
		t.Fatalf("count payouts: %v", err)
	}
	if payoutCount != 1 {
		t.Fatalf("payout count = %d, want 1", payoutCount)
	}

	// The banner reports the period as paid
	_, parsed = doJSON(t, app, http.MethodGet, "/api/loye/rent-status", renterToken, nil)
	banner, _ := parsed.Data["banner"].(map[string]interface{})
	if paid, _ := banner["paid"].(bool); !paid {
		t.Fatalf("banner.paid = %v, want true", banner["paid"])
	}
	if line, _ := banner["statusLine"].(string); line != "Loyer payé pour ce mois" {
		t.Fatalf("statusLine = %q", line)
	}

	// History shows the settled payment
	_, parsed = doJSON(t, app, http.MethodGet, "/api/loye/payments/renter/payments/latest", renterToken, nil)
	items, _ := parsed.Data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	first, _ := items[0].(map[string]interface{})
	if status, _ := first["status"].(string); status != "ACCEPTED" {
		t.Fatalf("payment status = %q, want ACCEPTED", status)
	}
	if label, _ := first["statusLabel"].(string); label != "Payé" {
		t.Fatalf("statusLabel = %q, want Payé", label)
	}
}

func TestInitWaveRejectsForeignUnit(t *testing.T) {
	waveServer := fakeWaveServer(t)
	app, db, cfg := newTestAppWithWave(t, waveServer.URL)

	owner, _ := createUser(t, db, cfg, "Owner", "owner2@pay.test", "user", "owner")
	tenant, _ := createUser(t, db, cfg, "Tenant", "tenant@pay.test", "user", "renter")
	_, intruderToken := createUser(t, db, cfg, "Intruder", "intruder@pay.test", "user", "renter")

	property := &models.Property{Name: "Villa", Address: "Plateau", OwnerID: owner.ID}
	if err := db.Create(property).Error; err != nil {
		t.Fatalf("create property: %v", err)
	}
	unit := &models.Unit{PropertyID: property.ID, Code: "LY-PAY02", Type: "2chambres", RentAmount: 200000, RentDueDate: 5, RenterID: &tenant.ID}
	if err := db.Create(unit).Error; err != nil {
		t.Fatalf("create unit: %v", err)
	}

	response, _ := doJSON(t, app, http.MethodPost, "/api/loye/payments/wave/init", intruderToken, map[string]interface{}{
		"unitCode": "LY-PAY02",
		"amount":   200000,
	})
	if response.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", response.StatusCode)
	}
}

func TestWebhookUnknownReference(t *testing.T) {
	app, _, _ := newTestApp(t)

	response, _ := doJSON(t, app, http.MethodPost, "/api/loye/payments/wave/webhook", "", map[string]interface{}{
		"client_reference": "no-such-transaction",
		"payment_status":   "paid",
	})
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", response.StatusCode)
	}
}
