package routes

import (
	"fmt"
	"net/http"
	"testing"
)

func TestVerificationSubmitAndApprove(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, ownerToken := createUser(t, db, cfg, "Owner", "owner@kyc.test", "user", "owner")
	_, adminToken := createUser(t, db, cfg, "Admin", "admin@kyc.test", "admin", "")

	// Nothing submitted yet
	response, _ := doJSON(t, app, http.MethodGet, "/api/loye/verification", ownerToken, nil)
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("get before submit status = %d, want 404", response.StatusCode)
	}

	// Submit the documents
	response, parsed := doJSON(t, app, http.MethodPost, "/api/loye/verification", ownerToken, map[string]interface{}{
		"fullName":    "Kouassi Yao",
		"phone":       "0759917862",
		"waveNumber":  "07 59 91 78 62",
		"idCardImage": "https://res.cloudinary.com/loye/id-card.jpg",
	})
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("submit status = %d, want 201 (%s)", response.StatusCode, parsed.Message)
	}
	if status, _ := parsed.Data["status"].(string); status != "PENDING" {
		t.Fatalf("status = %q, want PENDING", status)
	}
	if got, _ := parsed.Data["waveNumber"].(string); got != "+225 0759917862" {
		t.Fatalf("waveNumber = %q, want normalized form", got)
	}
	id := parsed.Data["id"].(float64)

	// Admin sees it in the queue
	_, parsed = doJSON(t, app, http.MethodGet, "/api/loye/verification/admin/all", adminToken, nil)
	items, _ := parsed.Data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("queue length = %d, want 1", len(items))
	}

	// Approve it
	response, parsed = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/loye/verification/admin/%.0f/approved", id), adminToken, nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("approve status = %d, want 200", response.StatusCode)
	}
	if status, _ := parsed.Data["status"].(string); status != "APPROVED" {
		t.Fatalf("status = %q, want APPROVED", status)
	}

	// The owner sees the decision
	_, parsed = doJSON(t, app, http.MethodGet, "/api/loye/verification", ownerToken, nil)
	if status, _ := parsed.Data["status"].(string); status != "APPROVED" {
		t.Fatalf("owner view status = %q, want APPROVED", status)
	}
}

func TestVerificationSubmitValidation(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, ownerToken := createUser(t, db, cfg, "Owner", "owner2@kyc.test", "user", "owner")

	// Missing ID card image
	response, _ := doJSON(t, app, http.MethodPost, "/api/loye/verification", ownerToken, map[string]interface{}{
		"fullName":   "Kouassi Yao",
		"phone":      "0759917862",
		"waveNumber": "0759917862",
	})
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing idCardImage status = %d, want 400", response.StatusCode)
	}

	// Bad wave number
	response, _ = doJSON(t, app, http.MethodPost, "/api/loye/verification", ownerToken, map[string]interface{}{
		"fullName":    "Kouassi Yao",
		"phone":       "0759917862",
		"waveNumber":  "12345",
		"idCardImage": "https://res.cloudinary.com/loye/id-card.jpg",
	})
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad waveNumber status = %d, want 400", response.StatusCode)
	}
}

func TestVerificationDecisionValidation(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, adminToken := createUser(t, db, cfg, "Admin", "admin2@kyc.test", "admin", "")

	response, _ := doJSON(t, app, http.MethodPut, "/api/loye/verification/admin/1/maybe", adminToken, nil)
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid decision status = %d, want 400", response.StatusCode)
	}

	response, _ = doJSON(t, app, http.MethodPut, "/api/loye/verification/admin/999/approved", adminToken, nil)
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("missing record status = %d, want 404", response.StatusCode)
	}

	// The POST alias keeps older clients working
	response, _ = doJSON(t, app, http.MethodPost, "/api/loye/verification/admin/999/approved", adminToken, nil)
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("post alias status = %d, want 404", response.StatusCode)
	}
}
