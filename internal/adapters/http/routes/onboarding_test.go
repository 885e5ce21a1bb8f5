package routes

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"loye-backend/internal/adapters/persistence/models"
)

func TestRegisterThenOnboardAsOwner(t *testing.T) {
	app, _, _ := newTestApp(t)

	// Too-short passwords are rejected up front
	response, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":     "Aya Kone",
		"email":    "aya@loye.test",
		"phone":    "0759917862",
		"password": "short1",
	})
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("short password register status = %d, want 400", response.StatusCode)
	}

	// Register a fresh account
	response, parsed := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":     "Aya Kone",
		"email":    "aya@loye.test",
		"phone":    "0759917862",
		"password": "StrongPass1",
	})
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, want 201", response.StatusCode)
	}
	token, _ := parsed.Data["token"].(string)
	if token == "" {
		t.Fatal("register response missing token")
	}

	// No role yet
	_, parsed = doJSON(t, app, http.MethodGet, "/api/loye/auth/check-role", token, nil)
	if role, _ := parsed.Data["role"].(string); role != "" {
		t.Fatalf("expected empty role before onboarding, got %q", role)
	}

	// Onboard as owner
	response, parsed = doJSON(t, app, http.MethodPost, "/api/loye/auth/register-role", token, map[string]interface{}{
		"role": "owner",
	})
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("register-role status = %d, want 201", response.StatusCode)
	}
	if redirect, _ := parsed.Data["redirect"].(string); redirect != "/loye/properties" {
		t.Fatalf("redirect = %q, want /loye/properties", redirect)
	}

	// Role now resolves
	_, parsed = doJSON(t, app, http.MethodGet, "/api/loye/auth/check-role", token, nil)
	if role, _ := parsed.Data["role"].(string); role != "owner" {
		t.Fatalf("expected owner after onboarding, got %q", role)
	}
}

func TestRegisterRoleRejectsRenterAndDoubleOnboarding(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUser(t, db, cfg, "Fresh", "fresh2@loye.test", "user", "")

	// Renter is invite-only
	response, _ := doJSON(t, app, http.MethodPost, "/api/loye/auth/register-role", token, map[string]interface{}{
		"role": "renter",
	})
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("renter register-role status = %d, want 400", response.StatusCode)
	}

	// First onboarding succeeds
	response, _ = doJSON(t, app, http.MethodPost, "/api/loye/auth/register-role", token, map[string]interface{}{
		"role": "manager",
	})
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("manager register-role status = %d, want 201", response.StatusCode)
	}

	// Second onboarding conflicts
	response, _ = doJSON(t, app, http.MethodPost, "/api/loye/auth/register-role", token, map[string]interface{}{
		"role": "owner",
	})
	if response.StatusCode != http.StatusConflict {
		t.Fatalf("double register-role status = %d, want 409", response.StatusCode)
	}
}

func TestInviteBindsRenterToUnit(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, ownerToken := createUser(t, db, cfg, "Owner", "owner3@loye.test", "user", "owner")

	// Owner creates a property with one studio
	response, parsed := doJSON(t, app, http.MethodPost, "/api/loye/properties", ownerToken, map[string]interface{}{
		"name":    "Résidence Cocody",
		"address": "Rue des Jardins, Abidjan",
		"unitsByType": map[string]interface{}{
			"studio": map[string]interface{}{"count": 1, "rent": 150000},
		},
	})
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("create property status = %d, want 201", response.StatusCode)
	}

	inviteCodes, _ := parsed.Data["inviteCodes"].(map[string]interface{})
	if len(inviteCodes) != 1 {
		t.Fatalf("expected 1 invite code, got %d", len(inviteCodes))
	}
	var inviteCode string
	for _, code := range inviteCodes {
		inviteCode, _ = code.(string)
	}

	// Renter consumes the invite
	renter, renterToken := createUser(t, db, cfg, "Renter", "renter3@loye.test", "user", "")
	response, parsed = doJSON(t, app, http.MethodPost, "/api/loye/invite", renterToken, map[string]interface{}{
		"code": inviteCode,
	})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("consume invite status = %d, want 200", response.StatusCode)
	}
	if role, _ := parsed.Data["role"].(string); role != "renter" {
		t.Fatalf("invite role = %q, want renter", role)
	}

	// Unit is now bound to the renter
	var unit models.Unit
	if err := db.Where("renter_id = ?", renter.ID).First(&unit).Error; err != nil {
		t.Fatalf("expected unit bound to renter: %v", err)
	}

	// The code is burned
	_, otherToken := createUser(t, db, cfg, "Other", "other@loye.test", "user", "")
	response, _ = doJSON(t, app, http.MethodPost, "/api/loye/invite", otherToken, map[string]interface{}{
		"code": inviteCode,
	})
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("reused invite status = %d, want 400", response.StatusCode)
	}
}

func TestManagerInviteAttachesManagerToProperty(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, ownerToken := createUser(t, db, cfg, "Owner", "owner4@loye.test", "user", "owner")

	_, parsed := doJSON(t, app, http.MethodPost, "/api/loye/properties", ownerToken, map[string]interface{}{
		"name":    "Immeuble Treichville",
		"address": "Avenue 16, Treichville",
		"unitsByType": map[string]interface{}{
			"studio": map[string]interface{}{"count": 1, "rent": 90000},
		},
	})
	property, _ := parsed.Data["property"].(map[string]interface{})
	propertyID, _ := property["id"].(float64)

	// Owner issues a manager invite
	response, parsed := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/loye/properties/%.0f/invite-manager", propertyID), ownerToken, nil)
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("invite-manager status = %d, want 201", response.StatusCode)
	}
	code, _ := parsed.Data["code"].(string)
	if !strings.HasPrefix(code, "MGR-") {
		t.Fatalf("manager invite code = %q, want MGR- prefix", code)
	}

	// The manager consumes it
	manager, managerToken := createUser(t, db, cfg, "Manager", "manager@loye.test", "user", "")
	response, parsed = doJSON(t, app, http.MethodPost, "/api/loye/invite", managerToken, map[string]interface{}{
		"code": code,
	})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("consume manager invite status = %d, want 200", response.StatusCode)
	}
	if role, _ := parsed.Data["role"].(string); role != "manager" {
		t.Fatalf("invite role = %q, want manager", role)
	}
	if redirect, _ := parsed.Data["redirect"].(string); redirect != "/loye/properties" {
		t.Fatalf("redirect = %q, want /loye/properties", redirect)
	}

	// The property records its manager
	var stored models.Property
	if err := db.First(&stored, uint(propertyID)).Error; err != nil {
		t.Fatalf("load property: %v", err)
	}
	if stored.ManagerID == nil || *stored.ManagerID != manager.ID {
		t.Fatalf("property manager = %v, want %d", stored.ManagerID, manager.ID)
	}

	// The manager now sees the property
	response, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/loye/properties/%.0f", propertyID), managerToken, nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("manager detail status = %d, want 200", response.StatusCode)
	}

	// Managers cannot delegate further
	response, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/loye/properties/%.0f/invite-manager", propertyID), managerToken, nil)
	if response.StatusCode != http.StatusForbidden {
		t.Fatalf("manager invite-manager status = %d, want 403", response.StatusCode)
	}
}
