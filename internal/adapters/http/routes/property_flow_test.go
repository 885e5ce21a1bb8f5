package routes

import (
	"fmt"
	"net/http"
	"testing"

	"loye-backend/internal/adapters/persistence/models"
)

func TestPropertyListAndDetail(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, ownerToken := createUser(t, db, cfg, "Owner", "owner@prop.test", "user", "owner")
	_, otherToken := createUser(t, db, cfg, "Other", "other@prop.test", "user", "owner")

	response, parsed := doJSON(t, app, http.MethodPost, "/api/loye/properties", ownerToken, map[string]interface{}{
		"name":    "Immeuble Riviera",
		"address": "Riviera Palmeraie, Abidjan",
		"unitsByType": map[string]interface{}{
			"studio":    map[string]interface{}{"count": 2, "rent": 120000},
			"2chambres": map[string]interface{}{"count": 1, "rent": 200000},
		},
	})
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201 (%s)", response.StatusCode, parsed.Message)
	}
	property, _ := parsed.Data["property"].(map[string]interface{})
	propertyID, _ := property["id"].(float64)
	if propertyID == 0 {
		t.Fatal("create response missing property id")
	}

	// The list shows the new property with its unit count
	_, parsed = doJSON(t, app, http.MethodGet, "/api/loye/properties", ownerToken, nil)
	items, _ := parsed.Data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("list length = %d, want 1", len(items))
	}
	row, _ := items[0].(map[string]interface{})
	if count, _ := row["unitCount"].(float64); count != 3 {
		t.Fatalf("unitCount = %v, want 3", row["unitCount"])
	}

	// Detail works for the owner
	response, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/loye/properties/%.0f", propertyID), ownerToken, nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("detail status = %d, want 200", response.StatusCode)
	}

	// Another owner is locked out
	response, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/loye/properties/%.0f", propertyID), otherToken, nil)
	if response.StatusCode != http.StatusForbidden {
		t.Fatalf("foreign detail status = %d, want 403", response.StatusCode)
	}
}

func TestCreatePropertyRejectsUnknownUnitType(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, ownerToken := createUser(t, db, cfg, "Owner", "owner2@prop.test", "user", "owner")

	response, _ := doJSON(t, app, http.MethodPost, "/api/loye/properties", ownerToken, map[string]interface{}{
		"name":    "Immeuble",
		"address": "Abidjan",
		"unitsByType": map[string]interface{}{
			"penthouse": map[string]interface{}{"count": 1, "rent": 500000},
		},
	})
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", response.StatusCode)
	}
}

func TestUpdateUnitValidatesDueDate(t *testing.T) {
	app, db, cfg := newTestApp(t)
	owner, ownerToken := createUser(t, db, cfg, "Owner", "owner3@prop.test", "user", "owner")

	property := &models.Property{Name: "Villa", Address: "Cocody", OwnerID: owner.ID}
	if err := db.Create(property).Error; err != nil {
		t.Fatalf("create property: %v", err)
	}
	unit := &models.Unit{PropertyID: property.ID, Code: "LY-UPD01", Type: "studio", RentAmount: 100000, RentDueDate: 10}
	if err := db.Create(unit).Error; err != nil {
		t.Fatalf("create unit: %v", err)
	}

	// Due day past 28 is refused
	response, _ := doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/loye/units/%d", unit.ID), ownerToken, map[string]interface{}{
		"rentDueDate": 31,
	})
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("due date 31 status = %d, want 400", response.StatusCode)
	}

	// A valid patch applies
	response, parsed := doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/loye/units/%d", unit.ID), ownerToken, map[string]interface{}{
		"rentDueDate": 5,
		"rentAmount":  110000,
	})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("patch status = %d, want 200 (%s)", response.StatusCode, parsed.Message)
	}
	if due, _ := parsed.Data["rentDueDate"].(float64); due != 5 {
		t.Fatalf("rentDueDate = %v, want 5", parsed.Data["rentDueDate"])
	}
}

func TestCreateRenterOnOccupiedUnit(t *testing.T) {
	app, db, cfg := newTestApp(t)
	owner, ownerToken := createUser(t, db, cfg, "Owner", "owner4@prop.test", "user", "owner")
	tenant, _ := createUser(t, db, cfg, "Tenant", "tenant@prop.test", "user", "renter")

	property := &models.Property{Name: "Villa", Address: "Cocody", OwnerID: owner.ID}
	if err := db.Create(property).Error; err != nil {
		t.Fatalf("create property: %v", err)
	}
	unit := &models.Unit{PropertyID: property.ID, Code: "LY-OCC01", Type: "studio", RentAmount: 100000, RentDueDate: 10, RenterID: &tenant.ID}
	if err := db.Create(unit).Error; err != nil {
		t.Fatalf("create unit: %v", err)
	}

	response, _ := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/loye/units/%d/create-renter", unit.ID), ownerToken, map[string]interface{}{
		"name":  "New Renter",
		"email": "new@prop.test",
		"phone": "0759917862",
	})
	if response.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409", response.StatusCode)
	}
}
