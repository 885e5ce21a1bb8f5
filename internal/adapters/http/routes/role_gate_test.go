package routes

import (
	"net/http"
	"testing"
)

func TestGateRejectsMissingToken(t *testing.T) {
	app, _, _ := newTestApp(t)

	response, parsed := doJSON(t, app, http.MethodGet, "/api/loye/rent-status", "", nil)

	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", response.StatusCode)
	}
	if parsed.Redirect != "/auth" {
		t.Fatalf("redirect = %q, want /auth", parsed.Redirect)
	}
}

func TestGateSendsUnonboardedUserToOnboarding(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUser(t, db, cfg, "Fresh", "fresh@loye.test", "user", "")

	response, parsed := doJSON(t, app, http.MethodGet, "/api/loye/rent-status", token, nil)

	if response.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", response.StatusCode)
	}
	if parsed.Redirect != "/loye/onboarding" {
		t.Fatalf("redirect = %q, want /loye/onboarding", parsed.Redirect)
	}
}

func TestGateRedirectsOwnerOffRenterRoutes(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUser(t, db, cfg, "Owner", "owner@loye.test", "user", "owner")

	response, parsed := doJSON(t, app, http.MethodGet, "/api/loye/rent-status", token, nil)

	if response.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", response.StatusCode)
	}
	if parsed.Redirect != "/loye/properties" {
		t.Fatalf("redirect = %q, want /loye/properties", parsed.Redirect)
	}
}

func TestGateRedirectsRenterOffOwnerRoutes(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUser(t, db, cfg, "Renter", "renter@loye.test", "user", "renter")

	response, parsed := doJSON(t, app, http.MethodGet, "/api/loye/properties", token, nil)

	if response.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", response.StatusCode)
	}
	if parsed.Redirect != "/loye/dashboard" {
		t.Fatalf("redirect = %q, want /loye/dashboard", parsed.Redirect)
	}
}

func TestGateResolvesRoleFromStoreWhenTokenHasNone(t *testing.T) {
	app, db, cfg := newTestApp(t)
	// Profile row exists but the token carries no loye_role claim
	user, _ := createUser(t, db, cfg, "Renter", "renter2@loye.test", "user", "renter")
	bareToken := tokenFor(t, cfg, user, "")

	response, _ := doJSON(t, app, http.MethodGet, "/api/loye/dashboard", bareToken, nil)

	if response.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", response.StatusCode)
	}
}

func TestAdminRoutesRejectNonAdmins(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUser(t, db, cfg, "Owner", "owner2@loye.test", "user", "owner")

	response, _ := doJSON(t, app, http.MethodGet, "/api/loye/admin/payments", token, nil)

	if response.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", response.StatusCode)
	}
}
