package services

import (
	"context"
	"errors"
	"testing"

	"loye-backend/internal/adapters/persistence/models"
	"loye-backend/internal/core/domain"

	"gorm.io/gorm"
)

// fakeProfileRepo is an in-memory LoyeProfileRepository for resolver tests
type fakeProfileRepo struct {
	profiles map[uint]*models.LoyeProfile
	err      error
	lookups  int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uint]*models.LoyeProfile)}
}

func (f *fakeProfileRepo) Create(_ context.Context, profile *models.LoyeProfile) error {
	f.profiles[profile.UserID] = profile
	return nil
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID uint) (*models.LoyeProfile, error) {
	f.lookups++
	if f.err != nil {
		return nil, f.err
	}
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return profile, nil
}

func (f *fakeProfileRepo) Update(_ context.Context, profile *models.LoyeProfile) error {
	f.profiles[profile.UserID] = profile
	return nil
}

func TestResolvePrefersCache(t *testing.T) {
	repo := newFakeProfileRepo()
	resolver := NewRoleResolver(NewRoleCache(), repo)
	resolver.Put(1, domain.LoyeRoleOwner)

	res := resolver.Resolve(context.Background(), 1, "renter")

	if res.State != RoleResolved || res.Role != domain.LoyeRoleOwner {
		t.Fatalf("expected owner from cache, got %+v", res)
	}
	if res.Source != SourceCache {
		t.Fatalf("source = %s, want cache", res.Source)
	}
	if repo.lookups != 0 {
		t.Fatalf("store consulted %d times despite cache hit", repo.lookups)
	}
}

func TestResolveFallsBackToTokenAndWritesBack(t *testing.T) {
	repo := newFakeProfileRepo()
	resolver := NewRoleResolver(NewRoleCache(), repo)

	res := resolver.Resolve(context.Background(), 2, "renter")

	if res.State != RoleResolved || res.Role != domain.LoyeRoleRenter {
		t.Fatalf("expected renter from token, got %+v", res)
	}
	if res.Source != SourceToken {
		t.Fatalf("source = %s, want token", res.Source)
	}

	// Second resolution must come from cache
	res = resolver.Resolve(context.Background(), 2, "")
	if res.Source != SourceCache {
		t.Fatalf("second resolution source = %s, want cache", res.Source)
	}
	if repo.lookups != 0 {
		t.Fatalf("store consulted %d times", repo.lookups)
	}
}

func TestResolveFallsBackToStore(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.profiles[3] = &models.LoyeProfile{UserID: 3, Role: "manager", Onboarded: true}
	resolver := NewRoleResolver(NewRoleCache(), repo)

	res := resolver.Resolve(context.Background(), 3, "")

	if res.State != RoleResolved || res.Role != domain.LoyeRoleManager {
		t.Fatalf("expected manager from store, got %+v", res)
	}
	if res.Source != SourceStore {
		t.Fatalf("source = %s, want store", res.Source)
	}

	// Write-back: second resolution skips the store
	resolver.Resolve(context.Background(), 3, "")
	if repo.lookups != 1 {
		t.Fatalf("store consulted %d times, want 1", repo.lookups)
	}
}

func TestResolveAbsentWhenNotOnboarded(t *testing.T) {
	resolver := NewRoleResolver(NewRoleCache(), newFakeProfileRepo())

	res := resolver.Resolve(context.Background(), 4, "")

	if res.State != RoleAbsent {
		t.Fatalf("expected absent, got %+v", res)
	}
}

// A store failure resolves to Absent, indistinguishable from a user who
// never onboarded. The gate sends both to onboarding.
func TestResolveStoreFailureResolvesAbsent(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.err = errors.New("connection refused")
	resolver := NewRoleResolver(NewRoleCache(), repo)

	res := resolver.Resolve(context.Background(), 5, "")

	if res.State != RoleAbsent {
		t.Fatalf("expected absent on store failure, got %+v", res)
	}
}

func TestResolveIgnoresInvalidTokenRole(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.profiles[6] = &models.LoyeProfile{UserID: 6, Role: "owner", Onboarded: true}
	resolver := NewRoleResolver(NewRoleCache(), repo)

	res := resolver.Resolve(context.Background(), 6, "superuser")

	if res.Role != domain.LoyeRoleOwner || res.Source != SourceStore {
		t.Fatalf("expected store resolution past invalid token role, got %+v", res)
	}
}

func TestEvictForcesStoreLookup(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.profiles[7] = &models.LoyeProfile{UserID: 7, Role: "renter", Onboarded: true}
	resolver := NewRoleResolver(NewRoleCache(), repo)

	resolver.Resolve(context.Background(), 7, "")
	resolver.Evict(7)
	resolver.Resolve(context.Background(), 7, "")

	if repo.lookups != 2 {
		t.Fatalf("store consulted %d times, want 2", repo.lookups)
	}
}

func TestRedirectForRole(t *testing.T) {
	tests := []struct {
		role domain.LoyeRole
		want string
	}{
		{domain.LoyeRoleRenter, "/loye/dashboard"},
		{domain.LoyeRoleOwner, "/loye/properties"},
		{domain.LoyeRoleManager, "/loye/properties"},
		{domain.LoyeRole(""), "/not-authorized"},
	}

	for _, tt := range tests {
		if got := RedirectForRole(tt.role); got != tt.want {
			t.Fatalf("RedirectForRole(%q) = %q, want %q", tt.role, got, tt.want)
		}
	}
}
