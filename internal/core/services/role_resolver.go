package services

import (
	"context"
	"log"
	"sync"

	"loye-backend/internal/adapters/persistence/repositories"
	"loye-backend/internal/core/domain"
)

// RoleState is the state of a Loye role resolution
type RoleState int

const (
	RoleUnknown RoleState = iota
	RoleResolving
	RoleResolved
	RoleAbsent
)

// RoleSource records which step of the priority chain resolved the role
type RoleSource string

const (
	SourceCache RoleSource = "cache"
	SourceToken RoleSource = "token"
	SourceStore RoleSource = "store"
	SourceNone  RoleSource = "none"
)

// Resolution is the outcome of a role resolution
type Resolution struct {
	State  RoleState
	Role   domain.LoyeRole
	Source RoleSource
}

// RoleCache is the in-process session role cache. A hit makes the gate
// synchronous; entries live until logout, role registration or document
// resubmission evicts them. The store stays authoritative, so a stale
// entry is possible until eviction.
type RoleCache struct {
	mu    sync.RWMutex
	roles map[uint]domain.LoyeRole
}

// NewRoleCache creates an empty role cache
func NewRoleCache() *RoleCache {
	return &RoleCache{roles: make(map[uint]domain.LoyeRole)}
}

// Get returns the cached role for a user, if any
func (c *RoleCache) Get(userID uint) (domain.LoyeRole, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	role, ok := c.roles[userID]
	return role, ok
}

// Set caches a user's role
func (c *RoleCache) Set(userID uint, role domain.LoyeRole) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roles[userID] = role
}

// Evict removes a user's cached role
func (c *RoleCache) Evict(userID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.roles, userID)
}

// RoleResolver resolves the Loye role for a session following the strict
// priority chain: session cache, then the role embedded in the access
// token, then the loye_profiles store. Resolutions from the later steps
// are written back to the cache so subsequent checks short-circuit.
type RoleResolver struct {
	cache       *RoleCache
	profileRepo repositories.LoyeProfileRepository
}

// NewRoleResolver creates a new role resolver
func NewRoleResolver(cache *RoleCache, profileRepo repositories.LoyeProfileRepository) *RoleResolver {
	return &RoleResolver{
		cache:       cache,
		profileRepo: profileRepo,
	}
}

// Resolve runs the resolution state machine for one request. tokenRole is
// the loye_role claim carried by the access token, empty when absent.
//
// A store failure resolves to Absent, the same as "not onboarded". That
// mirrors the shipped client behavior; callers route Absent to onboarding
// rather than surfacing an error.
func (r *RoleResolver) Resolve(ctx context.Context, userID uint, tokenRole string) Resolution {
	res := Resolution{State: RoleResolving, Source: SourceNone}

	// 1. Session cache
	if role, ok := r.cache.Get(userID); ok {
		res.State = RoleResolved
		res.Role = role
		res.Source = SourceCache
		return res
	}

	// 2. Role embedded in the token; persist it for the next check
	if domain.ValidLoyeRole(tokenRole) {
		role := domain.LoyeRole(tokenRole)
		r.cache.Set(userID, role)
		res.State = RoleResolved
		res.Role = role
		res.Source = SourceToken
		return res
	}

	// 3. Store lookup
	profile, err := r.profileRepo.GetByUserID(ctx, userID)
	if err != nil || profile == nil || !domain.ValidLoyeRole(profile.Role) {
		if err != nil {
			log.Printf("⚠️ Role lookup failed for user %d, treating as not onboarded: %v", userID, err)
		}
		res.State = RoleAbsent
		return res
	}

	role := domain.LoyeRole(profile.Role)
	r.cache.Set(userID, role)
	res.State = RoleResolved
	res.Role = role
	res.Source = SourceStore
	return res
}

// Put records a freshly registered role for the session
func (r *RoleResolver) Put(userID uint, role domain.LoyeRole) {
	r.cache.Set(userID, role)
}

// Evict clears the session's cached role (logout, resubmission)
func (r *RoleResolver) Evict(userID uint) {
	r.cache.Evict(userID)
}

// RedirectForRole returns the SPA view a user holding the role should be
// sent to when they request a view their role does not allow.
func RedirectForRole(role domain.LoyeRole) string {
	switch role {
	case domain.LoyeRoleRenter:
		return "/loye/dashboard"
	case domain.LoyeRoleOwner, domain.LoyeRoleManager:
		return "/loye/properties"
	default:
		return "/not-authorized"
	}
}
