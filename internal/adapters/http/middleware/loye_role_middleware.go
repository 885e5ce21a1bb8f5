package middleware

import (
	"loye-backend/internal/core/domain"
	"loye-backend/internal/core/services"
	"loye-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoyeRoleMiddleware gates Loye routes on the caller's module role. It
// runs after AuthMiddleware and resolves the role through the priority
// chain (session cache, token claim, store). Responses carry the view
// the client should navigate to:
//
//	no role at all      -> 403, /loye/onboarding
//	wrong role          -> 403, the holder's own home view
func LoyeRoleMiddleware(resolver *services.RoleResolver, allowedRoles ...domain.LoyeRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userID").(uint)
		if !ok {
			return response.UnauthorizedRedirect(c, "Unauthorized", "/auth")
		}

		tokenRole, _ := c.Locals("loyeRole").(string)
		res := resolver.Resolve(c.UserContext(), userID, tokenRole)

		if res.State != services.RoleResolved {
			return response.ForbiddenRedirect(c, "Loye onboarding required", "/loye/onboarding")
		}

		for _, allowed := range allowedRoles {
			if res.Role == allowed {
				c.Locals("resolvedLoyeRole", string(res.Role))
				return c.Next()
			}
		}

		return response.ForbiddenRedirect(c, "Role not allowed", services.RedirectForRole(res.Role))
	}
}

// AnyLoyeRole gates a route on having any Loye role at all
func AnyLoyeRole(resolver *services.RoleResolver) fiber.Handler {
	return LoyeRoleMiddleware(resolver,
		domain.LoyeRoleRenter,
		domain.LoyeRoleOwner,
		domain.LoyeRoleManager,
	)
}

// RenterOnly gates a route on the renter role
func RenterOnly(resolver *services.RoleResolver) fiber.Handler {
	return LoyeRoleMiddleware(resolver, domain.LoyeRoleRenter)
}

// OwnerOrManager gates a route on the owner or manager role
func OwnerOrManager(resolver *services.RoleResolver) fiber.Handler {
	return LoyeRoleMiddleware(resolver, domain.LoyeRoleOwner, domain.LoyeRoleManager)
}
