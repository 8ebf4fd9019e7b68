package middleware

import (
	"errors"
	"strings"

	"github.com/decoraworks/atelier-api/internal/domain/entity"
	"github.com/decoraworks/atelier-api/internal/domain/repository"
	infraRepo "github.com/decoraworks/atelier-api/internal/infrastructure/repository"
	"github.com/decoraworks/atelier-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExtractTenantFromHost extracts tenant slug from subdomain
// e.g., "acme.atelierworks.app" -> "acme"
func ExtractTenantFromHost(host string) (string, error) {
	// Remove port if present
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}

	parts := strings.Split(host, ".")
	if len(parts) < 3 {
		return "", errors.New("invalid subdomain")
	}
	return parts[0], nil
}

// TenantMiddleware resolves the active tenant from the subdomain or the
// X-Tenant-ID header and adds it to the request context. Super admins
// without an explicit tenant get an unscoped context.
func TenantMiddleware(tenantRepo repository.TenantRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant, err := resolveTenant(c, tenantRepo)
		if err != nil {
			response.NotFound(c, "Tenant not found")
			c.Abort()
			return
		}

		if tenant == nil {
			// No tenant selected. Super admins operate unscoped; everyone
			// else keeps the fail-safe scope that matches nothing.
			c.Set("tenant_id", uuid.Nil)
			if isSuperAdmin(c) {
				ctx := infraRepo.WithSkipTenantScope(c.Request.Context(), true)
				c.Request = c.Request.WithContext(ctx)
			}
			c.Next()
			return
		}

		// Validate user has access to this tenant (if authenticated)
		userIDVal, exists := c.Get("user_id")
		if exists && !isSuperAdmin(c) {
			userID, ok := userIDVal.(uuid.UUID)
			if ok && userID != uuid.Nil {
				isMember, err := tenantRepo.IsMember(c.Request.Context(), tenant.ID, userID)
				if err != nil {
					// A DB failure is not a membership verdict
					response.InternalServerError(c, "Failed to verify tenant access")
					c.Abort()
					return
				}
				if !isMember {
					response.Forbidden(c, "Access denied to this tenant")
					c.Abort()
					return
				}
			}
		}

		// Set tenant ID in Gin context (for middleware/handlers)
		c.Set("tenant_id", tenant.ID)
		c.Set("tenant", tenant)

		// Also set tenant ID in request context (for services/repositories)
		ctx := infraRepo.WithTenant(c.Request.Context(), tenant.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func resolveTenant(c *gin.Context, tenantRepo repository.TenantRepository) (*entity.Tenant, error) {
	if slug, err := ExtractTenantFromHost(c.Request.Host); err == nil {
		tenant, err := tenantRepo.GetBySlug(c.Request.Context(), slug)
		if err != nil || tenant == nil {
			return nil, errors.New("unknown tenant")
		}
		return tenant, nil
	}

	if header := c.GetHeader("X-Tenant-ID"); header != "" {
		tenantID, err := uuid.Parse(header)
		if err != nil {
			return nil, errors.New("invalid tenant id")
		}
		tenant, err := tenantRepo.GetByID(c.Request.Context(), tenantID)
		if err != nil || tenant == nil {
			return nil, errors.New("unknown tenant")
		}
		return tenant, nil
	}

	return nil, nil
}

func isSuperAdmin(c *gin.Context) bool {
	rolesVal, exists := c.Get("user_roles")
	if !exists {
		return false
	}
	roles, ok := rolesVal.([]string)
	if !ok {
		return false
	}
	for _, role := range roles {
		if role == "super-admin" {
			return true
		}
	}
	return false
}

// RequireTenant ensures a valid tenant context exists
func RequireTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID, exists := c.Get("tenant_id")
		if !exists {
			response.BadRequest(c, "Tenant context required")
			c.Abort()
			return
		}

		id, ok := tenantID.(uuid.UUID)
		if !ok || id == uuid.Nil {
			response.BadRequest(c, "Invalid tenant context")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetTenantID retrieves the tenant ID from gin context
func GetTenantID(c *gin.Context) uuid.UUID {
	tenantID, exists := c.Get("tenant_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := tenantID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
