package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

const (
	// TenantIDKey is the context key for tenant ID
	TenantIDKey ctxKey = "tenant_id"
	// SkipTenantScopeKey is the context key for skipping tenant scope (super admin)
	SkipTenantScopeKey ctxKey = "skip_tenant_scope"
)

// TenantScope returns a GORM scope that filters by the tenant carried in
// the context. Every query against a tenant-owned table goes through it.
// Super admins (SkipTenantScopeKey set) see all rows; a missing tenant
// context matches nothing rather than leaking across tenants.
func TenantScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if skipScope, ok := ctx.Value(SkipTenantScopeKey).(bool); ok && skipScope {
			return db
		}

		tenantID, ok := ctx.Value(TenantIDKey).(uuid.UUID)
		if !ok || tenantID == uuid.Nil {
			return db.Where("1 = 0")
		}
		return db.Where("tenant_id = ?", tenantID)
	}
}

// WithSkipTenantScope adds skip tenant scope flag to context (for super admins)
func WithSkipTenantScope(ctx context.Context, skip bool) context.Context {
	return context.WithValue(ctx, SkipTenantScopeKey, skip)
}

// WithTenant adds tenant ID to context
func WithTenant(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, TenantIDKey, tenantID)
}

// GetTenantID extracts tenant ID from context
func GetTenantID(ctx context.Context) (uuid.UUID, bool) {
	tenantID, ok := ctx.Value(TenantIDKey).(uuid.UUID)
	return tenantID, ok
}
