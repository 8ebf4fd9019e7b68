package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/decoraworks/atelier-api/internal/domain/entity"
	"github.com/decoraworks/atelier-api/internal/domain/repository"
)

// stubTenantRepo covers the two methods the middleware touches; the
// embedded interface panics on anything else.
type stubTenantRepo struct {
	repository.TenantRepository
	tenant    *entity.Tenant
	isMember  bool
	memberErr error
}

func (s *stubTenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error) {
	return s.tenant, nil
}

func (s *stubTenantRepo) IsMember(ctx context.Context, tenantID, userID uuid.UUID) (bool, error) {
	return s.isMember, s.memberErr
}

func newTenantTestRouter(repo repository.TenantRepository, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
	})
	router.Use(TenantMiddleware(repo))
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func performTenantRequest(router *gin.Engine, tenantID uuid.UUID) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Tenant-ID", tenantID.String())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestTenantMiddleware_MemberPassesThrough(t *testing.T) {
	tenantID := uuid.New()
	repo := &stubTenantRepo{
		tenant:   &entity.Tenant{ID: tenantID},
		isMember: true,
	}

	rec := performTenantRequest(newTenantTestRouter(repo, uuid.New()), tenantID)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTenantMiddleware_NonMemberForbidden(t *testing.T) {
	tenantID := uuid.New()
	repo := &stubTenantRepo{
		tenant:   &entity.Tenant{ID: tenantID},
		isMember: false,
	}

	rec := performTenantRequest(newTenantTestRouter(repo, uuid.New()), tenantID)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTenantMiddleware_MembershipCheckFailureIsInternal(t *testing.T) {
	tenantID := uuid.New()
	repo := &stubTenantRepo{
		tenant:    &entity.Tenant{ID: tenantID},
		memberErr: assert.AnError,
	}

	// A broken DB must not read as a permission verdict.
	rec := performTenantRequest(newTenantTestRouter(repo, uuid.New()), tenantID)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
