package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/decoraworks/atelier-api/internal/domain/entity"
	"github.com/decoraworks/atelier-api/internal/domain/enum"
)

// newConversionTestDB opens an in-memory database so Record's
// transaction, contact lookup and conflict handling run for real.
func newConversionTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A second pooled connection would get its own empty :memory: DB
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.Lead{},
		&entity.Contact{},
		&entity.LeadConversion{},
	))
	return db
}

func createTestLead(t *testing.T, db *gorm.DB, tenantID uuid.UUID, name, email string) *entity.Lead {
	t.Helper()
	lead := &entity.Lead{
		TenantID: tenantID,
		Name:     name,
		Email:    email,
		Status:   enum.LeadStatusConverted,
	}
	require.NoError(t, db.Create(lead).Error)
	return lead
}

func TestRecord_CreatesContactWhenNoneMatches(t *testing.T) {
	db := newConversionTestDB(t)
	repo := NewLeadConversionRepository(db)

	tenantID := uuid.New()
	ctx := WithTenant(context.Background(), tenantID)
	lead := createTestLead(t, db, tenantID, "Marta Ruiz", "marta@example.com")

	conversion, err := repo.Record(ctx, lead)
	require.NoError(t, err)
	assert.Equal(t, lead.ID, conversion.LeadID)
	assert.Equal(t, tenantID, conversion.TenantID)

	var contact entity.Contact
	require.NoError(t, db.First(&contact, "id = ?", conversion.ContactID).Error)
	assert.Equal(t, "Marta Ruiz", contact.Name)
	assert.Equal(t, "marta@example.com", contact.Email)
	assert.Equal(t, tenantID, contact.TenantID)
}

func TestRecord_ReusesContactWithSameEmail(t *testing.T) {
	db := newConversionTestDB(t)
	repo := NewLeadConversionRepository(db)

	tenantID := uuid.New()
	ctx := WithTenant(context.Background(), tenantID)

	first := createTestLead(t, db, tenantID, "Marta Ruiz", "marta@example.com")
	second := createTestLead(t, db, tenantID, "Marta R.", "marta@example.com")

	firstConversion, err := repo.Record(ctx, first)
	require.NoError(t, err)
	secondConversion, err := repo.Record(ctx, second)
	require.NoError(t, err)

	assert.Equal(t, firstConversion.ContactID, secondConversion.ContactID)

	var contactCount int64
	require.NoError(t, db.Model(&entity.Contact{}).Count(&contactCount).Error)
	assert.EqualValues(t, 1, contactCount, "two won leads with one email share one contact")
}

func TestRecord_DoesNotReuseContactFromAnotherTenant(t *testing.T) {
	db := newConversionTestDB(t)
	repo := NewLeadConversionRepository(db)

	otherTenant := uuid.New()
	require.NoError(t, db.Create(&entity.Contact{
		TenantID: otherTenant,
		Name:     "Marta Ruiz",
		Email:    "marta@example.com",
	}).Error)

	tenantID := uuid.New()
	ctx := WithTenant(context.Background(), tenantID)
	lead := createTestLead(t, db, tenantID, "Marta Ruiz", "marta@example.com")

	conversion, err := repo.Record(ctx, lead)
	require.NoError(t, err)

	var contact entity.Contact
	require.NoError(t, db.First(&contact, "id = ?", conversion.ContactID).Error)
	assert.Equal(t, tenantID, contact.TenantID)

	var contactCount int64
	require.NoError(t, db.Model(&entity.Contact{}).Count(&contactCount).Error)
	assert.EqualValues(t, 2, contactCount)
}

func TestRecord_DuplicateForSameLeadIsNoOp(t *testing.T) {
	db := newConversionTestDB(t)
	repo := NewLeadConversionRepository(db)

	tenantID := uuid.New()
	ctx := WithTenant(context.Background(), tenantID)
	lead := createTestLead(t, db, tenantID, "Marta Ruiz", "marta@example.com")

	first, err := repo.Record(ctx, lead)
	require.NoError(t, err)
	second, err := repo.Record(ctx, lead)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "replay hands back the existing record")
	assert.Equal(t, first.ConvertedAt.UTC(), second.ConvertedAt.UTC())

	var conversionCount int64
	require.NoError(t, db.Model(&entity.LeadConversion{}).Count(&conversionCount).Error)
	assert.EqualValues(t, 1, conversionCount)

	var contactCount int64
	require.NoError(t, db.Model(&entity.Contact{}).Count(&contactCount).Error)
	assert.EqualValues(t, 1, contactCount)
}
