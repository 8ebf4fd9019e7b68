package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLeadStatus(t *testing.T) {
	status, err := ParseLeadStatus("CONVERTED")
	require.NoError(t, err)
	assert.Equal(t, LeadStatusConverted, status)

	status, err = ParseLeadStatus("PROPOSAL_SENT")
	require.NoError(t, err)
	assert.Equal(t, LeadStatusProposalSent, status)

	_, err = ParseLeadStatus("WON")
	assert.Error(t, err)
}

func TestLeadStatusIsValid(t *testing.T) {
	assert.True(t, LeadStatusNew.IsValid())
	assert.True(t, LeadStatusArchived.IsValid())
	assert.False(t, LeadStatus(-1).IsValid())
	assert.False(t, LeadStatus(9).IsValid())
}

func TestLeadStatusJSON(t *testing.T) {
	data, err := json.Marshal(LeadStatusNegotiation)
	require.NoError(t, err)
	assert.Equal(t, `"NEGOTIATION"`, string(data))

	var status LeadStatus
	require.NoError(t, json.Unmarshal([]byte(`"LOST"`), &status))
	assert.Equal(t, LeadStatusLost, status)

	// Older clients send the numeric form.
	require.NoError(t, json.Unmarshal([]byte(`5`), &status))
	assert.Equal(t, LeadStatusConverted, status)
}

func TestInvoiceStatusLifecycle(t *testing.T) {
	status, err := ParseInvoiceStatus("PARTIALLY_PAID")
	require.NoError(t, err)
	assert.Equal(t, InvoiceStatusPartiallyPaid, status)

	data, err := json.Marshal(InvoiceStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, `"CANCELLED"`, string(data))
}

func TestTaxTypeAddsVATOnTop(t *testing.T) {
	assert.True(t, TaxTypeExclusive.AddsVATOnTop())
	assert.False(t, TaxTypeInclusive.AddsVATOnTop())
}
