package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errx "github.com/meridianbank/nova/internal/core/error"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open()
	require.NoError(t, err)
	return s
}

// TestOpen_EmbeddedDataset verifies the embedded dataset loads and is non-empty.
func TestOpen_EmbeddedDataset(t *testing.T) {
	s := openTestStore(t)
	assert.NotEmpty(t, s.Products())
}

// TestFindCustomer verifies lookup by id and the exact not-found message.
func TestFindCustomer(t *testing.T) {
	s := openTestStore(t)

	c, err := s.FindCustomer("CUST-1001")
	require.NoError(t, err)
	assert.Equal(t, "Ananya Iyer", c.FullName)
	assert.True(t, c.Verified)

	_, err = s.FindCustomer("CUST-9999")
	require.Error(t, err)
	assert.Equal(t, "Customer does not exist", errx.SafeMessage(err))
	assert.Equal(t, errx.KindNotFound, errx.KindOf(err))
}

// TestFindCustomerByIdentifier covers all three identifier channels.
func TestFindCustomerByIdentifier(t *testing.T) {
	s := openTestStore(t)

	c, err := s.FindCustomerByIdentifier(IdentifierPAN, "ABCPI1234K")
	require.NoError(t, err)
	assert.Equal(t, "CUST-1001", c.CustomerID)

	c, err = s.FindCustomerByIdentifier(IdentifierAadhar, "998877665544")
	require.NoError(t, err)
	assert.Equal(t, "CUST-1002", c.CustomerID)

	c, err = s.FindCustomerByIdentifier(IdentifierPhone, "+918765432109")
	require.NoError(t, err)
	assert.Equal(t, "CUST-1003", c.CustomerID)
}

// TestFindCustomerByIdentifier_CaseAndWhitespace verifies tolerant value matching.
func TestFindCustomerByIdentifier_CaseAndWhitespace(t *testing.T) {
	s := openTestStore(t)

	c, err := s.FindCustomerByIdentifier(IdentifierPAN, "  abcpi1234k ")
	require.NoError(t, err)
	assert.Equal(t, "CUST-1001", c.CustomerID)
}

// TestFindCustomerByIdentifier_Unknown verifies the miss path.
func TestFindCustomerByIdentifier_Unknown(t *testing.T) {
	s := openTestStore(t)

	_, err := s.FindCustomerByIdentifier(IdentifierPAN, "ZZZZZ0000Z")
	require.Error(t, err)
	assert.Equal(t, "Customer does not exist", errx.SafeMessage(err))
}

// TestParseIdentifierType verifies normalization and the closed set.
func TestParseIdentifierType(t *testing.T) {
	for raw, want := range map[string]IdentifierType{
		"PAN":     IdentifierPAN,
		"pan":     IdentifierPAN,
		" Aadhar": IdentifierAadhar,
		"phone ":  IdentifierPhone,
	} {
		got, err := ParseIdentifierType(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}

	_, err := ParseIdentifierType("passport")
	require.Error(t, err)
	assert.Equal(t, "invalid identifier type", errx.SafeMessage(err))
}

// TestOpenFrom_BadDataset verifies malformed or empty datasets fail Open.
func TestOpenFrom_BadDataset(t *testing.T) {
	_, err := openFrom([]byte("{not json"))
	assert.Error(t, err)

	_, err = openFrom([]byte(`{"customers":[],"products":[]}`))
	assert.Error(t, err)
}
