package loan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIssuePreApproval_Fields verifies the issuance record carries the fixed
// status, the 7-day window and the verbatim disclaimer.
func TestIssuePreApproval_Fields(t *testing.T) {
	now := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)

	pa, err := IssuePreApproval("CUST-1001", "PL-FLEXI", 400000, 12.5, 36, now)
	require.NoError(t, err)

	assert.Equal(t, StatusPreApproved, pa.Status)
	assert.Equal(t, now.Add(7*24*time.Hour), pa.ValidUntil)
	assert.Equal(t, Disclaimer, pa.Disclaimer)
	assert.Equal(t, "CUST-1001", pa.CustomerID)
	assert.Equal(t, 400000, pa.Amount)
	assert.NotEmpty(t, pa.NextSteps)
}

// TestIssuePreApproval_UniqueReferences verifies every issuance gets its own id.
func TestIssuePreApproval_UniqueReferences(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)

	for i := 0; i < 50; i++ {
		pa, err := IssuePreApproval("CUST-1001", "PL-FLEXI", 400000, 12.5, 36, now)
		require.NoError(t, err)
		assert.Contains(t, pa.ReferenceID, "PA-")
		assert.False(t, seen[pa.ReferenceID], "reference id repeated: %s", pa.ReferenceID)
		seen[pa.ReferenceID] = true
	}
}

// TestIssuePreApproval_Validation verifies malformed issuance requests are rejected.
func TestIssuePreApproval_Validation(t *testing.T) {
	now := time.Now()

	_, err := IssuePreApproval("", "PL-FLEXI", 400000, 12.5, 36, now)
	assert.Error(t, err)

	_, err = IssuePreApproval("CUST-1001", "", 400000, 12.5, 36, now)
	assert.Error(t, err)

	_, err = IssuePreApproval("CUST-1001", "PL-FLEXI", 0, 12.5, 36, now)
	assert.Error(t, err)

	_, err = IssuePreApproval("CUST-1001", "PL-FLEXI", 400000, 12.5, 0, now)
	assert.Error(t, err)
}
