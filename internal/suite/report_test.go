package suite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gotrs-io/hrm-e2e/internal/models"
)

func TestWriteReadReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "last-run.yaml")
	started := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	rec := models.EmployeeRecord{FirstName: "Admin111", LastName: "Test"}
	report := &models.RunReport{
		RunID:      "run-1",
		StartedAt:  started,
		FinishedAt: started.Add(42 * time.Second),
		StoreAware: true,
		Created:    []models.EmployeeRecord{rec},
		Results:    []models.VerificationResult{{Record: rec, Outcome: models.FoundButUnrecorded}},
		Error:      "logout: boom",
	}

	require.NoError(t, WriteReport(path, report))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "outcome: found_but_unrecorded")
	assert.NoFileExists(t, path+".tmp")

	got, err := ReadReport(path)
	require.NoError(t, err)
	assert.Equal(t, report.RunID, got.RunID)
	assert.True(t, report.StartedAt.Equal(got.StartedAt))
	assert.Equal(t, 42*time.Second, got.Duration())
	assert.Equal(t, report.Created, got.Created)
	assert.Equal(t, report.Results, got.Results)
	assert.Equal(t, report.Error, got.Error)
}

func TestReadReport_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadReport(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("results:\n  - outcome: sideways\n"), 0o644))
	_, err = ReadReport(bad)
	assert.Error(t, err)
}
