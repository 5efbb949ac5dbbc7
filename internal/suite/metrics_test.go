package suite

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gotrs-io/hrm-e2e/internal/models"
)

func TestMetrics_ObserveStep(t *testing.T) {
	m := NewMetrics()
	m.ObserveStep("login", 300*time.Millisecond, nil)
	m.ObserveStep("login", time.Second, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.stepFailures.WithLabelValues("login")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.steps), "one series per step")
}

func TestMetrics_ObserveRun(t *testing.T) {
	m := NewMetrics()
	finished := time.Unix(1700000000, 0)
	report := &models.RunReport{
		StartedAt:  finished.Add(-30 * time.Second),
		FinishedAt: finished,
		Results: []models.VerificationResult{
			{Outcome: models.FoundAndVerified},
			{Outcome: models.FoundAndVerified},
			{Outcome: models.NotFound},
		},
	}

	m.ObserveRun(report, nil)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.outcomes.WithLabelValues("found_and_verified")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.outcomes.WithLabelValues("not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.lastSuccess))
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(m.lastRun))
	assert.Equal(t, 30.0, testutil.ToFloat64(m.lastDuration))

	m.ObserveRun(&models.RunReport{FinishedAt: finished}, errors.New("boom"))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.lastSuccess))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("success")))
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.ObserveRun(&models.RunReport{FinishedAt: time.Unix(1700000000, 0)}, nil)

	path := filepath.Join(t.TempDir(), "textfile", "hrm_e2e.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `hrm_e2e_runs_total{result="success"} 1`)
	assert.Contains(t, string(data), "hrm_e2e_last_run_success 1")
}
