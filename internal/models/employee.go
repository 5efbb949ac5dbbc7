package models

import (
	"fmt"
	"time"
)

// EmployeeRecord represents one employee driven through the PIM workflow.
// The (FirstName, LastName) pair is the uniqueness key, compared exactly.
type EmployeeRecord struct {
	FirstName string `json:"first_name" yaml:"first_name" mapstructure:"first_name" db:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name" mapstructure:"last_name" db:"last_name"`
}

// DisplayName returns the "first last" text the employee list renders.
func (e EmployeeRecord) DisplayName() string {
	return e.FirstName + " " + e.LastName
}

// EmployeeRow is a persisted RecordStore row.
type EmployeeRow struct {
	ID        int64  `db:"id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
}

// Record returns the row as an EmployeeRecord.
func (r EmployeeRow) Record() EmployeeRecord {
	return EmployeeRecord{FirstName: r.FirstName, LastName: r.LastName}
}

// Outcome is the verification result for one employee record
type Outcome int

const (
	// NotFound means no listing row contained the display name.
	NotFound Outcome = iota
	// FoundButUnrecorded means the row was listed but the record store
	// does not know the record, or no store was attached.
	FoundButUnrecorded
	// FoundAndVerified means the row was listed and the store knows it.
	FoundAndVerified
)

func (o Outcome) String() string {
	switch o {
	case FoundAndVerified:
		return "found_and_verified"
	case FoundButUnrecorded:
		return "found_but_unrecorded"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Found reports whether the record was listed in the UI.
func (o Outcome) Found() bool {
	return o == FoundAndVerified || o == FoundButUnrecorded
}

// MarshalText lets reports and metrics labels use the string form.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText parses the string form written by MarshalText.
func (o *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "found_and_verified":
		*o = FoundAndVerified
	case "found_but_unrecorded":
		*o = FoundButUnrecorded
	case "not_found":
		*o = NotFound
	default:
		return fmt.Errorf("unknown outcome %q", text)
	}
	return nil
}

// VerificationResult pairs a record with its outcome.
type VerificationResult struct {
	Record  EmployeeRecord `json:"record" yaml:"record"`
	Outcome Outcome        `json:"outcome" yaml:"outcome"`
}

// RunReport summarises one orchestration run.
type RunReport struct {
	RunID      string               `json:"run_id" yaml:"run_id"`
	StartedAt  time.Time            `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time            `json:"finished_at" yaml:"finished_at"`
	StoreAware bool                 `json:"store_aware" yaml:"store_aware"`
	Created    []EmployeeRecord     `json:"created" yaml:"created"`
	Results    []VerificationResult `json:"results" yaml:"results"`
	Error      string               `json:"error,omitempty" yaml:"error,omitempty"`
}

// Duration returns how long the run took.
func (r *RunReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Count returns how many results carry the given outcome.
func (r *RunReport) Count(o Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}
