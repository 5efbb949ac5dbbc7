package suite

import (
	"fmt"
	"io"
	"sync"

	"github.com/gotrs-io/hrm-e2e/internal/models"
)

// Reporter prints one human-readable line per verification outcome.
type Reporter struct {
	mu  sync.Mutex
	out io.Writer
}

func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Line formats a result. storeAware selects the three-way messages; without
// a store only Found / NOT Found are distinguished.
func Line(r models.VerificationResult, storeAware bool) string {
	name := r.Record.DisplayName()
	switch {
	case r.Outcome == models.NotFound:
		return fmt.Sprintf("%s - NOT Found in UI ❌", name)
	case !storeAware:
		return fmt.Sprintf("%s - Found in UI ✅", name)
	case r.Outcome == models.FoundAndVerified:
		return fmt.Sprintf("%s - Found and Verified in DB ✅", name)
	default:
		return fmt.Sprintf("%s - Found in UI but NOT in DB ❌", name)
	}
}

// Report writes the line for r.
func (rp *Reporter) Report(r models.VerificationResult, storeAware bool) {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	fmt.Fprintln(rp.out, Line(r, storeAware))
}
