package browser

import (
	"context"
	"fmt"
)

// Launch starts a session with the backend named by opts.Driver.
func Launch(ctx context.Context, opts Options, logf func(string, ...interface{})) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	switch opts.Driver {
	case DriverPlaywright:
		return NewPlaywrightSession(opts)
	case DriverChromedp:
		return NewChromedpSession(opts, logf)
	default:
		return nil, fmt.Errorf("unknown browser driver %q", opts.Driver)
	}
}
