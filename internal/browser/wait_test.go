package browser_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gotrs-io/hrm-e2e/internal/browser"
	"github.com/gotrs-io/hrm-e2e/internal/browser/browsertest"
)

func TestPoll(t *testing.T) {
	rows := browser.XPath("//div[@role='rowgroup']/div")

	t.Run("holds immediately", func(t *testing.T) {
		s := browsertest.NewFakeSession().Add(rows, "Admin111 Test")
		err := browser.Poll(context.Background(), s, browser.PresenceOf(rows), time.Second, time.Millisecond)
		assert.NoError(t, err)
	})

	t.Run("holds after a few polls", func(t *testing.T) {
		s := browsertest.NewFakeSession()
		calls := 0
		cond := func(ctx context.Context, sess browser.Session) (bool, error) {
			calls++
			if calls == 3 {
				s.Add(rows, "late row")
			}
			return browser.PresenceOf(rows)(ctx, sess)
		}
		err := browser.Poll(context.Background(), s, cond, time.Second, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("times out", func(t *testing.T) {
		s := browsertest.NewFakeSession()
		err := browser.Poll(context.Background(), s, browser.PresenceOf(rows), 20*time.Millisecond, time.Millisecond)
		assert.ErrorIs(t, err, browser.ErrTimeoutExceeded)
	})

	t.Run("condition error propagates", func(t *testing.T) {
		boom := errors.New("boom")
		cond := func(context.Context, browser.Session) (bool, error) { return false, boom }
		err := browser.Poll(context.Background(), browsertest.NewFakeSession(), cond, time.Second, time.Millisecond)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := browser.Poll(ctx, browsertest.NewFakeSession(), browser.PresenceOf(rows), time.Second, time.Millisecond)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestTextContains(t *testing.T) {
	toast := browser.Class("oxd-toast")
	s := browsertest.NewFakeSession().Add(toast, "Success", "Successfully Saved")

	ok, err := browser.TextContains(toast, "Saved")(context.Background(), s)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = browser.TextContains(toast, "Deleted")(context.Background(), s)
	require.NoError(t, err)
	assert.False(t, ok)
}
