package editor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taebin/travelsay/internal/api"
	"github.com/taebin/travelsay/internal/testutil"
)

type staticToken string

func (s staticToken) Token(context.Context) (string, error) { return string(s), nil }
func (staticToken) Purge(context.Context) error             { return nil }

type fixture struct {
	backend *testutil.FakeBackend
	client  *api.Client
	planID  int64
	dayID   int64
}

// newFixture seeds alice's plan with one day holding the given titles,
// timed 09:00, 10:00, ... in order.
func newFixture(t *testing.T, titles ...string) fixture {
	t.Helper()
	backend := testutil.NewFakeBackend(t)
	client := api.NewClient(backend.URL(), 5*time.Second, staticToken(backend.IssueToken("alice", time.Hour)), nil)
	planID := backend.SeedPlan("alice", "Jeju")
	dayID := backend.SeedDay(planID, "2025-05-01")
	for i, title := range titles {
		backend.SeedItem(dayID, title, time.Date(0, 1, 1, 9+i, 0, 0, 0, time.UTC).Format("15:04"))
	}
	return fixture{backend: backend, client: client, planID: planID, dayID: dayID}
}

func (f fixture) loadedSequence(t *testing.T) *ItemSequence {
	t.Helper()
	seq := NewItemSequence(f.client)
	require.NoError(t, seq.Load(context.Background(), f.dayID))
	return seq
}

func (f fixture) openController(t *testing.T) *Controller {
	t.Helper()
	c := New(f.client)
	require.NoError(t, c.Open(context.Background(), f.planID))
	return c
}

func titles(seq *ItemSequence) []string {
	var out []string
	for _, it := range seq.Items() {
		out = append(out, it.Title)
	}
	return out
}
