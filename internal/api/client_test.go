package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taebin/travelsay/internal/domain"
)

type stubCreds struct {
	token    string
	purged   atomic.Int32
	purgeErr error
}

func (s *stubCreds) Token(context.Context) (string, error) {
	if s.token == "" {
		return "", ErrNoCredential
	}
	return s.token, nil
}

func (s *stubCreds) Purge(context.Context) error {
	s.purged.Add(1)
	if s.purgeErr != nil {
		return s.purgeErr
	}
	s.token = ""
	return nil
}

type recordingObserver struct {
	events []CallEvent
}

func (r *recordingObserver) OnCall(_ context.Context, e CallEvent) {
	r.events = append(r.events, e)
}

func TestClient_ListItems_SendsBearerAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/trips/days/7/items", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"title":"Breakfast","startTime":"08:00:00","orderNo":1},{"id":2,"title":"Museum","amount":12000,"orderNo":2}]`))
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	c := NewClient(srv.URL, 0, &stubCreds{token: "tok"}, obs)
	items, err := c.ListItems(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Breakfast", items[0].Title)
	assert.Equal(t, "08:00:00", *items[0].StartTime)
	assert.Nil(t, items[1].StartTime)
	assert.Equal(t, 12000, *items[1].Amount)
	require.Len(t, obs.events, 1)
	assert.Equal(t, http.StatusOK, obs.events[0].Status)
	assert.NoError(t, obs.events[0].Err)
}

func TestClient_NoCredential_SkipsNetwork(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, &stubCreds{}, NoopObserver{})
	_, err := c.MyPlans(context.Background())

	assert.ErrorIs(t, err, ErrNoCredential)
	assert.Zero(t, hits.Load())
}

func TestClient_Unauthorized_PurgesCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"UNAUTHORIZED","message":"login required"}`))
	}))
	defer srv.Close()

	creds := &stubCreds{token: "stale"}
	c := NewClient(srv.URL, 0, creds, NoopObserver{})
	_, err := c.ListDays(context.Background(), 1)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, int32(1), creds.purged.Load())
	assert.Equal(t, "login required", err.Error())
}

func TestClient_ErrorMessage_FromBodyOrStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"server message", http.StatusBadRequest, `{"code":"BAD_REQUEST","message":"orderNo out of range"}`, "orderNo out of range"},
		{"empty body", http.StatusInternalServerError, ``, "HTTP 500"},
		{"non json", http.StatusBadGateway, `<html>bad gateway</html>`, "HTTP 502"},
		{"blank message", http.StatusConflict, `{"message":""}`, "HTTP 409"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, 0, &stubCreds{token: "tok"}, NoopObserver{})
			err := c.DeleteItem(context.Background(), 3)

			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
			assert.Equal(t, tt.status, StatusOf(err))
		})
	}
}

func TestClient_CreateItem_SendsOrderNoOnlyWhenSet(t *testing.T) {
	var bodies []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies = append(bodies, body)
		_, _ = w.Write([]byte(`{"id":9,"title":"x","orderNo":1}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, &stubCreds{token: "tok"}, NoopObserver{})
	pos := 2
	_, err := c.CreateItem(context.Background(), 4, domain.ItemFields{Title: "x"}, nil)
	require.NoError(t, err)
	_, err = c.CreateItem(context.Background(), 4, domain.ItemFields{Title: "x"}, &pos)
	require.NoError(t, err)

	require.Len(t, bodies, 2)
	_, has := bodies[0]["orderNo"]
	assert.False(t, has)
	assert.Equal(t, float64(2), bodies[1]["orderNo"])
}

func TestClient_NoContentResponses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, &stubCreds{token: "tok"}, NoopObserver{})
	assert.NoError(t, c.ReorderItem(context.Background(), 1, 2))
	assert.NoError(t, c.DeleteDay(context.Background(), 1))
	assert.NoError(t, c.UpdatePlan(context.Background(), domain.Plan{ID: 1, Title: "t"}))
}

func TestClient_Login_StripsBearerPrefix(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/member/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"accessToken":"Bearer abc.def.ghi"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, nil, nil)
	token, err := c.Login(context.Background(), "alice", "pw")

	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)
}

func TestClient_Unauthorized_ReportsPurgeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	diskFull := errors.New("disk full")
	obs := &recordingObserver{}
	creds := &stubCreds{token: "stale", purgeErr: diskFull}
	c := NewClient(srv.URL, 0, creds, obs)
	_, err := c.ListDays(context.Background(), 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorIs(t, err, diskFull)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
	assert.Contains(t, err.Error(), "forgetting stored credential")
	require.Len(t, obs.events, 1)
	assert.ErrorIs(t, obs.events[0].Err, diskFull)
}

func TestClient_Login_FailureDoesNotPurge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"UNAUTHORIZED","message":"bad credentials"}`))
	}))
	defer srv.Close()

	creds := &stubCreds{token: "keep"}
	c := NewClient(srv.URL, 0, creds, NoopObserver{})
	_, err := c.Login(context.Background(), "alice", "wrong")

	require.Error(t, err)
	assert.Equal(t, "bad credentials", err.Error())
	assert.Zero(t, creds.purged.Load())
}
