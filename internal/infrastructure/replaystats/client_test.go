package replaystats

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/rlfpro/rocket-fantasy/internal/platform/logging"
	"github.com/rlfpro/rocket-fantasy/internal/platform/resilience"
)

const groupPayload = `{
	"id": "grp-1",
	"name": "RLCS Major Group",
	"players": [
		{
			"platform": "steam",
			"id": "steam-111",
			"name": "alpha",
			"cumulative": {
				"core": {"goals": 12, "assists": 4, "saves": 9, "shots": 30, "score": 4100},
				"demo": {"inflicted": 3}
			}
		},
		{
			"platform": "epic",
			"id": "",
			"name": "ghost",
			"cumulative": {
				"core": {"goals": 1, "assists": 0, "saves": 0, "shots": 2, "score": 200},
				"demo": {"inflicted": 0}
			}
		}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(Config{
		BaseURL: srv.URL,
		Token:   "bc-token",
		Timeout: 2 * time.Second,
	}, logging.NewNop())

	return client, srv
}

func TestClientFetchGroup_ParsesGroup(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/groups/grp-1", r.URL.Path)
		require.Equal(t, "bc-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(groupPayload))
	})

	group, err := client.FetchGroup(context.Background(), "grp-1")
	require.NoError(t, err)
	require.Equal(t, "grp-1", group.GroupID)
	require.Equal(t, "RLCS Major Group", group.Name)

	// The player without a platform id is dropped.
	require.Len(t, group.Players, 1)
	p := group.Players[0]
	require.Equal(t, "steam-111", p.PlatformPlayerID)
	require.Equal(t, "alpha", p.Name)
	require.Equal(t, 12, p.Goals)
	require.Equal(t, 4, p.Assists)
	require.Equal(t, 9, p.Saves)
	require.Equal(t, 30, p.Shots)
	require.Equal(t, 3, p.Demos)
	require.Equal(t, 4100, p.Score)
}

func TestClientFetchGroup_RateLimitIsTransient(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.FetchGroup(context.Background(), "grp-1")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrTransient))
}

func TestClientFetchGroup_ServerErrorIsTransient(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.FetchGroup(context.Background(), "grp-1")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrTransient))
}

func TestClientFetchGroup_NotFoundIsPermanent(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.FetchGroup(context.Background(), "missing")
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrTransient))
}

func TestClientFetchGroup_BadCredentialsArePermanent(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.FetchGroup(context.Background(), "grp-1")
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrTransient))
}

func TestClientFetchGroup_EmptyGroupID(t *testing.T) {
	t.Parallel()

	client := NewClient(Config{BaseURL: "http://localhost:0"}, logging.NewNop())

	_, err := client.FetchGroup(context.Background(), "  ")
	require.Error(t, err)
}

func TestClientFetchGroup_CircuitOpensOnTransientFailures(t *testing.T) {
	t.Parallel()

	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
		Breaker: resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 2},
	}, logging.NewNop())

	for i := 0; i < 2; i++ {
		_, err := client.FetchGroup(context.Background(), "grp-1")
		require.Error(t, err)
	}

	_, err := client.FetchGroup(context.Background(), "grp-1")
	require.True(t, errors.Is(err, ErrTransient))
	require.Equal(t, 2, hits)
}
