package jobsapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Yat-Muk/queuedash/internal/domain/jobs"
	apperrors "github.com/Yat-Muk/queuedash/internal/pkg/errors"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/", time.Second, zap.NewNop())
	require.NoError(t, err)
	return c
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := New("::bad", time.Second, nil)
	assert.Error(t, err)

	_, err = New("localhost", time.Second, nil)
	assert.Error(t, err)
	assert.Equal(t, apperrors.CodeUpstream, apperrors.CodeOf(err))
}

func TestPending(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/jobs/data/pending", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`[{"name":"mail","value":3},{"name":"default","value":0}]`))
	}))

	got, err := c.Pending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []jobs.QueueCount{{Name: "mail", Value: 3}, {Name: "default", Value: 0}}, got)
}

func TestProcessed(t *testing.T) {
	var gotPath string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"xAxis":["10:00","10:05"],"series":[4,9]}`))
	}))

	got, err := c.Processed(context.Background(), jobs.Hour)
	require.NoError(t, err)
	assert.Equal(t, "/admin/jobs/data/processed/hour", gotPath)
	assert.Equal(t, []string{"10:00", "10:05"}, got.XAxis)
	assert.Equal(t, []int{4, 9}, got.Series)
}

func TestProcessed_InvalidInterval(t *testing.T) {
	called := false
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := c.Processed(context.Background(), jobs.Interval("year"))
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInterval))
	assert.False(t, called)
}

func TestWorkers_Sorted(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/jobs/data/workers", r.URL.Path)
		w.Write([]byte(`[
			{"id":"w2","queue":"mail","workers":2,"job_types":["b","a"],"last_seen":"2026-01-01T00:00:00Z"},
			{"id":"w1","queue":"default","workers":1,"job_types":[],"last_seen":"2026-01-01T00:00:00Z"}
		]`))
	}))

	got, err := c.Workers(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "w1", got[0].ID)
	assert.Equal(t, []string{"a", "b"}, got[1].JobTypes)
	assert.Equal(t, 2, got[1].Workers)
}

func TestUpstreamStatus(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := c.Pending(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUpstreamStatus))
	assert.Equal(t, apperrors.CodeUpstream, apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), "boom")
}

func TestBadJSON(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))

	_, err := c.Workers(context.Background())
	assert.Error(t, err)
	assert.False(t, errors.Is(err, apperrors.ErrUpstreamStatus))
}

func TestContextCancelled(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Pending(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}
