package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Records(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequest("GET", "/get", 200, 15*time.Millisecond)
	c.RecordRequest("GET", "/get", 200, 5*time.Millisecond)
	c.RecordLogin("discord", "success")
	c.RecordSessionResolution("stale")
	c.RecordPreferenceWrite("set", "ok")

	assert.Equal(t, float64(2), testutil.ToFloat64(c.requests.WithLabelValues("GET", "/get", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.logins.WithLabelValues("discord", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.sessions.WithLabelValues("stale")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.writes.WithLabelValues("set", "ok")))
}

func TestHandler_Exposition(t *testing.T) {
	reg := NewRegistry()
	c := NewCollector(reg)
	c.RecordLogin("github", "state_mismatch")

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `tzsync_oauth_logins_total{outcome="state_mismatch",provider="github"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
