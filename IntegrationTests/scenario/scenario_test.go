package scenario

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	all := All()
	for _, name := range []string{
		scenarioBasicWorkflow,
		scenarioInstanceTypeConfigs,
		scenarioUnknownInstanceType,
		scenarioMetricsExposed,
		scenarioGRPCHealth,
	} {
		assert.Contains(t, all, name)
	}

	err := Run("nope", context.Background(), &Config{})
	var unknown *UnknownScenarioError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "nope", unknown.Name)
}

func TestServers(t *testing.T) {
	doc := map[string]any{"http": map[string]any{"services": map[string]any{
		"ok":      map[string]any{"loadBalancer": map[string]any{"servers": []any{map[string]any{"url": "https://a/vm/"}}}},
		"no_url":  map[string]any{"loadBalancer": map[string]any{"servers": []any{map[string]any{}}}},
		"not_seq": map[string]any{"loadBalancer": map[string]any{"servers": "x"}},
	}}}

	got, ok, err := Servers(doc, "ok")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "https://a/vm/", got[0]["url"])

	_, ok, err = Servers(doc, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = Servers(doc, "no_url")
	assert.Error(t, err)
	_, _, err = Servers(doc, "not_seq")
	assert.Error(t, err)
}

// fakeService mimics the proxyconfig HTTP surface closely enough for the scenarios.
func fakeService(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ready","nodes":2,"resource_nodes":1}`))
	})
	mux.HandleFunc("/api", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"http":{"services":{
			"aleph-api":{"loadBalancer":{"servers":[{"url":"http://1.2.3.4:4024/api/"}]}},
			"aleph-vm":{"loadBalancer":{"servers":[{"url":"https://crn.example.org/vm/"}]}}}}}`))
	})
	mux.HandleFunc("/api/by_instance_type/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/by_instance_type/gpu" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":"bad_parameter","message":"invalid instance_type"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"http":{"services":{
			"aleph-vm-small":{"loadBalancer":{"servers":[{"url":"https://a/vm/"}]}},
			"aleph-vm-large":{"loadBalancer":{"servers":[{"url":"https://b/vm/"}]}}}}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestScenarios_AgainstFakeService(t *testing.T) {
	srv := fakeService(t)
	cfg := &Config{BaseURL: srv.URL}

	for _, name := range []string{scenarioBasicWorkflow, scenarioInstanceTypeConfigs, scenarioUnknownInstanceType} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, Run(name, context.Background(), cfg))
		})
	}
}

func TestWaitReady_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := WaitReady(ctx, &Config{BaseURL: srv.URL})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGRPCHealth_RequiresAddress(t *testing.T) {
	assert.Error(t, runGRPCHealth(context.Background(), &Config{}))
}
