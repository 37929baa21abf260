package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) Config {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = endpoint
	return cfg
}

func TestOllamaClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, "analysis system prompt", req.System)
		assert.Equal(t, "project data", req.Prompt)

		resp := ollamaResponse{
			Model:    "llama3.2",
			Response: `{"healthScore":82}`,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskInsight,
		SystemPrompt: "analysis system prompt",
		UserPrompt:   "project data",
	})

	require.NoError(t, err)
	assert.Equal(t, `{"healthScore":82}`, resp.Text)
	assert.Equal(t, "llama3.2", resp.Model)
	assert.GreaterOrEqual(t, resp.LatencyMs, int64(0))
}

func TestOllamaClient_Generate_TaskTemperature(t *testing.T) {
	var gotTemp atomic.Value

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotTemp.Store(req.Options.Temperature)
		json.NewEncoder(w).Encode(ollamaResponse{Response: "ok"})
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskInsight, UserPrompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, 0.2, gotTemp.Load())

	_, err = client.Generate(context.Background(), GenerateRequest{Task: TaskTaskGen, UserPrompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, 0.7, gotTemp.Load())
}

func TestOllamaClient_Generate_TemperatureOverride(t *testing.T) {
	var gotTemp atomic.Value

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotTemp.Store(req.Options.Temperature)
		json.NewEncoder(w).Encode(ollamaResponse{Response: "ok"})
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	temp := 0.9
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:        TaskInsight,
		UserPrompt:  "x",
		Temperature: &temp,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.9, gotTemp.Load())
}

func TestOllamaClient_Generate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		json.NewEncoder(w).Encode(ollamaResponse{Response: "too late"})
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.TimeoutMs = 50
	tc := cfg.Tasks[TaskInsight]
	tc.TimeoutMs = 50
	cfg.Tasks[TaskInsight] = tc

	client := NewOllamaClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskInsight, UserPrompt: "x"})
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestOllamaClient_Generate_EndpointDown(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.TimeoutMs = 2000
	tc := cfg.Tasks[TaskInsight]
	tc.TimeoutMs = 2000
	cfg.Tasks[TaskInsight] = tc

	client := NewOllamaClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskInsight, UserPrompt: "x"})
	assert.ErrorIs(t, err, ErrEndpointUnavailable)
}

func TestOllamaClient_Generate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskInsight, UserPrompt: "x"})
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestOllamaClient_Generate_SingleShotByDefault(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "failure", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskInsight, UserPrompt: "x"})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestOllamaClient_Generate_RetriesWhenConfigured(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "failure", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(ollamaResponse{Response: "ok"})
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 2
	client := NewOllamaClient(cfg, NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{Task: TaskInsight, UserPrompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, int32(3), calls.Load())
}

type recordingObserver struct {
	events []CallEvent
}

func (o *recordingObserver) OnCallComplete(e CallEvent) {
	o.events = append(o.events, e)
}

func TestOllamaClient_Generate_ObserverEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.2", Response: "ok"})
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client := NewOllamaClient(testConfig(srv.URL), obs)
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskScheduleGen, UserPrompt: "x"})
	require.NoError(t, err)

	require.Len(t, obs.events, 1)
	assert.Equal(t, TaskScheduleGen, obs.events[0].Task)
	assert.True(t, obs.events[0].Success)
	assert.Empty(t, obs.events[0].ErrorCode)
}

func TestOllamaClient_Available(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	assert.True(t, client.Available(context.Background()))

	down := NewOllamaClient(testConfig("http://127.0.0.1:1"), NoopObserver{})
	assert.False(t, down.Available(context.Background()))
}
