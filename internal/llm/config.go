package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of model task being performed. Analytical
// tasks run cold (0.2), generative tasks run warmer (0.7).
type TaskType string

const (
	TaskInsight     TaskType = "insight"
	TaskTaskGen     TaskType = "task_generation"
	TaskScheduleGen TaskType = "schedule_generation"
)

// Provider selects the model backend implementation.
type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderGemini Provider = "gemini"
)

// TaskConfig holds per-task sampling parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// Config holds all configuration for the model subsystem.
type Config struct {
	Enabled    bool
	LogCalls   bool
	Provider   Provider
	Endpoint   string
	Model      string
	TimeoutMs  int
	MaxRetries int // extra attempts beyond the first; 0 means single-shot
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns a Config with sensible defaults. The pipeline is
// single-shot per invocation: no retries unless explicitly configured.
func DefaultConfig() Config {
	return Config{
		Enabled:    false,
		LogCalls:   false,
		Provider:   ProviderOllama,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  30000,
		MaxRetries: 0,
		Tasks: map[TaskType]TaskConfig{
			TaskInsight:     {Temperature: 0.2, MaxTokens: 2048, TimeoutMs: 30000},
			TaskTaskGen:     {Temperature: 0.7, MaxTokens: 4096, TimeoutMs: 45000},
			TaskScheduleGen: {Temperature: 0.7, MaxTokens: 2048, TimeoutMs: 30000},
		},
	}
}

// LoadConfig reads model configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("TASKFLOW_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("TASKFLOW_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("TASKFLOW_LLM_PROVIDER"); v != "" {
		cfg.Provider = Provider(v)
	}
	if v := os.Getenv("TASKFLOW_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("TASKFLOW_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("TASKFLOW_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("TASKFLOW_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskInsight, "TASKFLOW_LLM_INSIGHT_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskTaskGen, "TASKFLOW_LLM_TASKGEN_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskScheduleGen, "TASKFLOW_LLM_SCHEDULE_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c Config) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *Config, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
