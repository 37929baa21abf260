package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/srujanr7/ticketday-1-sub000/internal/insight"
	"github.com/srujanr7/ticketday-1-sub000/internal/llm"
	"github.com/srujanr7/ticketday-1-sub000/internal/metrics"
	"github.com/srujanr7/ticketday-1-sub000/internal/repository"
)

// handleGenerateInsights runs the analysis pipeline. The response is always
// a shape-complete insight object; only fetch and model failures are errors.
func (s *Server) handleGenerateInsights(c *gin.Context) {
	userID, ok := s.actingUser(c)
	if !ok {
		return
	}
	projectID := c.Param("id")

	result, err := s.insights.GenerateProjectInsight(c.Request.Context(), projectID, userID)
	if err != nil {
		metrics.PipelineRuns.WithLabelValues("insight", pipelineOutcome(err)).Inc()
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(c, http.StatusNotFound, err)
			return
		}
		if isModelError(err) {
			s.respondError(c, http.StatusBadGateway, fmt.Errorf("failed to generate insights"))
			return
		}
		s.respondError(c, http.StatusBadGateway, fmt.Errorf("failed to load project data"))
		return
	}

	metrics.PipelineRuns.WithLabelValues("insight", "ok").Inc()
	respondSuccess(c, http.StatusOK, gin.H{"insight": result})
}

// handleGenerateTasks runs the task generation pipeline. Unlike the insight
// route, unparseable model output here is surfaced as 422.
func (s *Server) handleGenerateTasks(c *gin.Context) {
	userID, ok := s.actingUser(c)
	if !ok {
		return
	}
	projectID := c.Param("id")

	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := s.taskGen.GenerateTasks(c.Request.Context(), projectID, userID, req.Prompt)
	if err != nil {
		metrics.PipelineRuns.WithLabelValues("task_generation", pipelineOutcome(err)).Inc()
		s.respondGenerationError(c, err, "failed to generate tasks", "could not parse generated tasks")
		return
	}

	metrics.PipelineRuns.WithLabelValues("task_generation", "ok").Inc()
	recordApplied("task", result)
	respondSuccess(c, http.StatusOK, gin.H{"applied": result.Applied, "failed": result.Failed})
}

// handleGenerateSchedule runs the meeting synthesis pipeline.
func (s *Server) handleGenerateSchedule(c *gin.Context) {
	userID, ok := s.actingUser(c)
	if !ok {
		return
	}
	projectID := c.Param("id")

	result, err := s.schedule.GenerateSchedule(c.Request.Context(), projectID, userID)
	if err != nil {
		metrics.PipelineRuns.WithLabelValues("schedule_generation", pipelineOutcome(err)).Inc()
		s.respondGenerationError(c, err, "failed to generate schedule", "could not parse generated schedule")
		return
	}

	metrics.PipelineRuns.WithLabelValues("schedule_generation", "ok").Inc()
	recordApplied("event", result)
	respondSuccess(c, http.StatusOK, gin.H{"applied": result.Applied, "failed": result.Failed})
}

// handleInsightOverview returns heuristic health for every project visible
// to the acting user. No model call is made.
func (s *Server) handleInsightOverview(c *gin.Context) {
	userID, ok := s.actingUser(c)
	if !ok {
		return
	}

	overview, err := s.insights.WorkspaceOverview(c.Request.Context(), userID)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, fmt.Errorf("failed to load project data"))
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"projects": overview})
}

// respondGenerationError maps generation pipeline failures: missing project
// 404, unparseable output 422, model failure 502, fetch failure 502.
func (s *Server) respondGenerationError(c *gin.Context, err error, generateMsg, parseMsg string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		s.respondError(c, http.StatusNotFound, err)
	case insight.IsParseError(err):
		s.respondError(c, http.StatusUnprocessableEntity, fmt.Errorf("%s: %w", parseMsg, err))
	case isModelError(err):
		s.respondError(c, http.StatusBadGateway, fmt.Errorf("%s", generateMsg))
	default:
		s.respondError(c, http.StatusBadGateway, fmt.Errorf("failed to load project data"))
	}
}

func isModelError(err error) bool {
	return errors.Is(err, llm.ErrEndpointUnavailable) ||
		errors.Is(err, llm.ErrTimeout) ||
		errors.Is(err, llm.ErrGenerationFailed)
}

func pipelineOutcome(err error) string {
	switch {
	case insight.IsParseError(err):
		return "parse_error"
	case isModelError(err):
		return "model_error"
	default:
		return "fetch_error"
	}
}

func recordApplied(kind string, result *insight.ApplyResult) {
	if len(result.Applied) > 0 {
		metrics.GeneratedItemsApplied.WithLabelValues(kind, "applied").Add(float64(len(result.Applied)))
	}
	if len(result.Failed) > 0 {
		metrics.GeneratedItemsApplied.WithLabelValues(kind, "failed").Add(float64(len(result.Failed)))
	}
}
