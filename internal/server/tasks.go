package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/srujanr7/ticketday-1-sub000/internal/domain"
)

type taskRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Status         string   `json:"status"`
	Priority       string   `json:"priority"`
	DueDate        *string  `json:"dueDate"`
	EstimatedHours float64  `json:"estimatedHours"`
	Tags           []string `json:"tags"`
}

func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.tasks.ListByProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}

	// ?status=done narrows the listing to one board column.
	if raw := c.Query("status"); raw != "" {
		status := domain.NormalizeTaskStatus(raw)
		filtered := tasks[:0]
		for _, tw := range tasks {
			if tw.Task.Status == status {
				filtered = append(filtered, tw)
			}
		}
		tasks = filtered
	}
	respondSuccess(c, http.StatusOK, gin.H{"tasks": tasks})
}

func (s *Server) handleCreateTask(c *gin.Context) {
	userID, ok := s.actingUser(c)
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	task := &domain.Task{
		ProjectID:      c.Param("id"),
		Title:          req.Title,
		Description:    req.Description,
		EstimatedHours: req.EstimatedHours,
		CreatedBy:      userID,
		Tags:           req.Tags,
	}
	if req.Status != "" {
		task.Status = domain.NormalizeTaskStatus(req.Status)
	}
	if req.Priority != "" {
		task.Priority = domain.NormalizeTaskPriority(req.Priority)
	}
	var err error
	if task.DueDate, err = parseDatePtr(req.DueDate); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	if err := s.tasks.Create(c.Request.Context(), task); err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	s.insights.InvalidateProject(task.ProjectID)
	respondSuccess(c, http.StatusCreated, gin.H{"task": task})
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	if _, ok := s.actingUser(c); !ok {
		return
	}

	task, err := s.tasks.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Title != "" {
		task.Title = req.Title
	}
	if req.Description != "" {
		task.Description = req.Description
	}
	if req.Status != "" {
		task.Status = domain.NormalizeTaskStatus(req.Status)
	}
	if req.Priority != "" {
		task.Priority = domain.NormalizeTaskPriority(req.Priority)
	}
	if req.EstimatedHours > 0 {
		task.EstimatedHours = req.EstimatedHours
	}
	if req.Tags != nil {
		task.Tags = req.Tags
	}
	if req.DueDate != nil {
		if task.DueDate, err = parseDatePtr(req.DueDate); err != nil {
			s.respondError(c, http.StatusBadRequest, err)
			return
		}
	}

	if err := s.tasks.Update(c.Request.Context(), task); err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	s.insights.InvalidateProject(task.ProjectID)
	respondSuccess(c, http.StatusOK, gin.H{"task": task})
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	userID, ok := s.actingUser(c)
	if !ok {
		return
	}

	task, err := s.tasks.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	if err := s.tasks.Delete(c.Request.Context(), task.ID, userID); err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	s.insights.InvalidateProject(task.ProjectID)
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) handleAssignTask(c *gin.Context) {
	assignerID, ok := s.actingUser(c)
	if !ok {
		return
	}

	var req struct {
		UserID string `json:"userId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if req.UserID == "" {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("userId is required"))
		return
	}

	if err := s.tasks.Assign(c.Request.Context(), c.Param("id"), req.UserID, assignerID); err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"status": "assigned"})
}

func (s *Server) handleUnassignTask(c *gin.Context) {
	if _, ok := s.actingUser(c); !ok {
		return
	}

	if err := s.tasks.Unassign(c.Request.Context(), c.Param("id"), c.Param("userID")); err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "unassigned"})
}
