package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/srujanr7/ticketday-1-sub000/internal/domain"
)

type projectRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	StartDate   *string `json:"startDate"` // YYYY-MM-DD
	DueDate     *string `json:"dueDate"`
	Status      string  `json:"status"`
}

func (s *Server) handleListProjects(c *gin.Context) {
	userID, ok := s.actingUser(c)
	if !ok {
		return
	}

	projects, err := s.projects.ListForUser(c.Request.Context(), userID)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"projects": projects})
}

func (s *Server) handleCreateProject(c *gin.Context) {
	userID, ok := s.actingUser(c)
	if !ok {
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	project := &domain.Project{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     userID,
		Status:      domain.ProjectStatus(req.Status),
	}
	var err error
	if project.StartDate, err = parseDatePtr(req.StartDate); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if project.DueDate, err = parseDatePtr(req.DueDate); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	if err := s.projects.Create(c.Request.Context(), project); err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"project": project})
}

func (s *Server) handleGetProject(c *gin.Context) {
	project, err := s.projects.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"project": project})
}

func (s *Server) handleUpdateProject(c *gin.Context) {
	if _, ok := s.actingUser(c); !ok {
		return
	}

	project, err := s.projects.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Name != "" {
		project.Name = req.Name
	}
	if req.Description != "" {
		project.Description = req.Description
	}
	if req.Status != "" {
		project.Status = domain.ProjectStatus(req.Status)
	}
	if req.StartDate != nil {
		if project.StartDate, err = parseDatePtr(req.StartDate); err != nil {
			s.respondError(c, http.StatusBadRequest, err)
			return
		}
	}
	if req.DueDate != nil {
		if project.DueDate, err = parseDatePtr(req.DueDate); err != nil {
			s.respondError(c, http.StatusBadRequest, err)
			return
		}
	}

	if err := s.projects.Update(c.Request.Context(), project); err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	s.insights.InvalidateProject(project.ID)
	respondSuccess(c, http.StatusOK, gin.H{"project": project})
}

func (s *Server) handleDeleteProject(c *gin.Context) {
	userID, ok := s.actingUser(c)
	if !ok {
		return
	}

	if err := s.projects.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}

// parseDatePtr parses an optional YYYY-MM-DD string. An explicit empty
// string clears the date.
func parseDatePtr(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", *raw)
	}
	return &t, nil
}
