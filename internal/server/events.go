package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/srujanr7/ticketday-1-sub000/internal/domain"
)

var errInvalidDays = errors.New("days must be a positive integer")

type eventRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"` // YYYY-MM-DD
	StartTime   string   `json:"startTime"`
	DurationMin int      `json:"durationMin"`
	Type        string   `json:"type"`
	Attendees   []string `json:"attendees"`
}

func (s *Server) handleListEvents(c *gin.Context) {
	ctx := c.Request.Context()
	projectID := c.Param("id")

	// ?days=N limits the listing to the upcoming window.
	if raw := c.Query("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days <= 0 {
			s.respondError(c, http.StatusBadRequest, errInvalidDays)
			return
		}
		events, err := s.events.ListUpcoming(ctx, projectID, days)
		if err != nil {
			s.respondError(c, http.StatusInternalServerError, err)
			return
		}
		respondSuccess(c, http.StatusOK, gin.H{"events": events})
		return
	}

	events, err := s.events.ListByProject(ctx, projectID)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"events": events})
}

func (s *Server) handleCreateEvent(c *gin.Context) {
	userID, ok := s.actingUser(c)
	if !ok {
		return
	}

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	event := &domain.Event{
		ProjectID:   c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		StartTime:   req.StartTime,
		DurationMin: req.DurationMin,
		Type:        domain.NormalizeEventType(req.Type),
		CreatedBy:   userID,
		Attendees:   req.Attendees,
	}
	if err := s.events.Create(c.Request.Context(), event); err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"event": event})
}

func (s *Server) handleDeleteEvent(c *gin.Context) {
	userID, ok := s.actingUser(c)
	if !ok {
		return
	}

	if err := s.events.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}
