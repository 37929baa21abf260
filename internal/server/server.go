package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/srujanr7/ticketday-1-sub000/internal/insight"
	"github.com/srujanr7/ticketday-1-sub000/internal/repository"
	"github.com/srujanr7/ticketday-1-sub000/internal/service"
)

// Server provides the HTTP API for the dashboard backend. Authentication is
// handled by an external gateway; the acting user arrives as the X-User-ID
// header and is passed explicitly into every service call.
type Server struct {
	engine   *gin.Engine
	log      *zap.Logger
	projects service.ProjectService
	tasks    service.TaskService
	events   service.EventService
	members  service.MemberService
	insights *insight.Service
	taskGen  *insight.TaskGenService
	schedule *insight.ScheduleService
}

// New constructs the HTTP server with routes and middleware configured.
func New(
	log *zap.Logger,
	projects service.ProjectService,
	tasks service.TaskService,
	events service.EventService,
	members service.MemberService,
	insights *insight.Service,
	taskGen *insight.TaskGenService,
	schedule *insight.ScheduleService,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	srv := &Server{
		engine:   router,
		log:      log,
		projects: projects,
		tasks:    tasks,
		events:   events,
		members:  members,
		insights: insights,
		taskGen:  taskGen,
		schedule: schedule,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.engine.Group("/api")
	{
		projects := api.Group("/projects")
		{
			projects.GET("", s.handleListProjects)
			projects.POST("", s.handleCreateProject)
			projects.GET(":id", s.handleGetProject)
			projects.PUT(":id", s.handleUpdateProject)
			projects.DELETE(":id", s.handleDeleteProject)

			projects.GET(":id/members", s.handleListMembers)
			projects.POST(":id/members", s.handleAddMember)
			projects.DELETE(":id/members/:userID", s.handleRemoveMember)

			projects.GET(":id/tasks", s.handleListTasks)
			projects.POST(":id/tasks", s.handleCreateTask)

			projects.GET(":id/events", s.handleListEvents)
			projects.POST(":id/events", s.handleCreateEvent)

			projects.POST(":id/insights", s.handleGenerateInsights)
			projects.POST(":id/tasks/generate", s.handleGenerateTasks)
			projects.POST(":id/schedule/generate", s.handleGenerateSchedule)
		}

		api.PUT("/tasks/:id", s.handleUpdateTask)
		api.DELETE("/tasks/:id", s.handleDeleteTask)
		api.POST("/tasks/:id/assign", s.handleAssignTask)
		api.DELETE("/tasks/:id/assign/:userID", s.handleUnassignTask)

		api.DELETE("/events/:id", s.handleDeleteEvent)

		api.GET("/insights/overview", s.handleInsightOverview)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// actingUser extracts the authenticated user id set by the gateway. Handlers
// pass it down explicitly; no ambient session state exists below this point.
func (s *Server) actingUser(c *gin.Context) (string, bool) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing X-User-ID header"})
		return "", false
	}
	return userID, true
}

// respondError logs the error and maps known sentinels to status codes.
func (s *Server) respondError(c *gin.Context, status int, err error) {
	if err != nil {
		s.log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// statusFor maps service-layer errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAlreadyAssigned):
		return http.StatusConflict
	case errors.Is(err, service.ErrNotCreator):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

func respondSuccess(c *gin.Context, status int, payload any) {
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}
