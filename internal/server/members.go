package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/srujanr7/ticketday-1-sub000/internal/domain"
)

type memberRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (s *Server) handleListMembers(c *gin.Context) {
	users, err := s.members.ListProjectUsers(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"members": users})
}

func (s *Server) handleAddMember(c *gin.Context) {
	userID, ok := s.actingUser(c)
	if !ok {
		return
	}

	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Email == "" {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("email is required"))
		return
	}

	added, err := s.members.AddMember(c.Request.Context(), c.Param("id"), req.Email, domain.MemberRole(req.Role), userID)
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"member": added})
}

func (s *Server) handleRemoveMember(c *gin.Context) {
	if _, ok := s.actingUser(c); !ok {
		return
	}

	if err := s.members.RemoveMember(c.Request.Context(), c.Param("id"), c.Param("userID")); err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "removed"})
}
