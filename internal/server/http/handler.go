package http

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/habitcheck/internal/common"
	"github.com/dmitrijs2005/habitcheck/internal/server/services"
	"github.com/gin-gonic/gin"
)

const healthTimeout = 2 * time.Second

func (s *HTTPServer) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	user, err := s.accounts.Authenticate(c.Request.Context(), req.Username, req.Token)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{Success: true, Username: user.UserName, IsAdmin: user.IsAdmin})
}

func (s *HTTPServer) listUsers(c *gin.Context) {
	users, err := s.accounts.ListUsers(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userResponse{Username: u.UserName, IsAdmin: u.IsAdmin})
	}
	c.JSON(http.StatusOK, out)
}

func (s *HTTPServer) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	acc, err := s.accounts.CreateUser(c.Request.Context(), req.AdminUsername, req.AdminToken, req.NewUsername)
	if err != nil {
		s.fail(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "user created",
		"request_id", c.GetString(requestIDKey),
		"username", acc.UserName,
		"by", req.AdminUsername,
	)
	c.JSON(http.StatusOK, createUserResponse{Username: acc.UserName, Token: acc.Token})
}

func (s *HTTPServer) listEntries(c *gin.Context) {
	entries, err := s.entries.ListEntries(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	c.JSON(http.StatusOK, out)
}

func (s *HTTPServer) submitEntry(c *gin.Context) {
	var req submitEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	entry, err := s.entries.SubmitEntry(c.Request.Context(), services.Submission{
		Date:       req.Date,
		UserName:   req.Username,
		Token:      req.Token,
		Journal:    req.Journal,
		Meditation: req.Meditation,
		Movement:   req.Movement,
	})
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, toEntryResponse(entry))
}

func (s *HTTPServer) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := s.store.PingContext(ctx); err != nil {
		s.logger.Warn(ctx, "health check failed", "error", err.Error())
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": common.ErrorInternal.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
