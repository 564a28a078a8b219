package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/fitcheck/internal/domain/auth"
)

// credentialsPayload accepts JSON or form encoded credentials.
type credentialsPayload struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Signup creates an account and returns tokens.
func (h *Handler) Signup(c *gin.Context) {
	var req credentialsPayload
	if err := c.ShouldBind(&req); err != nil {
		abortWithError(c, badRequest(errMessage(err), err))
		return
	}
	resp, err := h.authSvc.Register(c.Request.Context(), auth.RegisterRequest{Username: req.Username, Password: req.Password})
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Token exchanges credentials for tokens.
func (h *Handler) Token(c *gin.Context) {
	var req credentialsPayload
	if err := c.ShouldBind(&req); err != nil {
		abortWithError(c, badRequest(errMessage(err), err))
		return
	}
	resp, err := h.authSvc.Login(c.Request.Context(), auth.LoginRequest{Username: req.Username, Password: req.Password})
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh issues a new token pair from a refresh token.
func (h *Handler) Refresh(c *gin.Context) {
	var req auth.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(errMessage(err), err))
		return
	}
	resp, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	profile, err := h.authSvc.Profile(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, profile)
}
