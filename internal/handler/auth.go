package handler

import (
	"errors"
	"net/http"

	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/core"
	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/metrics"
	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/middleware"
	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/models"
	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/store"
	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves signup, login, logout and current-identity lookups.
type AuthHandler struct {
	Core *core.Core
}

func NewAuthHandler(c *core.Core) *AuthHandler {
	return &AuthHandler{Core: c}
}

type signupReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup registers a new identity. Email matching is exact and
// case-sensitive; a taken email fails without changing the store.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "email and password required")
		return
	}

	identity, err := h.Core.Register(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateIdentity) {
			metrics.IncRegistration("duplicate")
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "email exists")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create identity failed")
		return
	}

	metrics.IncRegistration("ok")
	util.Success(c, util.Response{
		"status": "ok",
		"user": gin.H{
			"id":    identity.ID,
			"email": identity.Email,
		},
	})
}

// Login authenticates and returns a fresh session token. Unknown email
// and wrong password produce the same reply.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "email and password required")
		return
	}

	token, err := h.Core.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			metrics.IncLogin("invalid")
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid credentials")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "issue session failed")
		return
	}

	metrics.IncLogin("ok")
	util.Success(c, util.Response{"token": token})
}

// Logout revokes the presented bearer token.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.ExtractToken(c)
	if err := h.Core.Logout(token); err != nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "unauthorized")
		return
	}
	util.Success(c, util.Response{"status": "ok"})
}

// Me returns the identity bound to the current session.
func (h *AuthHandler) Me(c *gin.Context) {
	identity := currentIdentity(c)
	if identity == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "unauthorized")
		return
	}
	util.Success(c, util.Response{
		"user": gin.H{
			"id":         identity.ID,
			"email":      identity.Email,
			"created_at": identity.CreatedAt,
		},
	})
}

// currentIdentity reads the identity placed in the context by the auth
// middleware.
func currentIdentity(c *gin.Context) *models.Identity {
	v, ok := c.Get(middleware.CtxIdentity)
	if !ok {
		return nil
	}
	identity, ok := v.(*models.Identity)
	if !ok {
		return nil
	}
	return identity
}
