package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/steadycalls/opsbrain/internal/audit"
	"github.com/steadycalls/opsbrain/internal/auth"
	"github.com/steadycalls/opsbrain/internal/logger"
	"github.com/steadycalls/opsbrain/internal/models"
	"github.com/steadycalls/opsbrain/internal/repository"
)

// AuthHandler implements sign-in: upsert the identity, issue a session
// token.
type AuthHandler struct {
	users    *repository.Users
	tokens   *auth.Service
	recorder *audit.Recorder
	log      logger.Logger
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(users *repository.Users, tokens *auth.Service, recorder *audit.Recorder, log logger.Logger) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, recorder: recorder, log: log}
}

type signInRequest struct {
	OpenID      string       `json:"open_id" binding:"required"`
	Name        *string      `json:"name"`
	Email       *string      `json:"email"`
	LoginMethod *string      `json:"login_method"`
	Role        *models.Role `json:"role"`
}

// SignIn upserts the user by external identity and returns a session token.
// Every sign-in refreshes last_signed_in; only supplied profile fields are
// merged into an existing user.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.users.Upsert(c.Request.Context(), models.UpsertUserParams{
		OpenID:      req.OpenID,
		Name:        req.Name,
		Email:       req.Email,
		LoginMethod: req.LoginMethod,
		Role:        req.Role,
	})
	if err != nil {
		repoError(c, h.log, err)
		return
	}
	if user == nil {
		storeUnavailable(c)
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		h.log.Error("failed to issue session token", logger.Error(err))
		internalError(c)
		return
	}

	h.recorder.Record(c.Request.Context(), audit.Entry{
		UserID:    &user.ID,
		Action:    "user.signin",
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// Me returns the signed-in user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}

	user, err := h.users.GetByOpenID(c.Request.Context(), claims.OpenID)
	if err != nil {
		h.log.Error("failed to load user", logger.Error(err))
		internalError(c)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}
