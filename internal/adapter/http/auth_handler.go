package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ombhayde/tensorg-payment-system/internal/adapter/auth"
	"github.com/ombhayde/tensorg-payment-system/internal/adapter/http/middleware"
	"github.com/ombhayde/tensorg-payment-system/internal/logging"
	"github.com/ombhayde/tensorg-payment-system/internal/session"
	"github.com/ombhayde/tensorg-payment-system/internal/usecase"
)

type oauthProvider interface {
	LoginURL(state string) string
	Exchange(ctx context.Context, code string) (auth.Profile, error)
}

type AuthConfig struct {
	CookieName string
	ClientURL  string
}

// AuthHandler wires the Google OAuth redirect dance to local accounts and
// session cookies.
type AuthHandler struct {
	provider oauthProvider
	states   auth.StateStore
	login    *usecase.ResolveLogin
	sessions *session.Manager
	cfg      AuthConfig
}

func NewAuthHandler(provider oauthProvider, states auth.StateStore, login *usecase.ResolveLogin, sessions *session.Manager, cfg AuthConfig) *AuthHandler {
	return &AuthHandler{provider: provider, states: states, login: login, sessions: sessions, cfg: cfg}
}

// Login kicks off the consent flow. GET /auth/google
func (h *AuthHandler) Login(c *gin.Context) {
	state := auth.RandState(32)
	if err := h.states.Save(c.Request.Context(), state); err != nil {
		logging.From(c).Error("save oauth state", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login unavailable"})
		return
	}
	c.Redirect(http.StatusFound, h.provider.LoginURL(state))
}

// Callback finishes the flow: state check, code exchange, account resolution,
// session cookie. GET /auth/google/callback
func (h *AuthHandler) Callback(c *gin.Context) {
	if c.Query("error") != "" {
		h.loginFailed(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	ok, err := h.states.Consume(ctx, c.Query("state"))
	if err != nil || !ok {
		h.loginFailed(c)
		return
	}

	profile, err := h.provider.Exchange(ctx, c.Query("code"))
	if err != nil || profile.Email == "" {
		logging.From(c).Warn("oauth exchange failed", "err", err)
		h.loginFailed(c)
		return
	}

	user, err := h.login.Execute(ctx, usecase.LoginProfile{
		GoogleID:    profile.Sub,
		Email:       profile.Email,
		DisplayName: profile.Name,
	})
	if err != nil {
		logging.From(c).Error("resolve login", "err", err)
		h.loginFailed(c)
		return
	}

	tok, err := h.sessions.Issue(session.Identity{
		UserID:  user.ID,
		Email:   user.Email,
		Name:    user.DisplayName,
		IsAdmin: user.IsAdmin,
	})
	if err != nil {
		logging.From(c).Error("issue session", "err", err)
		h.loginFailed(c)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, tok, int(h.sessions.TTL().Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, h.cfg.ClientURL)
}

func (h *AuthHandler) loginFailed(c *gin.Context) {
	c.Redirect(http.StatusFound, h.cfg.ClientURL+"/login/failed")
}

// CurrentUser reports the session identity. GET /api/user
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	id, ok := middleware.Identity(c)
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":      id.UserID,
		"email":   id.Email,
		"name":    id.Name,
		"isAdmin": id.IsAdmin,
	})
}

// Logout clears the session cookie. POST /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
