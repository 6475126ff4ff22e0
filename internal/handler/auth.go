package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/CaptainFAHIM/uni-ride/internal/domain"
	"github.com/CaptainFAHIM/uni-ride/internal/middleware"
	"github.com/CaptainFAHIM/uni-ride/internal/service"
)

// CookieConfig holds the session cookie attributes.
type CookieConfig struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// AuthHandler handles HTTP requests for registration, login and sessions.
type AuthHandler struct {
	authService *service.AuthService
	cookie      CookieConfig
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, cookie CookieConfig, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie, logger: logger}
}

// RegisterRequest is the HTTP request body for registration.
type RegisterRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	University string `json:"university"`
}

// LoginRequest is the HTTP request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the HTTP response for user data.
type UserResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Role             string `json:"role"`
	University       string `json:"university"`
	Phone            string `json:"phone,omitempty"`
	MembershipActive bool   `json:"membership_active"`
	MembershipExpiry string `json:"membership_expiry"`
}

func userResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:               user.ID,
		Name:             user.Name,
		Email:            user.Email,
		Role:             string(user.Role),
		University:       user.University,
		Phone:            user.Phone,
		MembershipActive: service.MembershipActiveAt(user, time.Now()),
		MembershipExpiry: user.MembershipExpiry.Format(time.RFC3339),
	}
}

// Register handles POST /v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), service.RegisterRequest{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Role:       domain.UserRole(req.Role),
		University: req.University,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.setSessionCookie(c, token)
	respondJSON(c, http.StatusCreated, userResponse(user))
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.setSessionCookie(c, token)
	respondJSON(c, http.StatusOK, userResponse(user))
}

// Logout handles POST /v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cookie.Name); err == nil && token != "" {
		if err := h.authService.Logout(c.Request.Context(), token); err != nil {
			respondError(c, h.logger, err)
			return
		}
	}

	h.clearSessionCookie(c)
	respondJSON(c, http.StatusOK, gin.H{"status": "logged out"})
}

// Me handles GET /v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: service.ErrNotAuthenticated.Error()})
		return
	}

	respondJSON(c, http.StatusOK, userResponse(user))
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, int(h.cookie.MaxAge.Seconds()), "/", "", h.cookie.Secure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
}
