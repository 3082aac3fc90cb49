package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kyc-backend/internal/shared/auth"
	"kyc-backend/internal/shared/server/middleware"
	"kyc-backend/internal/shared/server/respond"
)

// Handler wires auth HTTP endpoints to the service.
type Handler struct {
	Svc          *Service
	CookieSecure bool
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, cookieSecure bool) *Handler {
	return &Handler{Svc: svc, CookieSecure: cookieSecure}
}

// RegisterPublicRoutes attaches routes that do not require a session.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/signup", h.signup)
	rg.POST("/auth/login", h.login)
	rg.POST("/auth/logout", h.logout)
}

// RegisterProtectedRoutes attaches routes behind the auth middleware.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/check", h.check)
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (h *Handler) signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, err := h.Svc.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrEmailTaken):
			respond.Error(c, http.StatusBadRequest, "Email is already registered")
		default:
			respond.Error(c, http.StatusInternalServerError, "Error registering user")
		}
		return
	}

	respond.Success(c, http.StatusCreated, "User registered successfully", nil)
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			respond.Error(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "Error logging in")
		return
	}

	token, err := auth.SignJWT(auth.Claims{Sub: user.ID, Email: user.Email})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Error logging in")
		return
	}

	middleware.SetSessionCookie(c, token, int(auth.TokenTTL.Seconds()), h.CookieSecure)
	respond.JSON(c, http.StatusOK, gin.H{
		"success": true,
		"user":    userResponse{ID: user.ID, Email: user.Email},
	})
}

func (h *Handler) logout(c *gin.Context) {
	middleware.ClearSessionCookie(c)
	respond.Success(c, http.StatusOK, "User logged out successfully", nil)
}

func (h *Handler) check(c *gin.Context) {
	respond.JSON(c, http.StatusOK, gin.H{
		"success": true,
		"user": userResponse{
			ID:    middleware.UserIDFromContext(c),
			Email: middleware.UserEmailFromContext(c),
		},
	})
}
