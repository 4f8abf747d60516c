package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/recipe-api/internal/application"
	"github.com/oksasatya/recipe-api/internal/interface/middleware"
	"github.com/oksasatya/recipe-api/pkg/apperr"
	"github.com/oksasatya/recipe-api/pkg/helpers"
	"github.com/oksasatya/recipe-api/pkg/response"
)


type UserHandler struct {
	Svc     *userapp.UserService
	JWT     *helpers.JWTManager
	Logger  *logrus.Logger
	Cookies *helpers.Manager
	Errors  ErrorWriter
}

func NewUserHandler(svc *userapp.UserService, jwt *helpers.JWTManager, logger *logrus.Logger, cookieDomain string, cookieSecure bool, exposeErrors bool) *UserHandler {
	return &UserHandler{
		Svc:     svc,
		JWT:     jwt,
		Logger:  logger,
		Cookies: helpers.NewCookie(cookieDomain, cookieSecure),
		Errors:  ErrorWriter{Logger: logger, ExposeCause: exposeErrors},
	}
}

// Field rules live in the service so messages and their order stay in one place.
type registerRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     string  `json:"name"`
	Birthday *string `json:"birthday"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register POST /api/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Errors.WriteBindError(c, err)
		return
	}
	p, err := h.Svc.Register(c.Request.Context(), userapp.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Birthday: req.Birthday,
	})
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p, "User registered successfully", nil)
}

// Login POST /api/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Errors.WriteBindError(c, err)
		return
	}
	p, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.Errors.Write(c, err)
		return
	}

	token, exp, err := h.JWT.GenerateAccessToken(p.ID)
	if err != nil {
		h.Errors.Write(c, apperr.Wrap(apperr.ErrInternal, err, "issue access token"))
		return
	}
	h.Cookies.SetAccess(c, token, exp)
	response.Success(c, http.StatusOK, p, "Login successful", gin.H{"access_expires_at": exp.UTC()})
}

// Logout POST /api/auth/logout
func (h *UserHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "Logged out successfully", nil)
}

// GetProfile GET /api/auth/profile/:id
func (h *UserHandler) GetProfile(c *gin.Context) {
	h.writeProfile(c, c.Param("id"))
}

// Me GET /api/auth/me (auth required)
func (h *UserHandler) Me(c *gin.Context) {
	h.writeProfile(c, c.GetString(middleware.CtxUserIDKey))
}

func (h *UserHandler) writeProfile(c *gin.Context, id string) {
	p, err := h.Svc.GetProfile(c.Request.Context(), id)
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	if p == nil {
		h.Errors.Write(c, apperr.With(apperr.ErrNotFound, "User not found"))
		return
	}
	response.Success(c, http.StatusOK, p, "User profile retrieved successfully", nil)
}
