package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/elprofecharles/registration-api/config"
	"github.com/elprofecharles/registration-api/internal/application"
	"github.com/elprofecharles/registration-api/internal/domain/catalog"
	"github.com/elprofecharles/registration-api/internal/domain/profile"
	repo "github.com/elprofecharles/registration-api/internal/domain/repository"
	"github.com/elprofecharles/registration-api/pkg/response"
	"github.com/elprofecharles/registration-api/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
	Cfg    *config.Config
}

func NewAuthHandler(svc *application.Service, logger *logrus.Logger, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cfg: cfg}
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

// internalError hides storage/signing failures behind a generic message;
// details are surfaced only in development mode.
func (h *AuthHandler) internalError(c *gin.Context, err error, op string) {
	if h.Logger != nil {
		h.Logger.WithError(err).WithFields(logrus.Fields{
			"op": op,
			"ip": c.GetString("real_ip"),
		}).Error("internal error")
	}
	var details interface{}
	if h.Cfg != nil && h.Cfg.Env == "development" {
		details = err.Error()
	}
	response.Error[any](c, http.StatusInternalServerError, "internal server error", details)
}

func conflictMessage(err error) string {
	if errors.Is(err, repo.ErrDuplicateDocumentID) {
		return "a user with this document already exists"
	}
	return "a user with this email already exists"
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req profile.Registration
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Register(c.Request.Context(), req)
	if err != nil {
		var verrs profile.FieldErrors
		switch {
		case errors.As(err, &verrs):
			response.Error[any](c, http.StatusBadRequest, "invalid input data", verrs)
		case errors.Is(err, repo.ErrDuplicateDocumentID), errors.Is(err, repo.ErrDuplicateEmail):
			response.Error[any](c, http.StatusConflict, conflictMessage(err), nil)
		default:
			h.internalError(c, err, "register")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user":  res.User.ToProfile(),
		"token": res.Token,
	}, "user registered successfully", map[string]any{"token_expires_at": res.TokenExpiry})
}

type loginRequest struct {
	DocumentID string `json:"documentId" binding:"required"`
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.DocumentID)
	if err != nil {
		var verrs profile.FieldErrors
		switch {
		case errors.As(err, &verrs):
			response.Error[any](c, http.StatusBadRequest, "invalid input data", verrs)
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, "user not found, please register first", nil)
		default:
			h.internalError(c, err, "login")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":  res.User.ToProfile(),
		"token": res.Token,
	}, "login successful", map[string]any{"token_expires_at": res.TokenExpiry})
}

// Verify GET /api/auth/verify
func (h *AuthHandler) Verify(c *gin.Context) {
	token := BearerToken(c)
	if token == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing token", nil)
		return
	}
	u, err := h.Svc.VerifyToken(c.Request.Context(), token)
	if err != nil {
		// one message for every failure mode, nothing to enumerate against
		response.Error[any](c, http.StatusUnauthorized, "invalid token", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u.ToProfile()}, "token valid", nil)
}

// Lists GET /api/auth/lists
func (h *AuthHandler) Lists(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"departments":    catalog.Departments(),
		"academicLevels": catalog.AcademicLevels(),
	}, "reference lists", nil)
}
