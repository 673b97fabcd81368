package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/elprofecharles/registration-api/config"
	"github.com/elprofecharles/registration-api/internal/application"
	"github.com/elprofecharles/registration-api/internal/domain/profile"
	repo "github.com/elprofecharles/registration-api/internal/domain/repository"
	"github.com/elprofecharles/registration-api/pkg/response"
	"github.com/elprofecharles/registration-api/pkg/validation"
)

type UserHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
	Cfg    *config.Config
}

func NewUserHandler(svc *application.Service, logger *logrus.Logger, cfg *config.Config) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, Cfg: cfg}
}

func (h *UserHandler) internalError(c *gin.Context, err error, op string) {
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

// GetProfile GET /api/users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	uid := c.GetString("userID")
	u, err := h.Svc.GetProfile(uid)
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u.ToProfile()}, "profile", nil)
}

// UpdateProfile PUT /api/users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	uid := c.GetString("userID")
	var req profile.Update
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.UpdateProfile(c.Request.Context(), uid, req)
	if err != nil {
		var verrs profile.FieldErrors
		switch {
		case errors.As(err, &verrs):
			response.Error[any](c, http.StatusBadRequest, "invalid input data", verrs)
		case errors.Is(err, repo.ErrDuplicateEmail):
			response.Error[any](c, http.StatusConflict, "a user with this email already exists", nil)
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
		default:
			h.internalError(c, err, "update_profile")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u.ToProfile()}, "profile updated successfully", nil)
}

// Logout POST /api/users/logout
func (h *UserHandler) Logout(c *gin.Context) {
	uid := c.GetString("userID")
	if err := h.Svc.Logout(c.Request.Context(), uid); err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.internalError(c, err, "logout")
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "session closed", nil)
}

// Stats GET /api/users/stats - basic counters, mostly for development
func (h *UserHandler) Stats(c *gin.Context) {
	st, err := h.Svc.GetStats(c.Request.Context())
	if err != nil {
		h.internalError(c, err, "stats")
		return
	}
	response.Success(c, http.StatusOK, st, "stats", nil)
}
