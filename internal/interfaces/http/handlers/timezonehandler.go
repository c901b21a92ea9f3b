package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tzsync/internal/application/preference/usecases"
	"tzsync/internal/interfaces/http/middleware"
	"tzsync/internal/shared/errors"
	"tzsync/internal/shared/logger"
	"tzsync/internal/shared/utils"
)

type TimezoneHandler struct {
	getTimezoneUC    getTimezoneUseCase
	setTimezoneUC    setTimezoneUseCase
	deleteTimezoneUC deleteTimezoneUseCase
	listTimezonesUC  listTimezonesUseCase
	getCurrentUserUC getCurrentUserUseCase
	logger           logger.Interface
}

func NewTimezoneHandler(
	getTimezoneUC *usecases.GetTimezoneUseCase,
	setTimezoneUC *usecases.SetTimezoneUseCase,
	deleteTimezoneUC *usecases.DeleteTimezoneUseCase,
	listTimezonesUC *usecases.ListTimezonesUseCase,
	getCurrentUserUC *usecases.GetCurrentUserUseCase,
	logger logger.Interface,
) *TimezoneHandler {
	return &TimezoneHandler{
		getTimezoneUC:    getTimezoneUC,
		setTimezoneUC:    setTimezoneUC,
		deleteTimezoneUC: deleteTimezoneUC,
		listTimezonesUC:  listTimezonesUC,
		getCurrentUserUC: getCurrentUserUC,
		logger:           logger,
	}
}

// GetTimezone handles GET /get?id=<user_id>
func (h *TimezoneHandler) GetTimezone(c *gin.Context) {
	userID := c.Query("id")
	if userID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, errors.ErrorTypeValidation, "id query parameter is required")
		return
	}

	record, err := h.getTimezoneUC.Execute(c.Request.Context(), usecases.GetTimezoneQuery{UserID: userID})
	if err != nil {
		if !errors.IsNotFoundError(err) {
			h.logger.Errorw("failed to get timezone", "error", err, "user_id", userID)
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTimezoneResponse(record))
}

// SetTimezone handles POST /set
func (h *TimezoneHandler) SetTimezone(c *gin.Context) {
	record, ok := middleware.CurrentSession(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authentication required"))
		return
	}

	var req SetTimezoneRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, errors.ErrorTypeValidation, "timezone is required")
		return
	}

	cmd := usecases.SetTimezoneCommand{
		User:     record.User,
		Timezone: req.Timezone,
	}

	saved, err := h.setTimezoneUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		if !errors.IsValidationError(err) {
			h.logger.Errorw("failed to set timezone", "error", err, "user_id", record.User.ID)
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTimezoneResponse(saved))
}

// DeleteTimezone handles DELETE /delete
func (h *TimezoneHandler) DeleteTimezone(c *gin.Context) {
	record, ok := middleware.CurrentSession(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authentication required"))
		return
	}

	if err := h.deleteTimezoneUC.Execute(c.Request.Context(), usecases.DeleteTimezoneCommand{UserID: record.User.ID}); err != nil {
		h.logger.Errorw("failed to delete timezone", "error", err, "user_id", record.User.ID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "timezone deleted")
}

// ListTimezones handles GET /list
func (h *TimezoneHandler) ListTimezones(c *gin.Context) {
	records, err := h.listTimezonesUC.Execute(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to list timezones", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toListResponse(records))
}

// GetCurrentUser handles GET /me
func (h *TimezoneHandler) GetCurrentUser(c *gin.Context) {
	record, ok := middleware.CurrentSession(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authentication required"))
		return
	}

	result, err := h.getCurrentUserUC.Execute(c.Request.Context(), record.User)
	if err != nil {
		h.logger.Errorw("failed to load current user", "error", err, "user_id", record.User.ID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toMeResponse(result))
}
