package attendance

import (
	"net/http"
	"strconv"

	"dayflow/internal/middleware"
	"dayflow/internal/shared/apperror"
	"dayflow/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("attendance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
}

// bindOptional accepts an empty body for requests whose fields are all optional.
func bindOptional(c *gin.Context, dst any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	return c.ShouldBindJSON(dst)
}

func (h *Handler) CheckIn(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	h.logger.Debug("http check in", zap.String("user_id", actor.UserID))

	var req CheckInRequest
	if err := bindOptional(c, &req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.CheckIn(c.Request.Context(), actor, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) CheckOut(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	h.logger.Debug("http check out", zap.String("user_id", actor.UserID))

	var req CheckOutRequest
	if err := bindOptional(c, &req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.CheckOut(c.Request.Context(), actor, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// Today returns null data when the caller has no record yet.
func (h *Handler) Today(c *gin.Context) {
	resp, err := h.service.Today(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context(), middleware.CurrentActor(c), ListQuery{
		Month:  c.Query("month"),
		UserID: c.Query("user_id"),
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "31"))
	if pageSize < 1 {
		pageSize = 31
	}
	pageSize = min(pageSize, response.MaxPageSize)

	paged, meta := response.Page(resp, page, pageSize)
	response.Success(c, http.StatusOK, paged, &meta)
}

func (h *Handler) Manual(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	var req ManualAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http manual attendance validation failed", zap.Error(err))
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.ManualUpsert(c.Request.Context(), actor, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
