package employee

import (
	"net/http"
	"strconv"
	"time"

	employeeerrors "github.com/djfabrix/vidiemme/internal/employee/errors"
	"github.com/djfabrix/vidiemme/internal/shared/apperror"
	"github.com/djfabrix/vidiemme/internal/shared/pagination"
	"github.com/djfabrix/vidiemme/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindingError(c *gin.Context, err error) {
	h.logger.Warn("employee request binding failed", zap.Error(err))
	httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// paginationFromQuery reads the offset/limit query parameters. Values that
// do not parse fall through as zero, which the resolver treats as unset.
func paginationFromQuery(c *gin.Context) pagination.Window {
	offset, _ := strconv.Atoi(c.Query("offset"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return pagination.Resolve(offset, limit)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindingError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	page := paginationFromQuery(c)

	resp, err := h.service.GetAll(c.Request.Context(), page)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.ListMeta{Count: len(resp), Offset: page.Offset, Limit: page.Limit}
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) GetBySerial(c *gin.Context) {
	serial := c.Param("serial")

	resp, err := h.service.GetBySerial(c.Request.Context(), serial)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetTasks(c *gin.Context) {
	serial := c.Param("serial")
	page := paginationFromQuery(c)

	resp, err := h.service.GetTasks(c.Request.Context(), serial, page)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.ListMeta{Count: len(resp), Offset: page.Offset, Limit: page.Limit}
	response.Success(c, http.StatusOK, resp, &meta)
}

// Update validates the request's date fields against the stored employee
// before any field is persisted.
func (h *Handler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	serial := c.Param("serial")

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindingError(c, err)
		return
	}

	hiringDate, dismissalDate, err := parseDateFields(req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	valid, err := h.service.ValidateHiringDismissalDate(ctx, serial, hiringDate, dismissalDate)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if !valid {
		h.writeServiceError(c, employeeerrors.ErrDismissalBeforeHiring)
		return
	}

	resp, err := h.service.Update(ctx, serial, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	serial := c.Param("serial")

	affected, err := h.service.Delete(c.Request.Context(), serial)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": affected > 0}, nil)
}

func parseDateFields(req UpdateEmployeeRequest) (*time.Time, *time.Time, error) {
	var hiringDate, dismissalDate *time.Time

	if req.HiringDate != nil {
		d, err := parseDate(*req.HiringDate)
		if err != nil {
			return nil, nil, err
		}
		hiringDate = &d
	}
	if req.DismissalDate != nil {
		d, err := parseDate(*req.DismissalDate)
		if err != nil {
			return nil, nil, err
		}
		dismissalDate = &d
	}

	return hiringDate, dismissalDate, nil
}
