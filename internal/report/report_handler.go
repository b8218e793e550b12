package report

import (
	"net/http"

	"github.com/preyapanngam2004-art/leave-project/internal/shared/apperror"
	"github.com/preyapanngam2004-art/leave-project/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetLeaves(c *gin.Context) {
	var q LeaveReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, apperror.MapValidationError(err))
		return
	}

	rows, err := h.service.Leaves(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, rows, nil)
}

func (h *Handler) ExportLeaves(c *gin.Context) {
	var q LeaveReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, apperror.MapValidationError(err))
		return
	}

	data, filename, err := h.service.ExportLeavesXLSX(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}
