package leavetype

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

func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
