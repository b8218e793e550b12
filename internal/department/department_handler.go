package department

import (
	"net/http"

	"github.com/preyapanngam2004-art/leave-project/internal/shared/apperror"
	"github.com/preyapanngam2004-art/leave-project/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// GetAll feeds the report filter dropdowns; the catalog is small enough
// that no caching or pagination is worth it.
func (h *Handler) GetAll(c *gin.Context) {
	depts, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	resp := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		resp[i] = DepartmentResponse{ID: d.ID, Name: d.Name}
	}

	response.Success(c, http.StatusOK, resp, nil)
}
