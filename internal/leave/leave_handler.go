package leave

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	leaveerrors "github.com/preyapanngam2004-art/leave-project/internal/leave/errors"
	"github.com/preyapanngam2004-art/leave-project/internal/shared/apperror"
	"github.com/preyapanngam2004-art/leave-project/internal/shared/response"
	"github.com/preyapanngam2004-art/leave-project/internal/shared/upload"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	roleManager = "MANAGER"
	roleHR      = "HR"
)

type Handler struct {
	service Service
	uploads *upload.Store
	rdb     *redis.Client
}

func NewHandler(service Service, uploads *upload.Store, rdb *redis.Client) *Handler {
	return &Handler{service: service, uploads: uploads, rdb: rdb}
}

// Submit accepts the multipart submission form. The attachment part is
// optional; when present it is stored on disk before the transaction runs,
// so an orphaned file is possible but a dangling DB path is not.
func (h *Handler) Submit(c *gin.Context) {
	employeeID, ok := actorEmployeeID(c)
	if !ok {
		writeError(c, leaveerrors.ErrInvalidEmployeeID)
		return
	}

	var req SubmitLeaveRequest
	if err := c.ShouldBind(&req); err != nil {
		writeError(c, apperror.MapValidationError(err))
		return
	}

	var attachmentPath *string
	if file, err := c.FormFile("attachment"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			writeError(c, err)
			return
		}
		defer src.Close()

		path, err := h.uploads.Save(src, file.Filename)
		if err != nil {
			writeError(c, err)
			return
		}
		attachmentPath = &path
	}

	resp, err := h.service.Submit(c.Request.Context(), employeeID, req, attachmentPath)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Decide(c *gin.Context) {
	requestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || requestID <= 0 {
		h.releaseIdempotencyLock(c)
		writeError(c, leaveerrors.ErrInvalidRequestID)
		return
	}

	actorID, ok := actorEmployeeID(c)
	if !ok {
		h.releaseIdempotencyLock(c)
		writeError(c, leaveerrors.ErrInvalidEmployeeID)
		return
	}

	var req DecideLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.releaseIdempotencyLock(c)
		writeError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Decide(c.Request.Context(), actorID, requestID, req.Status)
	if err != nil {
		h.releaseIdempotencyLock(c)
		writeError(c, err)
		return
	}

	h.finalizeIdempotency(c, resp)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Balances(c *gin.Context) {
	employeeID, err := h.resolveRecordOwner(c)
	if err != nil {
		writeError(c, err)
		return
	}

	resp, err := h.service.Balances(c.Request.Context(), employeeID)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) History(c *gin.Context) {
	employeeID, err := h.resolveRecordOwner(c)
	if err != nil {
		writeError(c, err)
		return
	}

	resp, err := h.service.History(c.Request.Context(), employeeID)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Pending(c *gin.Context) {
	approverID, err := strconv.ParseInt(c.Param("managerId"), 10, 64)
	if err != nil || approverID <= 0 {
		writeError(c, leaveerrors.ErrInvalidEmployeeID)
		return
	}

	// Managers see their own queue; HR may inspect any queue.
	if c.GetString("role") != roleHR {
		actorID, ok := actorEmployeeID(c)
		if !ok || actorID != approverID {
			writeError(c, leaveerrors.ErrNotOwnRecord)
			return
		}
	}

	resp, err := h.service.PendingForApprover(c.Request.Context(), approverID)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// resolveRecordOwner parses the :empId path param and enforces that plain
// employees can only read their own balances and history.
func (h *Handler) resolveRecordOwner(c *gin.Context) (int64, error) {
	employeeID, err := strconv.ParseInt(c.Param("empId"), 10, 64)
	if err != nil || employeeID <= 0 {
		return 0, leaveerrors.ErrInvalidEmployeeID
	}

	role := c.GetString("role")
	if role == roleManager || role == roleHR {
		return employeeID, nil
	}

	actorID, ok := actorEmployeeID(c)
	if !ok || actorID != employeeID {
		return 0, leaveerrors.ErrNotOwnRecord
	}

	return employeeID, nil
}

// finalizeIdempotency caches the successful decision body and releases the
// in-flight lock. Failures here are swallowed; the decision is already
// committed and must be returned regardless.
func (h *Handler) finalizeIdempotency(c *gin.Context, resp DecisionResponse) {
	if h.rdb == nil {
		return
	}

	cacheKey := c.GetString("idempotency_cache_key")
	if cacheKey == "" {
		return
	}

	if data, err := json.Marshal(resp); err == nil {
		h.rdb.Set(c.Request.Context(), cacheKey, data, 24*time.Hour)
	}
	h.releaseIdempotencyLock(c)
}

func (h *Handler) releaseIdempotencyLock(c *gin.Context) {
	if h.rdb == nil {
		return
	}
	if lockKey := c.GetString("idempotency_lock_key"); lockKey != "" {
		h.rdb.Del(c.Request.Context(), lockKey)
	}
}

func actorEmployeeID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.GetString("employee_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}
