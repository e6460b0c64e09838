package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"edu-workload/backend/internal/dto"
	"edu-workload/backend/internal/service"
	"edu-workload/backend/pkg/response"
)

// SessionHandler 会话模块 HTTP 处理器
type SessionHandler struct {
	sessionSvc service.SessionService
}

// NewSessionHandler 创建 SessionHandler
func NewSessionHandler(sessionSvc service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// CreateSession 载入输入表并创建会话
// POST /api/v1/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, 400, 11001, "参数校验失败", err.Error())
		return
	}

	result, err := h.sessionSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.Created(c, result)
}

// GetSession 获取会话信息
// GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 11001, "会话ID不能为空")
		return
	}

	result, err := h.sessionSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, result)
}

// DeleteSession 释放会话
// DELETE /api/v1/sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 11001, "会话ID不能为空")
		return
	}

	if err := h.sessionSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleSessionError 统一处理会话模块业务错误
func (h *SessionHandler) handleSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 11101, "会话不存在")
	case errors.Is(err, service.ErrDuplicateModule):
		response.BadRequest(c, 11102, err.Error())
	case errors.Is(err, service.ErrNoLecturerRows):
		response.BadRequest(c, 11103, "讲师输入表为空")
	case errors.Is(err, service.ErrNoModuleRows):
		response.BadRequest(c, 11104, "模块输入表为空")
	default:
		response.InternalError(c)
	}
}
