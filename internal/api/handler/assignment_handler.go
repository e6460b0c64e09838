package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"edu-workload/backend/internal/dto"
	"edu-workload/backend/internal/service"
	"edu-workload/backend/pkg/response"
)

// AssignmentHandler 分班指派模块 HTTP 处理器
type AssignmentHandler struct {
	assignmentSvc   service.AssignmentService
	reassignmentSvc service.ReassignmentService
}

// NewAssignmentHandler 创建 AssignmentHandler
func NewAssignmentHandler(assignmentSvc service.AssignmentService, reassignmentSvc service.ReassignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc, reassignmentSvc: reassignmentSvc}
}

// Run 运行讲师指派
// POST /api/v1/sessions/:id/assignments/run
func (h *AssignmentHandler) Run(c *gin.Context) {
	sessionID := c.Param("id")

	var req dto.RunAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "参数校验失败")
		return
	}

	result, err := h.assignmentSvc.Run(c.Request.Context(), sessionID, req.Trimester)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, result)
}

// Get 读取学期当前结果表
// GET /api/v1/sessions/:id/assignments?trimester=
func (h *AssignmentHandler) Get(c *gin.Context) {
	sessionID := c.Param("id")
	trimester := c.Query("trimester")
	if trimester == "" {
		response.BadRequest(c, 12001, "trimester不能为空")
		return
	}

	result, err := h.assignmentSvc.Get(c.Request.Context(), sessionID, trimester)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, result)
}

// Reset 重置学期快照
// POST /api/v1/sessions/:id/assignments/reset
func (h *AssignmentHandler) Reset(c *gin.Context) {
	sessionID := c.Param("id")

	var req dto.ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "参数校验失败")
		return
	}

	if err := h.assignmentSvc.Reset(c.Request.Context(), sessionID, req.Trimester); err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, nil)
}

// ApplyOverrides 批量应用讲师覆盖并提交快照
// POST /api/v1/sessions/:id/assignments/overrides
func (h *AssignmentHandler) ApplyOverrides(c *gin.Context) {
	sessionID := c.Param("id")

	var req dto.ApplyOverridesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "参数校验失败")
		return
	}

	result, err := h.reassignmentSvc.ApplyOverrides(c.Request.Context(), sessionID, &req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, result)
}

// ListCandidates 获取某结果行的候选讲师
// GET /api/v1/sessions/:id/assignments/candidates?trimester=&row=
func (h *AssignmentHandler) ListCandidates(c *gin.Context) {
	sessionID := c.Param("id")
	trimester := c.Query("trimester")
	if trimester == "" {
		response.BadRequest(c, 12001, "trimester不能为空")
		return
	}
	rowIndex, err := strconv.Atoi(c.Query("row"))
	if err != nil {
		response.BadRequest(c, 12001, "row必须为整数")
		return
	}

	candidates, err := h.reassignmentSvc.ListCandidates(c.Request.Context(), sessionID, trimester, rowIndex)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, gin.H{"list": candidates})
}

// handleAssignmentError 统一处理分班指派模块业务错误
func (h *AssignmentHandler) handleAssignmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 11101, "会话不存在")
	case errors.Is(err, service.ErrTrimesterNoModules):
		response.BadRequest(c, 12101, "该学期下无任何模块")
	case errors.Is(err, service.ErrAssignmentNotRun):
		response.BadRequest(c, 12102, "该学期尚未运行指派")
	case errors.Is(err, service.ErrRowIndexOutOfRange):
		response.BadRequest(c, 12103, "行号超出结果表范围")
	default:
		response.InternalError(c)
	}
}
