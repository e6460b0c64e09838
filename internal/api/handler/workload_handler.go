package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"edu-workload/backend/internal/service"
	"edu-workload/backend/pkg/response"
)

// WorkloadHandler 年度工作量模块 HTTP 处理器
type WorkloadHandler struct {
	workloadSvc service.WorkloadService
}

// NewWorkloadHandler 创建 WorkloadHandler
func NewWorkloadHandler(workloadSvc service.WorkloadService) *WorkloadHandler {
	return &WorkloadHandler{workloadSvc: workloadSvc}
}

// GetAnnual 获取年度工作量汇总
// GET /api/v1/sessions/:id/workload/annual
func (h *WorkloadHandler) GetAnnual(c *gin.Context) {
	sessionID := c.Param("id")

	result, err := h.workloadSvc.Cumulative(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.NotFound(c, 11101, "会话不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
