package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"edu-workload/backend/internal/service"
	"edu-workload/backend/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportAssignments 导出某学期分班结果表
// GET /api/v1/sessions/:id/export/assignments?trimester=xxx
func (h *ExportHandler) ExportAssignments(c *gin.Context) {
	sessionID := c.Param("id")
	trimester := c.Query("trimester")
	if trimester == "" {
		response.BadRequest(c, 14001, "trimester 不能为空")
		return
	}

	buf, filename, err := h.exportSvc.ExportAssignments(c.Request.Context(), sessionID, trimester)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeXLSX(c, buf.Bytes(), filename)
}

// ExportAnnual 导出年度工作量汇总
// GET /api/v1/sessions/:id/export/annual
func (h *ExportHandler) ExportAnnual(c *gin.Context) {
	sessionID := c.Param("id")

	buf, filename, err := h.exportSvc.ExportAnnual(c.Request.Context(), sessionID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeXLSX(c, buf.Bytes(), filename)
}

// writeXLSX 设置下载响应头并写入 Excel 内容
func writeXLSX(c *gin.Context, data []byte, filename string) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 11101, "会话不存在")
	case errors.Is(err, service.ErrExportNoTable):
		response.NotFound(c, 14101, "该学期暂无分班结果")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
