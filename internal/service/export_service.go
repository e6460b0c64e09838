package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"edu-workload/backend/config"
	"edu-workload/backend/internal/store"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoTable      = errors.New("该学期暂无分班结果")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 分班结果表与年度工作量均导出为 Excel (.xlsx)
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - 输入侧的表格解析不在本服务范围内，由上游协作方完成
type ExportService interface {
	// ExportAssignments 导出某学期分班结果表
	ExportAssignments(ctx context.Context, sessionID, trimester string) (*bytes.Buffer, string, error)
	// ExportAnnual 导出年度工作量汇总
	ExportAnnual(ctx context.Context, sessionID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	cfg      *config.Config
	store    store.SessionStore
	workload WorkloadService
	logger   *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(cfg *config.Config, st store.SessionStore, workload WorkloadService, logger *zap.Logger) ExportService {
	return &exportService{cfg: cfg, store: st, workload: workload, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportAssignments — 导出分班结果表
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "分班结果"
//   - 表头: | 模块代码 | 模块名称 | 学分 | 队列 | 专业 | 周课时 | 班级人数 | 班级序号 | 讲师 |
//   - 未指派班级的讲师列为 "未分配"
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportAssignments(_ context.Context, sessionID, trimester string) (*bytes.Buffer, string, error) {
	session, err := s.store.Get(sessionID)
	if err != nil {
		return nil, "", ErrSessionNotFound
	}

	state, ok := session.Trimesters[trimester]
	if !ok || len(state.Table) == 0 {
		return nil, "", ErrExportNoTable
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "分班结果"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列宽
	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "B", "B", 28)
	f.SetColWidth(sheetName, "C", "F", 12)
	f.SetColWidth(sheetName, "G", "H", 10)
	f.SetColWidth(sheetName, "I", "I", 18)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — 分班结果", trimester))
	f.MergeCell(sheetName, "A1", "I1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	headers := []string{"模块代码", "模块名称", "学分", "队列", "专业", "周课时", "班级人数", "班级序号", "讲师"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 2), h)
	}

	// 数据行
	row := 3
	for i := range state.Table {
		r := &state.Table[i]
		lecturer := "未分配"
		if r.Lecturer != nil {
			lecturer = *r.Lecturer
		}
		values := []interface{}{
			r.ModuleCode, r.ModuleName, r.Credits, r.Cohort, r.Programme,
			r.WeeklyHours, r.GroupSize, r.GroupNumber, lecturer,
		}
		for ci, v := range values {
			f.SetCellValue(sheetName, cell(colName(ci), row), v)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("分班结果_%s.xlsx", trimester)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportAnnual — 导出年度工作量汇总
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "年度工作量"
//   - 表头: | 讲师 | <每学期一列> | 年度合计 | 年度上限 |
//   - 数值为总课时（周课时 × 教学周）

func (s *exportService) ExportAnnual(ctx context.Context, sessionID string) (*bytes.Buffer, string, error) {
	annual, err := s.workload.Cumulative(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "年度工作量"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 18)
	lastCol := colName(len(annual.Trimesters) + 2)
	f.SetColWidth(sheetName, "B", lastCol, 14)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", "年度工作量汇总")
	f.MergeCell(sheetName, "A1", cell(lastCol, 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	f.SetCellValue(sheetName, "A2", "讲师")
	for i, label := range annual.Trimesters {
		f.SetCellValue(sheetName, cell(colName(i+1), 2), label)
	}
	f.SetCellValue(sheetName, cell(colName(len(annual.Trimesters)+1), 2), "年度合计")
	f.SetCellValue(sheetName, cell(colName(len(annual.Trimesters)+2), 2), "年度上限")

	// 数据行
	row := 3
	for _, r := range annual.Rows {
		f.SetCellValue(sheetName, cell("A", row), r.Lecturer)
		for i, label := range annual.Trimesters {
			f.SetCellValue(sheetName, cell(colName(i+1), row), r.ByTrimester[label])
		}
		f.SetCellValue(sheetName, cell(colName(len(annual.Trimesters)+1), row), r.Total)
		f.SetCellValue(sheetName, cell(colName(len(annual.Trimesters)+2), row), r.AnnualCap)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, "年度工作量汇总.xlsx", nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
