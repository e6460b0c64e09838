package model

import "time"

// ── 工作量分配领域模型 ──
//
// 全部为内存值对象：本服务不落库，会话随进程存亡（见 store 包）。

// Lecturer 讲师。按姓名唯一，周课时上限取输入中首次出现的值
type Lecturer struct {
	Name      string `json:"name"`
	WeeklyCap int    `json:"weekly_cap"`
}

// Module 模块（一门课在某学期的开设记录），载入后不再变更
type Module struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Credits      int    `json:"credits"`
	Cohort       string `json:"cohort"`
	Programme    string `json:"programme"`
	StudentCount int    `json:"student_count"`
	Trimester    string `json:"trimester"`
}

// AssignmentRow 分班结果行：某模块的一个班级及其讲师指派
// Lecturer 为 nil 表示未指派（当前容量下无可用讲师）
type AssignmentRow struct {
	Lecturer    *string `json:"lecturer"`
	ModuleCode  string  `json:"module_code"`
	ModuleName  string  `json:"module_name"`
	Credits     int     `json:"credits"`
	Cohort      string  `json:"cohort"`
	Programme   string  `json:"programme"`
	WeeklyHours int     `json:"weekly_hours"`
	GroupSize   int     `json:"group_size"`
	GroupNumber int     `json:"group_number"` // 1 起始
	Trimester   string  `json:"trimester"`
}

// Assigned 该班级是否已有讲师
func (r *AssignmentRow) Assigned() bool {
	return r.Lecturer != nil
}

// ── 学期状态机 ──
//
// unevaluated → draft（引擎已运行，未提交）→ committed（快照已存，切换学期可恢复）
// reset 将 committed 退回 unevaluated，下次运行重新计算

// TrimesterStatus 学期排课状态
type TrimesterStatus string

const (
	StatusUnevaluated TrimesterStatus = "unevaluated"
	StatusDraft       TrimesterStatus = "draft"
	StatusCommitted   TrimesterStatus = "committed"
)

// TrimesterState 学期快照：(结果表, 讲师课时台账, 警告) + 状态
type TrimesterState struct {
	Status   TrimesterStatus
	Table    []AssignmentRow
	Ledger   map[string]int // 讲师姓名 → 本学期已承诺周课时
	Warnings []string
}

// Clone 深拷贝快照，保证已提交数据不被后续草稿修改
func (s *TrimesterState) Clone() *TrimesterState {
	if s == nil {
		return nil
	}
	return &TrimesterState{
		Status:   s.Status,
		Table:    CloneTable(s.Table),
		Ledger:   CloneLedger(s.Ledger),
		Warnings: append([]string(nil), s.Warnings...),
	}
}

// Session 内存会话：输入数据、资格关系与各学期快照
type Session struct {
	ID          string
	Lecturers   []Lecturer          // 去重后的讲师，按首次出现顺序
	Modules     []Module            // 按输入顺序
	Eligibility map[string][]string // 模块代码 → 可授讲师姓名（按输入顺序）
	Caps        map[string]int      // 讲师姓名 → 周课时上限
	Trimesters  map[string]*TrimesterState
	CreatedAt   time.Time
}

// State 取学期状态，不存在时返回 unevaluated 空状态
func (s *Session) State(trimester string) *TrimesterState {
	if st, ok := s.Trimesters[trimester]; ok {
		return st
	}
	return &TrimesterState{Status: StatusUnevaluated}
}

// CloneTable 深拷贝结果表（Lecturer 指针按值重建）
func CloneTable(table []AssignmentRow) []AssignmentRow {
	out := make([]AssignmentRow, len(table))
	for i, row := range table {
		out[i] = row
		if row.Lecturer != nil {
			name := *row.Lecturer
			out[i].Lecturer = &name
		}
	}
	return out
}

// CloneLedger 拷贝课时台账
func CloneLedger(ledger map[string]int) map[string]int {
	out := make(map[string]int, len(ledger))
	for k, v := range ledger {
		out[k] = v
	}
	return out
}
