package dto

// ── 分班与指派模块 DTO ──

// RunAssignmentRequest 运行讲师指派请求
type RunAssignmentRequest struct {
	Trimester string `json:"trimester" binding:"required,min=1,max=50"`
}

// ResetRequest 重置学期快照请求
type ResetRequest struct {
	Trimester string `json:"trimester" binding:"required,min=1,max=50"`
}

// OverrideItem 单行讲师覆盖：RowIndex 为结果表行号（0 起始）
// Lecturer 为 null 时表示取消指派
type OverrideItem struct {
	RowIndex int     `json:"row_index" binding:"min=0"`
	Lecturer *string `json:"lecturer"  binding:"omitempty,min=1,max=100"`
}

// ApplyOverridesRequest 批量覆盖请求：整批校验后提交学期快照
type ApplyOverridesRequest struct {
	Trimester string         `json:"trimester" binding:"required,min=1,max=50"`
	Overrides []OverrideItem `json:"overrides" binding:"required,dive"`
}

// ── 响应 ──

// AssignmentRowResponse 分班结果行响应
// Assigned=false 时 Lecturer 为空（该班级暂无可用讲师）
type AssignmentRowResponse struct {
	Lecturer    string `json:"lecturer,omitempty"`
	Assigned    bool   `json:"assigned"`
	ModuleCode  string `json:"module_code"`
	ModuleName  string `json:"module_name"`
	Credits     int    `json:"credits"`
	Cohort      string `json:"cohort"`
	Programme   string `json:"programme"`
	WeeklyHours int    `json:"weekly_hours"`
	GroupSize   int    `json:"group_size"`
	GroupNumber int    `json:"group_number"`
	Trimester   string `json:"trimester"`
}

// AssignmentTableResponse 学期分班结果表响应
type AssignmentTableResponse struct {
	Trimester string                  `json:"trimester"`
	Status    string                  `json:"status"`
	Rows      []AssignmentRowResponse `json:"rows"`
	Ledger    map[string]int          `json:"ledger"`
	Caps      map[string]int          `json:"caps"`
	Warnings  []string                `json:"warnings"`
}

// CandidateResponse 某结果行的候选讲师响应
// Incumbent 标记当前在任讲师：即便不具备授课资格也会返回，便于用户查看原状态
type CandidateResponse struct {
	Name      string `json:"name"`
	WeeklyCap int    `json:"weekly_cap"`
	Committed int    `json:"committed"`
	Remaining int    `json:"remaining"`
	Eligible  bool   `json:"eligible"`
	Incumbent bool   `json:"incumbent"`
}
